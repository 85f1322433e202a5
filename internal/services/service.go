/* Copyright (c) 2025 PMO-MCP Authors
 * SPDX-License-Identifier: BSD-3-Clause */
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonbondani/PMO-MCP/internal/config"
	"github.com/jonbondani/PMO-MCP/internal/domain"
	"github.com/jonbondani/PMO-MCP/internal/metrics"
	"github.com/jonbondani/PMO-MCP/internal/report"
	"github.com/rs/zerolog"
)

// ErrSprintNotFound marks a sprint the tracker could not produce; handlers
// map it to a 404-class response.
var ErrSprintNotFound = errors.New("sprint not found")

type issueSource interface {
	Sprint(ctx context.Context, sprintID string) (*domain.Sprint, error)
	SprintIssues(ctx context.Context, sprintID string) ([]domain.Issue, error)
}

type wikiClient interface {
	Page(ctx context.Context, pageID string) (*domain.Page, error)
	UpdatePage(ctx context.Context, pageID string, upd domain.PageUpdate) error
}

type Service struct {
	cfg  config.Config
	log  zerolog.Logger
	jira issueSource
	wiki wikiClient
	now  func() time.Time
}

func New(cfg config.Config, log zerolog.Logger, jira issueSource, wiki wikiClient) *Service {
	return &Service{cfg: cfg, log: log, jira: jira, wiki: wiki, now: time.Now}
}

// SprintContext fetches the sprint, walks its issues, and computes metrics.
// A failed sprint fetch becomes ErrSprintNotFound. A failed issue walk fails
// the whole call: a partial issue list must not masquerade as the sprint.
func (s *Service) SprintContext(ctx context.Context, sprintID string) (*domain.SprintContext, error) {
	sprint, err := s.jira.Sprint(ctx, sprintID)
	if err != nil || sprint == nil {
		s.log.Warn().Err(err).Str("sprint_id", sprintID).Msg("sprint fetch failed")
		return nil, ErrSprintNotFound
	}

	issues, err := s.jira.SprintIssues(ctx, sprintID)
	if err != nil {
		s.log.Error().Err(err).Str("sprint_id", sprintID).Int("partial", len(issues)).Msg("sprint issue fetch failed")
		return nil, fmt.Errorf("fetch sprint issues: %w", err)
	}

	return &domain.SprintContext{
		Sprint:  *sprint,
		Issues:  issues,
		Metrics: metrics.Compute(issues, *sprint),
	}, nil
}

// UpdateConfluencePage renders the insights into the page. All failures are
// folded into the result; this boundary never raises. Versioning is
// read-then-write with no conflict check, so concurrent updaters race and
// the last write wins at the wiki.
func (s *Service) UpdateConfluencePage(ctx context.Context, pageID string, insights domain.SprintInsights) domain.UpdateResult {
	page, err := s.wiki.Page(ctx, pageID)
	if err != nil {
		s.log.Error().Err(err).Str("page_id", pageID).Msg("confluence page fetch failed")
		return domain.UpdateResult{
			Success: false,
			Message: fmt.Sprintf("failed to fetch page: %v", err),
			PageID:  pageID,
		}
	}

	body := report.Render(insights, s.now())
	newVersion := page.Version + 1

	if err := s.wiki.UpdatePage(ctx, pageID, domain.PageUpdate{Title: page.Title, Version: newVersion, Body: body}); err != nil {
		s.log.Error().Err(err).Str("page_id", pageID).Int("version", newVersion).Msg("confluence page update failed")
		return domain.UpdateResult{
			Success: false,
			Message: fmt.Sprintf("failed to update page: %v", err),
			PageID:  pageID,
		}
	}

	s.log.Info().Str("page_id", pageID).Int("version", newVersion).Msg("confluence page updated")
	return domain.UpdateResult{
		Success:    true,
		Message:    "Confluence page updated successfully",
		PageID:     pageID,
		NewVersion: newVersion,
	}
}

// PublishSprintReport is the scheduled-job flow: recompute the sprint context
// and republish it to the configured page.
func (s *Service) PublishSprintReport(ctx context.Context, sprintID, pageID string) domain.UpdateResult {
	sc, err := s.SprintContext(ctx, sprintID)
	if err != nil {
		return domain.UpdateResult{
			Success: false,
			Message: fmt.Sprintf("failed to build sprint context: %v", err),
			PageID:  pageID,
		}
	}
	insights := domain.SprintInsights{Sprint: sc.Sprint, Metrics: sc.Metrics}
	return s.UpdateConfluencePage(ctx, pageID, insights)
}

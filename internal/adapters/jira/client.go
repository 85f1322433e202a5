/* Copyright (c) 2025 PMO-MCP Authors
 * SPDX-License-Identifier: BSD-3-Clause */
package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonbondani/PMO-MCP/internal/config"
	"github.com/jonbondani/PMO-MCP/internal/domain"
	"github.com/rs/zerolog"
)

const pageSize = 50

type Client struct {
	baseURL     string
	user        string
	token       string
	pointsField string
	http        *http.Client
	log         zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
	return &Client{
		baseURL:     cfg.JiraBaseURL,
		user:        cfg.JiraUsername,
		token:       cfg.JiraAPIToken,
		pointsField: cfg.StoryPointsField,
		http:        &http.Client{Timeout: cfg.HTTPTimeout},
		log:         log,
	}
}

func (c *Client) apiURL(path string, q url.Values) string {
	base := strings.TrimRight(c.baseURL, "/")
	if !strings.HasPrefix(path, "/") { path = "/" + path }
	u := base + path
	if len(q) > 0 { u = u + "?" + q.Encode() }
	return u
}

func (c *Client) doJSON(ctx context.Context, u string) (map[string]any, error) {
	if c.baseURL == "" { return nil, errors.New("jira: empty baseURL") }
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil { return nil, err }
	req.Header.Set("Accept", "application/json")
	if c.user != "" || c.token != "" { req.SetBasicAuth(c.user, c.token) }
	resp, err := c.http.Do(req)
	if err != nil { return nil, err }
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("jira api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil { return nil, err }
	return out, nil
}

// Sprint fetches sprint metadata. Any transport or non-2xx error is returned
// as-is; there are no retries, the caller decides how to surface it.
func (c *Client) Sprint(ctx context.Context, sprintID string) (*domain.Sprint, error) {
	if sprintID == "" { return nil, errors.New("jira: empty sprint id") }
	u := c.apiURL("/rest/agile/1.0/sprint/"+url.PathEscape(sprintID), nil)
	m, err := c.doJSON(ctx, u)
	if err != nil {
		c.log.Warn().Err(err).Str("sprint_id", sprintID).Msg("jira sprint fetch failed")
		return nil, err
	}
	sp := &domain.Sprint{
		Name:      toStr(m["name"]),
		State:     toStr(m["state"]),
		StartDate: toStr(m["startDate"]),
		EndDate:   toStr(m["endDate"]),
		Goal:      toStr(m["goal"]),
	}
	if v, ok := m["id"].(float64); ok { sp.ID = int64(v) }
	return sp, nil
}

// SprintIssues walks the sprint issue list in pages of 50, requesting only
// the fields the aggregator consumes. It stops on an empty or short page. On
// a mid-pagination error it returns the issues accumulated so far together
// with the error; callers must not treat that slice as the complete sprint.
func (c *Client) SprintIssues(ctx context.Context, sprintID string) ([]domain.Issue, error) {
	if sprintID == "" { return nil, errors.New("jira: empty sprint id") }
	fields := "summary,status,issuetype,priority,assignee,created,updated,resolutiondate," + c.pointsField

	var out []domain.Issue
	startAt := 0
	for {
		q := url.Values{}
		q.Set("startAt", fmt.Sprint(startAt))
		q.Set("maxResults", fmt.Sprint(pageSize))
		q.Set("fields", fields)
		u := c.apiURL("/rest/agile/1.0/sprint/"+url.PathEscape(sprintID)+"/issue", q)

		page, err := c.doJSON(ctx, u)
		if err != nil {
			c.log.Warn().Err(err).Str("sprint_id", sprintID).Int("fetched", len(out)).Msg("jira issue pagination aborted")
			return out, err
		}
		arr, _ := page["issues"].([]any)
		if len(arr) == 0 { break }
		for _, it := range arr {
			if im, _ := it.(map[string]any); im != nil {
				out = append(out, c.parseIssue(im))
			}
		}
		if len(arr) < pageSize { break }
		startAt += pageSize
	}
	return out, nil
}

func (c *Client) parseIssue(im map[string]any) domain.Issue {
	fields, _ := im["fields"].(map[string]any)
	issue := domain.Issue{Key: toStr(im["key"])}
	if fields == nil { return issue }
	issue.Summary = toStr(fields["summary"])
	issue.Status = nameOf(fields["status"])
	issue.Type = nameOf(fields["issuetype"])
	issue.Priority = nameOf(fields["priority"])
	if as, ok := fields["assignee"].(map[string]any); ok {
		issue.Assignee = toStr(as["displayName"])
	}
	if v, ok := fields[c.pointsField].(float64); ok { issue.StoryPoints = v }
	issue.Created = toStr(fields["created"])
	issue.Updated = toStr(fields["updated"])
	issue.ResolutionDate = toStr(fields["resolutiondate"])
	return issue
}

func toStr(v any) string {
	s, _ := v.(string)
	return s
}

func nameOf(v any) string {
	if m, ok := v.(map[string]any); ok { return toStr(m["name"]) }
	return ""
}

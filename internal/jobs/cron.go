package jobs

import (
	"context"
	"time"

	"github.com/jonbondani/PMO-MCP/internal/config"
	"github.com/jonbondani/PMO-MCP/internal/domain"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type service interface {
	PublishSprintReport(ctx context.Context, sprintID, pageID string) domain.UpdateResult
}

// Cron republishes the configured sprint report on a schedule. It does
// nothing unless the report job is fully configured.
type Cron struct {
	cfg config.Config
	log zerolog.Logger
	svc service
	c   *cron.Cron
}

func NewCron(cfg config.Config, log zerolog.Logger, svc service) *Cron {
	loc, _ := time.LoadLocation(cfg.TZ)
	c := cron.New(cron.WithLocation(loc), cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)))
	cr := &Cron{cfg: cfg, log: log, svc: svc, c: c}
	if cfg.ReportJobEnabled() {
		if _, err := c.AddFunc(cfg.ReportCronSpec, cr.publish); err != nil {
			log.Error().Err(err).Str("spec", cfg.ReportCronSpec).Msg("cron: invalid report schedule")
		}
	}
	return cr
}

func (cr *Cron) Start() { cr.c.Start() }
func (cr *Cron) Stop()  { cr.c.Stop() }

func (cr *Cron) publish() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	cr.log.Info().Str("sprint_id", cr.cfg.ReportSprintID).Str("page_id", cr.cfg.ReportPageID).Msg("cron: publishing sprint report")
	res := cr.svc.PublishSprintReport(ctx, cr.cfg.ReportSprintID, cr.cfg.ReportPageID)
	if !res.Success {
		cr.log.Error().Str("page_id", res.PageID).Str("msg", res.Message).Msg("cron: sprint report publish failed")
		return
	}
	cr.log.Info().Str("page_id", res.PageID).Int("version", res.NewVersion).Msg("cron: sprint report published")
}

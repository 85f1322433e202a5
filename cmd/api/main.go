/* Copyright (c) 2025 PMO-MCP Authors
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonbondani/PMO-MCP/internal/adapters/confluence"
	"github.com/jonbondani/PMO-MCP/internal/adapters/jira"
	"github.com/jonbondani/PMO-MCP/internal/config"
	httpapi "github.com/jonbondani/PMO-MCP/internal/http"
	"github.com/jonbondani/PMO-MCP/internal/jobs"
	"github.com/jonbondani/PMO-MCP/internal/logger"
	"github.com/jonbondani/PMO-MCP/internal/services"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg)

	for _, name := range cfg.MissingVars() {
		log.Warn().Str("var", name).Msg("required environment variable not set")
	}

	// Adapters
	jc := jira.NewClient(cfg, log)
	cc := confluence.NewClient(cfg, log)

	// Services
	svc := services.New(cfg, log, jc, cc)

	// HTTP server (Gin)
	router := httpapi.NewRouter(cfg, log, svc)

	// Scheduled report publishing
	cr := jobs.NewCron(cfg, log, svc)
	cr.Start()
	defer cr.Stop()
	if cfg.ReportJobEnabled() {
		log.Info().Str("spec", cfg.ReportCronSpec).Str("sprint_id", cfg.ReportSprintID).Msg("report job scheduled")
	}

	// graceful shutdown
	errCh := make(chan error, 1)
	go func() { errCh <- router.Run(cfg.HTTPAddr) }()
	log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info().Msg("shutting down...")
	case err := <-errCh:
		if err != nil { log.Error().Err(err).Msg("http server error") }
	}

	time.Sleep(500 * time.Millisecond)
}

/* Copyright (c) 2025 PMO-MCP Authors
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonbondani/PMO-MCP/internal/config"
	"github.com/rs/zerolog"
)

func NewRouter(cfg config.Config, log zerolog.Logger, svc service) *gin.Engine {
	if cfg.AppEnv != "dev" { gin.SetMode(gin.ReleaseMode) }
	r := gin.New()
	// panics never reach the caller raw; they become the JSON envelope
	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		log.Error().Any("panic", err).Str("p", c.FullPath()).Msg("recovered panic in handler")
		toolError(c, http.StatusInternalServerError, codeInternalError, "internal server error")
	}))
	r.Use(func(c *gin.Context) {
		c.Next()
		log.Info().Str("m", c.Request.Method).Str("p", c.FullPath()).Int("s", c.Writer.Status()).Msg("http")
	})

	h := NewHandlers(cfg, log, svc)

	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)

	// legacy surface
	r.POST("/context", h.Context)
	r.POST("/update-confluence", h.UpdateConfluence)

	// tool-protocol surface
	r.GET("/mcp/tools", h.Tools)
	r.POST("/mcp/execute", h.Execute)

	return r
}

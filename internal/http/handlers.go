/* Copyright (c) 2025 PMO-MCP Authors
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jonbondani/PMO-MCP/internal/config"
	"github.com/jonbondani/PMO-MCP/internal/domain"
	"github.com/jonbondani/PMO-MCP/internal/services"
	"github.com/rs/zerolog"
)

const serverVersion = "1.0.0"

type service interface {
	SprintContext(ctx context.Context, sprintID string) (*domain.SprintContext, error)
	UpdateConfluencePage(ctx context.Context, pageID string, insights domain.SprintInsights) domain.UpdateResult
}

type Handlers struct {
	cfg config.Config
	log zerolog.Logger
	svc service
}

func NewHandlers(cfg config.Config, log zerolog.Logger, svc service) *Handlers {
	return &Handlers{cfg: cfg, log: log, svc: svc}
}

func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "PMO MCP server is running",
		"version": serverVersion,
	})
}

func (h *Handlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Context is the legacy surface for get_sprint_info.
func (h *Handlers) Context(c *gin.Context) {
	var req struct {
		SprintID any `json:"sprint_id"`
	}
	_ = c.ShouldBindJSON(&req)
	sprintID := toStr(req.SprintID)
	if sprintID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sprint_id is required"})
		return
	}
	sc, err := h.svc.SprintContext(c.Request.Context(), sprintID)
	if err != nil {
		if err == services.ErrSprintNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "could not fetch sprint information"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sc)
}

// UpdateConfluence is the legacy surface for update_confluence_page.
func (h *Handlers) UpdateConfluence(c *gin.Context) {
	var req struct {
		SprintID         any                    `json:"sprint_id"`
		ConfluencePageID any                    `json:"confluence_page_id"`
		SprintInsights   *domain.SprintInsights `json:"sprint_insights"`
	}
	_ = c.ShouldBindJSON(&req)
	sprintID := toStr(req.SprintID)
	pageID := toStr(req.ConfluencePageID)
	if sprintID == "" || pageID == "" || req.SprintInsights == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sprint_id, confluence_page_id and sprint_insights are required"})
		return
	}
	result := h.svc.UpdateConfluencePage(c.Request.Context(), pageID, *req.SprintInsights)
	c.JSON(http.StatusOK, result)
}

// toStr renders a JSON-decoded id as a string. Callers send both "123" and
// 123; the original server accepted either.
func toStr(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

/* Copyright (c) 2025 PMO-MCP Authors
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonbondani/PMO-MCP/internal/domain"
	"github.com/jonbondani/PMO-MCP/internal/services"
)

// Tool dispatch error codes.
const (
	codeInvalidRequest   = "invalid_request"
	codeInvalidInput     = "invalid_input"
	codeResourceNotFound = "resource_not_found"
	codeUnknownTool      = "unknown_tool"
	codeInternalError    = "internal_error"
)

type toolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

// toolCatalog is fixed: two tools, declared shapes, nothing discovered at
// runtime.
var toolCatalog = []toolDescriptor{
	{
		Name:        "get_sprint_info",
		Description: "Fetch a Jira sprint with its issues and computed metrics.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"sprint_id": map[string]any{"type": "string", "description": "Jira sprint identifier"},
			},
			"required": []string{"sprint_id"},
		},
	},
	{
		Name:        "update_confluence_page",
		Description: "Render sprint insights into an existing Confluence page.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"sprint_id":          map[string]any{"type": "string", "description": "Jira sprint identifier"},
				"confluence_page_id": map[string]any{"type": "string", "description": "Confluence page identifier"},
				"sprint_insights":    map[string]any{"type": "object", "description": "Sprint and metrics payload to render"},
			},
			"required": []string{"sprint_id", "confluence_page_id", "sprint_insights"},
		},
	},
}

func (h *Handlers) Tools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": toolCatalog})
}

func toolError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

// Execute dispatches a tool invocation by exact name match.
func (h *Handlers) Execute(c *gin.Context) {
	var req struct {
		Name  string         `json:"name"`
		Input map[string]any `json:"input"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.Name == "" {
		toolError(c, http.StatusBadRequest, codeInvalidRequest, "tool name is required")
		return
	}

	switch req.Name {
	case "get_sprint_info":
		sprintID := toStr(req.Input["sprint_id"])
		if sprintID == "" {
			toolError(c, http.StatusBadRequest, codeInvalidInput, "sprint_id is required")
			return
		}
		sc, err := h.svc.SprintContext(c.Request.Context(), sprintID)
		if err != nil {
			if err == services.ErrSprintNotFound {
				toolError(c, http.StatusNotFound, codeResourceNotFound, "could not fetch sprint information")
				return
			}
			toolError(c, http.StatusInternalServerError, codeInternalError, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"result": sc})

	case "update_confluence_page":
		sprintID := toStr(req.Input["sprint_id"])
		pageID := toStr(req.Input["confluence_page_id"])
		rawInsights, hasInsights := req.Input["sprint_insights"]
		if sprintID == "" || pageID == "" || !hasInsights {
			toolError(c, http.StatusBadRequest, codeInvalidInput, "sprint_id, confluence_page_id and sprint_insights are required")
			return
		}
		insights, err := decodeInsights(rawInsights)
		if err != nil {
			toolError(c, http.StatusBadRequest, codeInvalidInput, "sprint_insights must be an object")
			return
		}
		result := h.svc.UpdateConfluencePage(c.Request.Context(), pageID, insights)
		c.JSON(http.StatusOK, gin.H{"result": result})

	default:
		toolError(c, http.StatusNotFound, codeUnknownTool, "unknown tool: "+req.Name)
	}
}

// decodeInsights re-marshals the loosely-typed input object into the typed
// insights payload.
func decodeInsights(v any) (domain.SprintInsights, error) {
	var out domain.SprintInsights
	m, ok := v.(map[string]any)
	if !ok { return out, errors.New("sprint_insights is not an object") }
	b, err := json.Marshal(m)
	if err != nil { return out, err }
	if err := json.Unmarshal(b, &out); err != nil { return out, err }
	return out, nil
}

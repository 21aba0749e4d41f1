package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/lineup/internal/config"
	"github.com/hpungsan/lineup/internal/directory"
	"github.com/hpungsan/lineup/internal/errors"
	"github.com/hpungsan/lineup/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
	dir directory.Directory
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config, dir directory.Directory) *Handlers {
	return &Handlers{db: db, cfg: cfg, dir: dir}
}

// Request types for each tool

// CaptureRequest represents the arguments for order_capture.
type CaptureRequest struct {
	Workspace string `json:"workspace,omitempty"`
	Group     string `json:"group,omitempty"`
}

// RollbackRequest represents the arguments for order_rollback.
type RollbackRequest struct {
	Workspace string `json:"workspace,omitempty"`
	Group     string `json:"group,omitempty"`
}

// ShowRequest represents the arguments for order_show.
type ShowRequest struct {
	Workspace string `json:"workspace,omitempty"`
	Group     string `json:"group"`
}

// ListRequest represents the arguments for order_list.
type ListRequest struct {
	Workspace string `json:"workspace,omitempty"`
}

// ClearRequest represents the arguments for order_clear.
type ClearRequest struct {
	Workspace string `json:"workspace,omitempty"`
	Group     string `json:"group,omitempty"`
}

// workspaceOrDefault falls back to the configured workspace when the request
// leaves it empty.
func (h *Handlers) workspaceOrDefault(ws string) string {
	if ws == "" {
		return h.cfg.Workspace
	}
	return ws
}

// Handler implementations

// HandleCapture handles the order_capture tool call.
func (h *Handlers) HandleCapture(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CaptureRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Capture(ctx, h.db, h.dir, ops.CaptureInput{
		Workspace: h.workspaceOrDefault(input.Workspace),
		Group:     input.Group,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRollback handles the order_rollback tool call.
func (h *Handlers) HandleRollback(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RollbackRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Rollback(ctx, h.db, h.dir, ops.RollbackInput{
		Workspace: h.workspaceOrDefault(input.Workspace),
		Group:     input.Group,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleShow handles the order_show tool call.
func (h *Handlers) HandleShow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ShowRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Group == "" {
		return errorResult(errors.NewInvalidRequest("group is required")), nil
	}

	result, err := ops.Show(ctx, h.db, h.dir, ops.ShowInput{
		Workspace: h.workspaceOrDefault(input.Workspace),
		Group:     input.Group,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the order_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(ctx, h.db, h.dir, ops.ListInput{
		Workspace: h.workspaceOrDefault(input.Workspace),
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleClear handles the order_clear tool call.
func (h *Handlers) HandleClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ClearRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Clear(ctx, h.db, h.dir, ops.ClearInput{
		Workspace: h.workspaceOrDefault(input.Workspace),
		Group:     input.Group,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if lErr, ok := err.(*errors.LineupError); ok {
		errorObj := map[string]any{
			"code":    lErr.Code,
			"message": lErr.Message,
			"status":  lErr.Status,
		}
		if lErr.Code != errors.ErrInternal && lErr.Details != nil {
			errorObj["details"] = lErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/mindit-cli/internal/domain"
	"github.com/xvierd/mindit-cli/internal/ports"
	"github.com/xvierd/mindit-cli/internal/report"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.MCPStateProvider
	chatProvider  ports.MCPChatProvider

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.MCPStateProvider, chatProvider ports.MCPChatProvider) *Server {
	s := &Server{
		stateProvider: stateProvider,
		chatProvider:  chatProvider,
	}

	s.server = server.NewMCPServer(
		"mindit",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"list_activities",
			mcp.WithDescription("List the relaxation activities a session can be started for"),
		),
		s.handleListActivities,
	)

	startSessionTool := mcp.NewTool(
		"start_session",
		mcp.WithDescription("Start timing a relaxation session. Any running session is discarded."),
		mcp.WithString(
			"activity",
			mcp.Required(),
			mcp.Description("Activity to time"),
			mcp.Enum(activityNames()...),
		),
	)
	s.server.AddTool(startSessionTool, s.handleStartSession)

	s.server.AddTool(
		mcp.NewTool(
			"complete_session",
			mcp.WithDescription("Stop the running session and record it in the history"),
		),
		s.handleCompleteSession,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_session",
			mcp.WithDescription("Get the running session: activity, elapsed time and status"),
		),
		s.handleGetSession,
	)

	reportTool := mcp.NewTool(
		"get_report",
		mcp.WithDescription("Get total relaxation time and a per-activity breakdown of completed sessions"),
		mcp.WithString(
			"format",
			mcp.Description("Output format (default json)"),
			mcp.Enum(report.Formats...),
		),
	)
	s.server.AddTool(reportTool, s.handleGetReport)

	askTool := mcp.NewTool(
		"ask_coach",
		mcp.WithDescription("Send a message to the Mind It wellness assistant and get its reply"),
		mcp.WithString(
			"message",
			mcp.Required(),
			mcp.Description("The message to send"),
		),
		mcp.WithString(
			"mode",
			mcp.Description("standard (coach), fast (short answers) or thinking (extended reasoning)"),
			mcp.Enum("standard", "fast", "thinking"),
		),
	)
	s.server.AddTool(askTool, s.handleAskCoach)

	s.server.AddTool(
		mcp.NewTool(
			"get_chat_history",
			mcp.WithDescription("Get the stored conversation with the assistant"),
		),
		s.handleGetChatHistory,
	)

	s.server.AddTool(
		mcp.NewTool(
			"clear_chat_history",
			mcp.WithDescription("Reset the conversation to the assistant's greeting"),
		),
		s.handleClearChatHistory,
	)
}

func activityNames() []string {
	acts := domain.Activities()
	names := make([]string, len(acts))
	for i, a := range acts {
		names[i] = string(a.Kind)
	}
	return names
}

// Start begins serving MCP requests via stdio. It returns when ctx is
// cancelled, Stop is called or stdin is closed.
func (s *Server) Start(ctx context.Context) error {
	return s.serve(ctx, os.Stdin, os.Stdout)
}

func (s *Server) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	runCtx, cancel := s.ctx, s.cancel
	s.mu.Unlock()
	defer cancel()

	err := server.NewStdioServer(s.server).Listen(runCtx, in, out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func sessionResult(active domain.ActiveSession) map[string]interface{} {
	result := map[string]interface{}{
		"activity":        nil,
		"elapsed_seconds": active.ElapsedSeconds,
		"elapsed":         domain.FormatTime(active.ElapsedSeconds),
		"running":         active.IsRunning,
		"status":          domain.GetStatusLabel(active),
	}
	if active.HasActivity() {
		result["activity"] = string(active.SelectedActivity)
	}
	return result
}

func recordResult(rec domain.SessionRecord) map[string]interface{} {
	return map[string]interface{}{
		"id":               rec.ID,
		"activity":         string(rec.Activity),
		"duration_seconds": rec.DurationSeconds,
		"duration":         domain.FormatTime(rec.DurationSeconds),
		"timestamp":        rec.Timestamp.Format(time.RFC3339),
	}
}

// handleListActivities handles the list_activities tool.
func (s *Server) handleListActivities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	acts := domain.Activities()
	result := make([]map[string]interface{}, 0, len(acts))
	for _, a := range acts {
		result = append(result, map[string]interface{}{
			"name":  string(a.Kind),
			"icon":  a.Icon,
			"color": a.Color,
		})
	}
	return jsonResult(result)
}

// handleStartSession handles the start_session tool.
func (s *Server) handleStartSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := request.GetString("activity", "")
	if raw == "" {
		return mcp.NewToolResultError("activity is required"), nil
	}
	activity, err := domain.ValidateActivity(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := s.stateProvider.StartSession(ctx, activity)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to start session: %v", err)), nil
	}
	return jsonResult(sessionResult(state.Active))
}

// handleCompleteSession handles the complete_session tool.
func (s *Server) handleCompleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := s.stateProvider.CompleteSession(ctx)
	if errors.Is(err, domain.ErrNoActiveSession) {
		return mcp.NewToolResultError("no session is running"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to complete session: %v", err)), nil
	}
	return jsonResult(recordResult(*rec))
}

// handleGetSession handles the get_session tool.
func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.GetCurrentState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current state: %w", err)
	}
	result := sessionResult(state.Active)
	if last, ok := state.LastRecord(); ok {
		result["last_record"] = recordResult(last)
	}
	return jsonResult(result)
}

// handleGetReport handles the get_report tool.
func (s *Server) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.GetCurrentState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current state: %w", err)
	}

	format := request.GetString("format", report.FormatJSON)
	var buf bytes.Buffer
	if err := report.Export(&buf, report.NewSnapshot(state.History, time.Now()), format); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// handleAskCoach handles the ask_coach tool.
func (s *Server) handleAskCoach(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message := request.GetString("message", "")
	mode, err := domain.ValidateChatMode(request.GetString("mode", string(domain.ChatModeStandard)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	reply, err := s.chatProvider.Send(ctx, message, mode)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(reply.Text), nil
}

// handleGetChatHistory handles the get_chat_history tool.
func (s *Server) handleGetChatHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.chatProvider.Messages())
}

// handleClearChatHistory handles the clear_chat_history tool.
func (s *Server) handleClearChatHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.chatProvider.Clear(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to clear chat history: %v", err)), nil
	}
	return mcp.NewToolResultText("Chat history cleared."), nil
}

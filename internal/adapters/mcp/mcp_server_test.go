package mcp

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/xvierd/mindit-cli/internal/domain"
)

// mockStateProvider is a mock implementation of ports.MCPStateProvider for testing.
type mockStateProvider struct {
	state domain.CurrentState
}

func (m *mockStateProvider) GetCurrentState(ctx context.Context) (*domain.CurrentState, error) {
	state := m.state
	return &state, nil
}

func (m *mockStateProvider) StartSession(ctx context.Context, activity domain.ActivityKind) (*domain.CurrentState, error) {
	m.state.Active.Start(activity)
	return m.GetCurrentState(ctx)
}

func (m *mockStateProvider) CompleteSession(ctx context.Context) (*domain.SessionRecord, error) {
	rec, err := m.state.Active.Complete(time.Now())
	if err != nil {
		return nil, err
	}
	m.state.History = append([]domain.SessionRecord{rec}, m.state.History...)
	return &rec, nil
}

// mockChatProvider is a mock implementation of ports.MCPChatProvider for testing.
type mockChatProvider struct {
	messages []domain.ChatMessage
	lastMode domain.ChatMode
}

func (m *mockChatProvider) Send(ctx context.Context, text string, mode domain.ChatMode) (domain.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return domain.ChatMessage{}, domain.ErrEmptyMessage
	}
	m.lastMode = mode
	reply := domain.NewChatMessage(domain.RoleModel, "echo: "+text)
	m.messages = append(m.messages, domain.NewChatMessage(domain.RoleUser, text), reply)
	return reply, nil
}

func (m *mockChatProvider) Messages() []domain.ChatMessage {
	return m.messages
}

func (m *mockChatProvider) Clear(ctx context.Context) error {
	m.messages = []domain.ChatMessage{domain.GreetingMessage()}
	return nil
}

func newTestServer() (*Server, *mockStateProvider, *mockChatProvider) {
	state := &mockStateProvider{}
	chat := &mockChatProvider{messages: []domain.ChatMessage{domain.GreetingMessage()}}
	return NewServer(state, chat), state, chat
}

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("nil result")
	}
	for _, c := range result.Content {
		switch tc := c.(type) {
		case mcp.TextContent:
			return tc.Text
		case *mcp.TextContent:
			return tc.Text
		}
	}
	t.Fatal("result has no text content")
	return ""
}

func TestNewServer(t *testing.T) {
	server, _, _ := newTestServer()
	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
	if server.server == nil {
		t.Error("NewServer() did not create MCP server")
	}
}

func TestServer_IsRunning(t *testing.T) {
	server, _, _ := newTestServer()
	if server.IsRunning() {
		t.Error("IsRunning() should be false before Start()")
	}
}

func TestServer_handleListActivities(t *testing.T) {
	server, _, _ := newTestServer()
	result, err := server.handleListActivities(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("handleListActivities() error = %v", err)
	}

	var acts []map[string]interface{}
	if err := json.Unmarshal([]byte(resultText(t, result)), &acts); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(acts) != 6 {
		t.Errorf("got %d activities, want 6", len(acts))
	}
}

func TestServer_SessionLifecycle(t *testing.T) {
	server, state, _ := newTestServer()
	ctx := context.Background()

	result, err := server.handleStartSession(ctx, toolRequest(map[string]interface{}{"activity": "walking"}))
	if err != nil {
		t.Fatalf("handleStartSession() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("handleStartSession() returned error result: %s", resultText(t, result))
	}
	if state.state.Active.SelectedActivity != domain.ActivityWalking {
		t.Errorf("activity = %v, want Walking", state.state.Active.SelectedActivity)
	}

	state.state.Active.Tick()
	state.state.Active.Tick()

	result, err = server.handleGetSession(ctx, toolRequest(nil))
	if err != nil {
		t.Fatalf("handleGetSession() error = %v", err)
	}
	if !strings.Contains(resultText(t, result), `"elapsed": "00:02"`) {
		t.Errorf("get_session = %s", resultText(t, result))
	}

	result, err = server.handleCompleteSession(ctx, toolRequest(nil))
	if err != nil {
		t.Fatalf("handleCompleteSession() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("handleCompleteSession() returned error result: %s", resultText(t, result))
	}
	if len(state.state.History) != 1 {
		t.Errorf("history length = %d, want 1", len(state.state.History))
	}

	result, _ = server.handleCompleteSession(ctx, toolRequest(nil))
	if !result.IsError {
		t.Error("second complete_session should return an error result")
	}
}

func TestServer_handleStartSession_Invalid(t *testing.T) {
	server, _, _ := newTestServer()
	for _, args := range []map[string]interface{}{{}, {"activity": "sleeping"}} {
		result, err := server.handleStartSession(context.Background(), toolRequest(args))
		if err != nil {
			t.Fatalf("handleStartSession() error = %v", err)
		}
		if !result.IsError {
			t.Errorf("handleStartSession(%v) should return error result", args)
		}
	}
}

func TestServer_handleGetReport(t *testing.T) {
	server, state, _ := newTestServer()
	state.state.History = []domain.SessionRecord{
		{ID: "a", Activity: domain.ActivityReading, DurationSeconds: 3661},
		{ID: "b", Activity: domain.ActivityGaming, DurationSeconds: 5000},
	}

	result, err := server.handleGetReport(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("handleGetReport() error = %v", err)
	}
	if !strings.Contains(resultText(t, result), `"total_time": "2h 24m"`) {
		t.Errorf("get_report = %s", resultText(t, result))
	}

	result, _ = server.handleGetReport(context.Background(), toolRequest(map[string]interface{}{"format": "yaml"}))
	if !strings.Contains(resultText(t, result), "total_time: 2h 24m") {
		t.Errorf("yaml report = %s", resultText(t, result))
	}

	result, _ = server.handleGetReport(context.Background(), toolRequest(map[string]interface{}{"format": "pdf"}))
	if !result.IsError {
		t.Error("unknown format should return error result")
	}
}

func TestServer_Chat(t *testing.T) {
	server, _, chat := newTestServer()
	ctx := context.Background()

	result, err := server.handleAskCoach(ctx, toolRequest(map[string]interface{}{"message": "hi", "mode": "fast"}))
	if err != nil {
		t.Fatalf("handleAskCoach() error = %v", err)
	}
	if resultText(t, result) != "echo: hi" {
		t.Errorf("ask_coach = %q", resultText(t, result))
	}
	if chat.lastMode != domain.ChatModeFast {
		t.Errorf("mode = %v, want fast", chat.lastMode)
	}

	result, _ = server.handleAskCoach(ctx, toolRequest(map[string]interface{}{"message": "hi", "mode": "turbo"}))
	if !result.IsError {
		t.Error("invalid mode should return error result")
	}
	result, _ = server.handleAskCoach(ctx, toolRequest(map[string]interface{}{}))
	if !result.IsError {
		t.Error("missing message should return error result")
	}

	result, _ = server.handleGetChatHistory(ctx, toolRequest(nil))
	var msgs []domain.ChatMessage
	if err := json.Unmarshal([]byte(resultText(t, result)), &msgs); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(msgs) != 3 {
		t.Errorf("history length = %d, want 3", len(msgs))
	}

	if _, err := server.handleClearChatHistory(ctx, toolRequest(nil)); err != nil {
		t.Fatalf("handleClearChatHistory() error = %v", err)
	}
	if len(chat.messages) != 1 {
		t.Errorf("messages after clear = %d, want 1", len(chat.messages))
	}
}

func TestServer_Stop(t *testing.T) {
	server, _, _ := newTestServer()

	// Stop before Start should not panic
	if err := server.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestServer_StopEndsServe(t *testing.T) {
	server, _, _ := newTestServer()
	in, inW := io.Pipe()
	defer inW.Close()

	done := make(chan error, 1)
	go func() { done <- server.serve(context.Background(), in, io.Discard) }()

	deadline := time.Now().Add(2 * time.Second)
	for !server.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("server never reported running")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := server.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve() error = %v, want nil after Stop", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve() did not return after Stop")
	}
	if server.IsRunning() {
		t.Error("IsRunning() should be false after Stop()")
	}
}

func TestServer_ContextCancelEndsServe(t *testing.T) {
	server, _, _ := newTestServer()
	in, inW := io.Pipe()
	defer inW.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.serve(ctx, in, io.Discard) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve() error = %v, want nil after cancel", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve() did not return after the context was cancelled")
	}
}

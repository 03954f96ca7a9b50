// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.MCPStateProvider
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.MCPStateProvider) *Server {
	s := &Server{
		stateProvider: stateProvider,
	}

	s.server = server.NewMCPServer(
		"pomo",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	// Tool: get_status
	s.server.AddTool(
		mcp.NewTool(
			"get_status",
			mcp.WithDescription("Get the current pomo state: timer, active task, today's stats and streak"),
		),
		s.handleGetStatus,
	)

	// Tool: list_tasks
	s.server.AddTool(
		mcp.NewTool(
			"list_tasks",
			mcp.WithDescription("List all tasks in list order"),
		),
		s.handleListTasks,
	)

	// Tool: add_task
	addTaskTool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Add a task to the end of the task list"),
		mcp.WithString(
			"text",
			mcp.Required(),
			mcp.Description("The task text"),
		),
		mcp.WithNumber(
			"estimated",
			mcp.Description("Estimated pomodoros, clamped to 1-10 (default: 1)"),
		),
	)
	s.server.AddTool(addTaskTool, s.handleAddTask)

	// Tool: complete_task
	completeTaskTool := mcp.NewTool(
		"complete_task",
		mcp.WithDescription("Toggle a task's completion state"),
		mcp.WithString(
			"task_id",
			mcp.Required(),
			mcp.Description("The ID of the task to toggle"),
		),
	)
	s.server.AddTool(completeTaskTool, s.handleCompleteTask)

	// Tool: set_active_task
	setActiveTool := mcp.NewTool(
		"set_active_task",
		mcp.WithDescription("Mark a task as the one being worked on; completed work sessions count against it"),
		mcp.WithString(
			"task_id",
			mcp.Required(),
			mcp.Description("The ID of the task to activate"),
		),
	)
	s.server.AddTool(setActiveTool, s.handleSetActiveTask)

	// Tool: get_stats
	statsTool := mcp.NewTool(
		"get_stats",
		mcp.WithDescription("Get daily pomodoro statistics for the trailing days"),
		mcp.WithNumber(
			"days",
			mcp.Description("Number of trailing days to include (default: 7)"),
		),
	)
	s.server.AddTool(statsTool, s.handleGetStats)

	// Tool: get_history
	historyTool := mcp.NewTool(
		"get_history",
		mcp.WithDescription("Get recently completed work sessions, newest first"),
		mcp.WithNumber(
			"limit",
			mcp.Description("Maximum entries to return (default: 10)"),
		),
	)
	s.server.AddTool(historyTool, s.handleGetHistory)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// taskPayload shapes a task for tool output.
func taskPayload(task *domain.Task) map[string]interface{} {
	payload := map[string]interface{}{
		"id":         task.ID,
		"text":       task.Text,
		"completed":  task.Completed,
		"estimated":  task.Estimated,
		"actual":     task.Actual,
		"position":   task.Position,
		"created_at": task.CreatedAt.Format("2006-01-02T15:04:05"),
	}
	if task.CompletedAt != nil {
		payload["completed_at"] = task.CompletedAt.Format("2006-01-02T15:04:05")
	}
	return payload
}

// handleGetStatus handles the get_status tool.
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.GetCurrentState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current state: %w", err)
	}

	result := map[string]interface{}{
		"timer": map[string]interface{}{
			"remaining_seconds":   state.Timer.Remaining,
			"total_seconds":       state.Timer.Total,
			"session_type":        string(state.Timer.Type),
			"running":             state.Timer.Running,
			"auto_start_pending":  state.Timer.AutoStartPending,
			"completed_pomodoros": state.Timer.CompletedPomodoros,
			"progress":            state.Timer.Progress(),
		},
		"active_task": nil,
		"today": map[string]interface{}{
			"date":          state.Today.Date,
			"pomodoros":     state.Today.Pomodoros,
			"focus_minutes": state.Today.FocusMinutes,
		},
		"streak":              state.Streak,
		"sessions_until_long": state.SessionsUntilLong,
	}

	if state.ActiveTask != nil {
		result["active_task"] = taskPayload(state.ActiveTask)
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleListTasks handles the list_tasks tool.
func (s *Server) handleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks, err := s.stateProvider.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	taskList := make([]map[string]interface{}, 0, len(tasks))
	for _, task := range tasks {
		taskList = append(taskList, taskPayload(task))
	}

	result := map[string]interface{}{
		"tasks":       taskList,
		"total_count": len(taskList),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tasks: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleAddTask handles the add_task tool.
func (s *Server) handleAddTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required: " + err.Error()), nil
	}

	estimated := int(request.GetFloat("estimated", 1))

	task, err := s.stateProvider.AddTask(ctx, text, estimated)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add task: %v", err)), nil
	}

	jsonData, err := json.MarshalIndent(taskPayload(task), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleCompleteTask handles the complete_task tool.
func (s *Server) handleCompleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError("task_id is required: " + err.Error()), nil
	}

	task, err := s.stateProvider.CompleteTask(ctx, taskID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to complete task: %v", err)), nil
	}

	jsonData, err := json.MarshalIndent(taskPayload(task), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleSetActiveTask handles the set_active_task tool.
func (s *Server) handleSetActiveTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError("task_id is required: " + err.Error()), nil
	}

	if err := s.stateProvider.SetActiveTask(ctx, taskID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set active task: %v", err)), nil
	}

	result := map[string]interface{}{
		"active_task_id": taskID,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetStats handles the get_stats tool.
func (s *Server) handleGetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := int(request.GetFloat("days", 7))

	stats, err := s.stateProvider.GetStats(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	dayList := make([]map[string]interface{}, 0, len(stats))
	totalPomodoros := 0
	totalMinutes := 0
	for _, day := range stats {
		dayList = append(dayList, map[string]interface{}{
			"date":          day.Date,
			"pomodoros":     day.Pomodoros,
			"focus_minutes": day.FocusMinutes,
		})
		totalPomodoros += day.Pomodoros
		totalMinutes += day.FocusMinutes
	}

	result := map[string]interface{}{
		"days":                dayList,
		"total_pomodoros":     totalPomodoros,
		"total_focus_minutes": totalMinutes,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stats: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetHistory handles the get_history tool.
func (s *Server) handleGetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(request.GetFloat("limit", 10))

	entries, err := s.stateProvider.GetRecentSessions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	sessionList := make([]map[string]interface{}, 0, len(entries))
	for _, entry := range entries {
		sessionData := map[string]interface{}{
			"id":               entry.ID,
			"completed_at":     entry.CompletedAt.Format("2006-01-02T15:04:05"),
			"duration_minutes": entry.DurationMinutes,
		}
		if entry.TaskName != "" {
			sessionData["task_name"] = entry.TaskName
		}
		if entry.Repository != "" {
			sessionData["repository"] = entry.Repository
		}
		if entry.Branch != "" {
			sessionData["branch"] = entry.Branch
		}
		sessionList = append(sessionList, sessionData)
	}

	result := map[string]interface{}{
		"sessions":       sessionList,
		"total_sessions": len(sessionList),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/nick-dorsch/ticklist/internal/tasklist"
	"github.com/nick-dorsch/ticklist/pkg/models"
)

// NewServer creates a new MCP server exposing the task list as tools.
func NewServer(tasks *tasklist.Guarded, logger *log.Logger) *server.MCPServer {
	s := server.NewMCPServer("Ticklist", "0.1.0")

	s.AddTool(mcp.NewTool("add_task",
		mcp.WithDescription("Add a new incomplete task to the end of the list."),
		mcp.WithString("text", mcp.Description("Task text (must not be blank)"), mcp.Required()),
	), addTaskHandler(tasks, logger))

	s.AddTool(mcp.NewTool("toggle_task",
		mcp.WithDescription("Flip a task between completed and incomplete."),
		mcp.WithNumber("id", mcp.Description("Task id"), mcp.Required()),
	), toggleTaskHandler(tasks, logger))

	s.AddTool(mcp.NewTool("edit_task",
		mcp.WithDescription("Replace the text of a task."),
		mcp.WithNumber("id", mcp.Description("Task id"), mcp.Required()),
		mcp.WithString("text", mcp.Description("New task text (must not be blank)"), mcp.Required()),
	), editTaskHandler(tasks, logger))

	s.AddTool(mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task."),
		mcp.WithNumber("id", mcp.Description("Task id"), mcp.Required()),
	), deleteTaskHandler(tasks, logger))

	s.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List tasks in insertion order, optionally filtered."),
		mcp.WithString("filter", mcp.Description("all (default), completed or incomplete")),
	), listTasksHandler(tasks))

	return s
}

// Serve starts the MCP server on stdio.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func addTaskHandler(tasks *tasklist.Guarded, logger *log.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text := mcp.ParseString(request, "text", "")

		t, err := tasks.Add(text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		logger.Debug("mcp add_task", "id", t.ID)
		return taskResult(t)
	}
}

func toggleTaskHandler(tasks *tasklist.Guarded, logger *log.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := taskIDArg(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		t, err := tasks.Toggle(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		logger.Debug("mcp toggle_task", "id", id, "completed", t.Completed)
		return taskResult(t)
	}
}

func editTaskHandler(tasks *tasklist.Guarded, logger *log.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := taskIDArg(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text := mcp.ParseString(request, "text", "")

		t, err := tasks.Edit(id, text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		logger.Debug("mcp edit_task", "id", id)
		return taskResult(t)
	}
}

func deleteTaskHandler(tasks *tasklist.Guarded, logger *log.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := taskIDArg(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := tasks.Delete(id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		logger.Debug("mcp delete_task", "id", id)
		return mcp.NewToolResultText("Task deleted successfully"), nil
	}
}

func listTasksHandler(tasks *tasklist.Guarded) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter, err := models.ParseFilter(mcp.ParseString(request, "filter", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		list, err := tasks.List(filter)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, err := json.Marshal(map[string]interface{}{"tasks": list})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(data)), nil
	}
}

func taskResult(t models.Task) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// taskIDArg reads the "id" argument, which clients send as a JSON number or
// occasionally as a numeric string.
func taskIDArg(request mcp.CallToolRequest) (int64, error) {
	args, _ := request.Params.Arguments.(map[string]any)
	switch v := args["id"].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("invalid task id %v", v)
		}
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid task id %q", v)
		}
		return id, nil
	case nil:
		return 0, errors.New("missing task id")
	}
	return 0, fmt.Errorf("invalid task id %v", args["id"])
}

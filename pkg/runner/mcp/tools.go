package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/routines/pkg/filter"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListRoutinesTool(srv, svc)
	registerAddRoutineTool(srv, svc)
	registerUpdateRoutineTool(srv, svc)
	registerDeleteRoutineTool(srv, svc)
	registerChartTool(srv, svc)
}

func registerListRoutinesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_routines",
		mcp.WithDescription("List routines sorted by datetime, optionally filtered."),
		mcp.WithString("date",
			mcp.Description("Only routines whose datetime starts with this prefix, e.g. 2024-05-01."),
		),
		mcp.WithString("name",
			mcp.Description("Only routines whose name contains this text, ignoring case."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date string `json:"date"`
			Name string `json:"name"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		routines, err := svc.ListRoutines(ctx, filter.Criteria{DatePrefix: args.Date, NameSubstring: args.Name})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"count":    len(routines),
			"routines": routines,
		})
	})
}

func registerAddRoutineTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_routine",
		mcp.WithDescription("Add a routine."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("What the routine is."),
		),
		mcp.WithString("datetime",
			mcp.Required(),
			mcp.Description("When it happens, e.g. 2024-05-01T07:00."),
		),
		mcp.WithString("student",
			mcp.Description("Optional student the routine belongs to."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Name     string `json:"name"`
			Datetime string `json:"datetime"`
			Student  string `json:"student"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddRoutine(ctx, RoutineOptions(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateRoutineTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_routine",
		mcp.WithDescription("Change a routine. Omitted fields keep their value."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Routine identifier."),
		),
		mcp.WithString("name",
			mcp.Description("New name."),
		),
		mcp.WithString("datetime",
			mcp.Description("New datetime, e.g. 2024-05-01T07:00."),
		),
		mcp.WithString("student",
			mcp.Description("New student name."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var args struct {
			Name     string `json:"name"`
			Datetime string `json:"datetime"`
			Student  string `json:"student"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.UpdateRoutine(ctx, id, RoutineOptions(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteRoutineTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_routine",
		mcp.WithDescription("Delete a routine. Unknown ids are ignored."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Routine identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		deleted, err := svc.DeleteRoutine(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"id": id, "deleted": deleted})
	})
}

func registerChartTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"routine_chart",
		mcp.WithDescription("Count routines per day across all routines."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		days, err := svc.Chart(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"label": "Routines per day", "days": days})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

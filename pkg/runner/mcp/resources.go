package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/routines/pkg/filter"
)

const allRoutinesURI = "routines://all"

func registerResources(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		allRoutinesURI,
		"Routines",
		mcp.WithResourceDescription("Every routine in datetime order."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		routines, err := svc.ListRoutines(ctx, filter.Criteria{})
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"routines": routines,
			"count":    len(routines),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

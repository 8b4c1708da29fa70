package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/csvcheck/internal/adapters/outbound/locale"
	"github.com/openkraft/csvcheck/internal/adapters/outbound/scanner"
	"github.com/openkraft/csvcheck/internal/domain"
	"github.com/openkraft/csvcheck/internal/domain/validator"
)

const validatorsURI = "csvcheck://validators"

// registerResources registers all csvcheck MCP resources on the given server.
func registerResources(s *server.MCPServer) {
	s.AddResource(
		mcplib.NewResource(
			validatorsURI,
			"Validators",
			mcplib.WithResourceDescription("Available CSV checks and the source types they apply to"),
			mcplib.WithMIMEType("application/json"),
		),
		handleValidatorsResource,
	)
}

func handleValidatorsResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	set := validator.NewDefaultSet(locale.NewStatic(nil, nil), scanner.New(), domain.Options{})

	data, err := json.MarshalIndent(set.Describe(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling validators: %w", err)
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      validatorsURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/openkraft/csvcheck/internal/adapters/outbound/config"
	"github.com/openkraft/csvcheck/internal/adapters/outbound/csvsource"
	"github.com/openkraft/csvcheck/internal/adapters/outbound/locale"
	"github.com/openkraft/csvcheck/internal/adapters/outbound/scanner"
	"github.com/openkraft/csvcheck/internal/application"
	"github.com/openkraft/csvcheck/internal/domain"
)

// registerTools registers all csvcheck MCP tools on the given server.
func registerTools(s *server.MCPServer, dir string) {
	s.AddTool(
		mcplib.NewTool("csvcheck_validate",
			mcplib.WithDescription("Validate CSV import files (culture, language, digital object paths) and return the JSON report"),
			mcplib.WithString("files",
				mcplib.Required(),
				mcplib.Description("Comma-separated CSV file paths, relative to the server's working directory"),
			),
			mcplib.WithString("digital_objects", mcplib.Description("Folder holding the files referenced by digitalObjectPath")),
			mcplib.WithString("source", mcplib.Description("Entity type imported: informationObject, repository, actor, accession or event")),
		),
		handleValidate(dir),
	)
}

func handleValidate(dir string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		filesStr, err := request.RequireString("files")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		cfg, err := config.New().Load(dir)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		args := request.GetArguments()
		if v, _ := args["digital_objects"].(string); v != "" {
			cfg.DigitalObjects = resolve(dir, v)
		}
		if v, _ := args["source"].(string); v != "" {
			cfg.Source = domain.SourceType(v)
		}
		if err := cfg.Validate(); err != nil {
			return errorResult(fmt.Sprintf("invalid options: %v", err)), nil
		}

		var paths []string
		for _, f := range strings.Split(filesStr, ",") {
			if f = strings.TrimSpace(f); f != "" {
				paths = append(paths, resolve(dir, f))
			}
		}
		if len(paths) == 0 {
			return errorResult("no CSV files given"), nil
		}

		svc := application.NewValidateService(
			locale.WithExtras(locale.NewXText(), cfg.ExtraCultures, cfg.ExtraLanguages),
			scanner.New(cfg.ExcludePaths...),
			csvsource.NewOpener(),
			zap.NewNop(),
		)
		report, err := svc.ValidateFiles(ctx, cfg, paths)
		if err != nil {
			return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
		}

		return jsonResult(map[string]any{
			"status": report.Status(),
			"counts": report.Counts(),
			"report": report.Sorted(),
		})
	}
}

func resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error result with the given message.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}

package main

import (
	"context"
	"flag"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "specifytools/internal/adapters/mcp"
	"specifytools/internal/adapters/specifydb"
	"specifytools/internal/config"
	"specifytools/internal/logging"
	"specifytools/internal/ports"
)

func main() {
	configFlag := flag.String("config", config.ConfigPath(), "default database config JSON")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	// stdout carries the MCP protocol, so logs go to stderr as JSON
	logging.Configure(&logging.Config{Level: *logLevel, Format: "json", Output: "stderr"})
	config.LoadEnvFiles()

	open := func(ctx context.Context, path string) (ports.TaxonStore, error) {
		if path == "" {
			path = *configFlag
		}
		db, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		store, err := specifydb.Open(ctx, db)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	mcpServer := server.NewMCPServer(
		"specify-synonymize-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterTools(mcpServer, open)

	if err := server.ServeStdio(mcpServer); err != nil {
		logging.Default().Error().Err(err).Msg("specify-synonymize-mcp stopped")
		os.Exit(1)
	}
}

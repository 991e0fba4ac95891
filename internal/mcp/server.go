package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Services contains all domain services needed by MCP.
type Services struct {
	Projects ProjectService
	Versions VersionService
	Renders  RenderService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and doc
// resources.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "sceneforge",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	handler := NewHandler(cfg.Services.Projects, cfg.Services.Versions, cfg.Services.Renders)
	registerTools(server, handler)

	return server
}

// Package server exposes the pilot as Model Context Protocol tools.
package server

import (
	"fmt"
	"sync"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-pilot/internal/pilot"
	"github.com/mj1618/desktop-pilot/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
}

// Server wraps the MCP server with the pilot and a frame cache. Tool calls
// are serialized by pilotMu: the pilot drives a single mouse and keyboard.
type Server struct {
	pilot   *pilot.Pilot
	pilotMu sync.Mutex
	cache   *FrameCache
	mcp     *mcpserver.MCPServer
	logger  *zap.Logger
}

// New creates an MCP server with all desktop-pilot tools registered.
func New(p *pilot.Pilot, cfg Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		pilot:  p,
		cache:  NewFrameCache(cfg.CacheTTL),
		logger: logger.Named("mcp"),
	}
	s.mcp = mcpserver.NewMCPServer(
		"desktop-pilot",
		version.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)
	s.registerTools()
	return s
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// Serve starts the MCP server with the configured transport and blocks.
func (s *Server) Serve(cfg Config) error {
	s.logger.Info("serving", zap.String("transport", cfg.Transport), zap.Int("port", cfg.Port))
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

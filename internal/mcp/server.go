package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/polishedai/polished/internal/polish"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes text polishing tools.
type Server struct {
	improver polish.Improver
	tone     polish.Tone
	logger   *zap.Logger
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server. tone is used when a call names none.
func NewServer(improver polish.Improver, tone polish.Tone, logger *zap.Logger) *Server {
	if !tone.Valid() {
		tone = polish.DefaultTone
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		improver: improver,
		tone:     tone,
		logger:   logger,
	}

	s.mcp = server.NewMCPServer(
		"polished",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(polishTextTool, s.handlePolishText)
	s.mcp.AddTool(listTonesTool, s.handleListTones)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

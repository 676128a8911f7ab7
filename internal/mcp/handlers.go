package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/polishedai/polished/internal/polish"
)

// handlePolishText runs one polish session over the given text.
func (s *Server) handlePolishText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	tone := s.tone
	if name := request.GetString("tone", ""); name != "" {
		tone, err = polish.ParseTone(name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%v; valid tones: %s", err, strings.Join(toneNames(), ", "))), nil
		}
	}

	if s.improver == nil {
		return mcp.NewToolResultError("No LLM provider is configured. Run `polished init` to set one up."), nil
	}

	improved, err := polish.PolishText(ctx, s.improver, text, tone)
	if errors.Is(err, polish.ErrEmptySelection) {
		return mcp.NewToolResultError("text is empty"), nil
	}
	if err != nil {
		s.logger.Warn("polish_text failed", zap.String("tone", tone.String()), zap.Error(err))
		return mcp.NewToolResultError(polish.FailureMessage(err)), nil
	}

	return mcp.NewToolResultText(improved), nil
}

// handleListTones returns the tone set, one per line, marking the default.
func (s *Server) handleListTones(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, t := range polish.Tones() {
		b.WriteString(t.String())
		if t == s.tone {
			b.WriteString(" (default)")
		}
		b.WriteByte('\n')
	}
	return mcp.NewToolResultText(b.String()), nil
}

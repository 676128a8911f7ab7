package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/polishedai/polished/internal/polish"
)

func toneNames() []string {
	tones := polish.Tones()
	names := make([]string, len(tones))
	for i, t := range tones {
		names[i] = t.String()
	}
	return names
}

// polishTextTool defines the polish_text MCP tool.
var polishTextTool = mcp.NewTool("polish_text",
	mcp.WithDescription("Fix punctuation, capitalization and grammar in a piece of text and adjust its tone. Returns only the improved text."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("The text to improve"),
	),
	mcp.WithString("tone",
		mcp.Description("Target tone (default Professional)"),
		mcp.Enum(toneNames()...),
	),
)

// listTonesTool defines the list_tones MCP tool.
var listTonesTool = mcp.NewTool("list_tones",
	mcp.WithDescription("List the tones polish_text accepts, in display order."),
)

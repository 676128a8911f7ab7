package extension

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	gmext "github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var guideMarkdown = goldmark.New(
	goldmark.WithExtensions(
		gmext.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

var fenceLang = map[string]string{
	".js":   "javascript",
	".json": "json",
	".css":  "css",
}

// GuideMarkdown returns the install instructions followed by the source of
// every text file as fenced code.
func (b *Bundle) GuideMarkdown() string {
	var sb strings.Builder
	if readme, ok := b.File("README.md"); ok {
		sb.Write(readme.Content)
	}
	sb.WriteString("\n## Source\n")
	for _, f := range b.Files {
		lang, ok := fenceLang[path.Ext(f.Name)]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "\n### %s\n\n```%s\n%s", f.Name, lang, f.Content)
		if !bytes.HasSuffix(f.Content, []byte("\n")) {
			sb.WriteByte('\n')
		}
		sb.WriteString("```\n")
	}
	return sb.String()
}

// RenderGuide renders GuideMarkdown to HTML with highlighted code blocks.
func (b *Bundle) RenderGuide() ([]byte, error) {
	var buf bytes.Buffer
	if err := guideMarkdown.Convert([]byte(b.GuideMarkdown()), &buf); err != nil {
		return nil, fmt.Errorf("rendering install guide: %w", err)
	}
	return buf.Bytes(), nil
}

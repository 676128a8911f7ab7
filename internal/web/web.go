// Package web serves the landing page, the interactive demo and the
// extension downloads.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/polishedai/polished/internal/extension"
	"github.com/polishedai/polished/internal/polish"
)

//go:embed static/index.html
var staticFS embed.FS

// DemoText seeds every demo session.
const DemoText = "hey i was wonderng if u got the report i sent yesturday its kinda urgent so pls let me knw asap thanks"

const msgNoProvider = "No LLM provider is configured on this server."

// Options configure a Site.
type Options struct {
	Improver    polish.Improver
	Bundle      *extension.Bundle
	DefaultTone polish.Tone
	DemoText    string
	Logger      *zap.Logger
}

// Site holds the web handlers.
type Site struct {
	improver polish.Improver
	bundle   *extension.Bundle
	tone     polish.Tone
	demoText string
	logger   *zap.Logger
	guide    []byte
}

// New creates a Site and pre-renders the install guide.
func New(opts Options) (*Site, error) {
	s := &Site{
		improver: opts.Improver,
		bundle:   opts.Bundle,
		tone:     opts.DefaultTone,
		demoText: opts.DemoText,
		logger:   opts.Logger,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if !s.tone.Valid() {
		s.tone = polish.DefaultTone
	}
	if s.demoText == "" {
		s.demoText = DemoText
	}
	if s.improver == nil {
		s.improver = polish.ImproverFunc(func(context.Context, string, polish.Tone) (string, error) {
			return "", polish.NewRequestError(msgNoProvider, nil)
		})
	}
	if s.bundle != nil {
		body, err := s.bundle.RenderGuide()
		if err != nil {
			return nil, err
		}
		s.guide = body
	}
	return s, nil
}

// RegisterRoutes mounts the pages on api and the demo WebSocket on stream,
// which must not carry a request timeout.
func (s *Site) RegisterRoutes(api, stream chi.Router) {
	api.Get("/", s.handleIndex)
	api.Get("/extension", s.handleGuide)
	api.Get("/extension/download", s.handleDownload)
	api.Get("/api/extension/files", s.handleFiles)
	stream.Get("/ws/demo", s.handleDemo)
}

func (s *Site) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "index missing", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

var guidePage = template.Must(template.New("guide").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Name}}: install guide</title>
<style>
body { max-width: 860px; margin: 0 auto; padding: 32px 24px; font-family: system-ui, sans-serif; line-height: 1.6; color: #1f2937; }
pre { padding: 12px; border-radius: 8px; overflow: auto; font-size: 13px; border: 1px solid #e5e7eb; }
code { font-size: 13px; }
.download { display: inline-block; padding: 10px 20px; background: #10b981; color: white; border-radius: 8px; text-decoration: none; font-weight: 600; }
</style>
</head>
<body>
<p><a class="download" href="/extension/download">Download extension.zip</a></p>
{{.Body}}
</body>
</html>
`))

func (s *Site) handleGuide(w http.ResponseWriter, r *http.Request) {
	if s.bundle == nil {
		http.Error(w, "extension not configured", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := guidePage.Execute(w, struct {
		Name string
		Body template.HTML
	}{Name: s.bundle.Options.Name, Body: template.HTML(s.guide)})
	if err != nil {
		s.logger.Warn("rendering guide", zap.Error(err))
	}
}

func (s *Site) handleDownload(w http.ResponseWriter, r *http.Request) {
	if s.bundle == nil {
		http.Error(w, "extension not configured", http.StatusNotFound)
		return
	}
	data, err := s.bundle.Zip()
	if err != nil {
		s.logger.Error("packaging extension", zap.Error(err))
		http.Error(w, "packaging failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="polished-extension.zip"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

func (s *Site) handleFiles(w http.ResponseWriter, r *http.Request) {
	if s.bundle == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "extension not configured"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"endpoint": s.bundle.Endpoint,
		"files":    s.bundle.Files,
	})
}

// Package extension generates the browser extension that brings polishing
// to any web page. The files are rendered from embedded templates so the
// tone set and endpoint always match this build.
package extension

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"text/template"

	"github.com/polishedai/polished/internal/improve"
	"github.com/polishedai/polished/internal/polish"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Defaults for Options fields left empty.
const (
	DefaultName        = "Polished AI"
	DefaultVersion     = "1.0"
	DefaultDescription = "Professional writing assistant powered by Polished AI."
)

var versionRe = regexp.MustCompile(`^\d+(\.\d+){0,3}$`)

// Options parameterise the generated extension.
type Options struct {
	BackendURL  string
	Name        string
	Version     string
	Description string
	DefaultTone polish.Tone
}

// File is one file of the extension.
type File struct {
	Name    string `json:"name"`
	Content []byte `json:"-"`
}

// MarshalJSON emits the content as text so clients can display it.
func (f File) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name    string `json:"name"`
		Size    int    `json:"size"`
		Content string `json:"content,omitempty"`
	}{Name: f.Name, Size: len(f.Content), Content: textContent(f)})
}

func textContent(f File) string {
	if strings.HasSuffix(f.Name, ".png") {
		return ""
	}
	return string(f.Content)
}

// Bundle is a complete, ready to load extension.
type Bundle struct {
	Options  Options
	Endpoint string
	Files    []File
}

// Manifest is the Manifest V3 document.
type Manifest struct {
	ManifestVersion int               `json:"manifest_version"`
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Permissions     []string          `json:"permissions"`
	HostPermissions []string          `json:"host_permissions"`
	Background      ManifestWorker    `json:"background"`
	ContentScripts  []ContentScript   `json:"content_scripts"`
	Action          ManifestAction    `json:"action"`
	Icons           map[string]string `json:"icons"`
}

// ManifestWorker declares the background service worker.
type ManifestWorker struct {
	ServiceWorker string `json:"service_worker"`
}

// ContentScript declares a script injected into matching pages.
type ContentScript struct {
	Matches []string `json:"matches"`
	JS      []string `json:"js"`
	CSS     []string `json:"css"`
}

// ManifestAction configures the toolbar button.
type ManifestAction struct {
	DefaultTitle string `json:"default_title"`
}

type templateData struct {
	Name           string
	Version        string
	Description    string
	Endpoint       string
	Tones          []polish.Tone
	DefaultTone    polish.Tone
	MsgUnreachable string
	MsgBadResponse string
	Accent         string
	AccentDark     string
	Files          []string
}

var iconSizes = []int{16, 48, 128}

// Build renders every file of the extension.
func Build(opts Options) (*Bundle, error) {
	opts = withDefaults(opts)
	endpoint, origin, err := resolveEndpoint(opts.BackendURL)
	if err != nil {
		return nil, err
	}
	if !versionRe.MatchString(opts.Version) {
		return nil, fmt.Errorf("invalid extension version %q: want one to four dot-separated integers", opts.Version)
	}

	data := templateData{
		Name:           opts.Name,
		Version:        opts.Version,
		Description:    opts.Description,
		Endpoint:       endpoint,
		Tones:          polish.Tones(),
		DefaultTone:    opts.DefaultTone,
		MsgUnreachable: improve.ErrMsgUnreachable,
		MsgBadResponse: improve.ErrMsgBadResponse,
		Accent:         "#10b981",
		AccentDark:     "#059669",
	}

	b := &Bundle{Options: opts, Endpoint: endpoint}

	manifest, err := json.MarshalIndent(newManifest(opts, origin), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling manifest: %w", err)
	}
	b.Files = append(b.Files, File{Name: "manifest.json", Content: append(manifest, '\n')})

	for _, name := range []string{"background.js", "content.js", "styles.css"} {
		content, err := render(name, data)
		if err != nil {
			return nil, err
		}
		b.Files = append(b.Files, File{Name: name, Content: content})
	}

	for _, size := range iconSizes {
		png, err := renderIcon(size)
		if err != nil {
			return nil, fmt.Errorf("rendering icon%d: %w", size, err)
		}
		b.Files = append(b.Files, File{Name: iconName(size), Content: png})
	}

	for _, f := range b.Files {
		data.Files = append(data.Files, f.Name)
	}
	data.Files = append(data.Files, "README.md")
	readme, err := render("README.md", data)
	if err != nil {
		return nil, err
	}
	b.Files = append(b.Files, File{Name: "README.md", Content: readme})

	return b, nil
}

// File returns the named file.
func (b *Bundle) File(name string) (File, bool) {
	for _, f := range b.Files {
		if f.Name == name {
			return f, true
		}
	}
	return File{}, false
}

func withDefaults(opts Options) Options {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	if opts.Description == "" {
		opts.Description = DefaultDescription
	}
	if !opts.DefaultTone.Valid() {
		opts.DefaultTone = polish.DefaultTone
	}
	return opts
}

// resolveEndpoint returns the polish endpoint for a backend base URL and
// the origin pattern the extension needs host permission for.
func resolveEndpoint(backend string) (endpoint, origin string, err error) {
	if strings.TrimSpace(backend) == "" {
		return "", "", fmt.Errorf("backend URL is required")
	}
	u, err := url.Parse(strings.TrimSpace(backend))
	if err != nil {
		return "", "", fmt.Errorf("parsing backend URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", "", fmt.Errorf("backend URL %q must be an absolute http(s) URL", backend)
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	if !strings.HasSuffix(u.Path, improve.PolishPath) {
		u.Path += improve.PolishPath
	}
	return u.String(), u.Scheme + "://" + u.Host + "/*", nil
}

func newManifest(opts Options, origin string) Manifest {
	icons := make(map[string]string, len(iconSizes))
	for _, size := range iconSizes {
		icons[fmt.Sprint(size)] = iconName(size)
	}
	return Manifest{
		ManifestVersion: 3,
		Name:            opts.Name,
		Version:         opts.Version,
		Description:     opts.Description,
		Permissions:     []string{"activeTab"},
		HostPermissions: []string{origin},
		Background:      ManifestWorker{ServiceWorker: "background.js"},
		ContentScripts: []ContentScript{{
			Matches: []string{"<all_urls>"},
			JS:      []string{"content.js"},
			CSS:     []string{"styles.css"},
		}},
		Action: ManifestAction{DefaultTitle: opts.Name},
		Icons:  icons,
	}
}

var funcs = template.FuncMap{
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
}

func render(name string, data templateData) ([]byte, error) {
	tmpl, err := template.New(name+".tmpl").Funcs(funcs).ParseFS(templateFS, "templates/"+name+".tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func iconName(size int) string { return fmt.Sprintf("icon%d.png", size) }

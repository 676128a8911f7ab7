package web

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/polishedai/polished/internal/extension"
	"github.com/polishedai/polished/internal/polish"
	"github.com/polishedai/polished/internal/surface"
)

func upper() polish.Improver {
	return polish.ImproverFunc(func(ctx context.Context, text string, tone polish.Tone) (string, error) {
		return strings.ToUpper(text), nil
	})
}

func newSite(t *testing.T, imp polish.Improver, withBundle bool) http.Handler {
	t.Helper()
	opts := Options{Improver: imp}
	if withBundle {
		b, err := extension.Build(extension.Options{BackendURL: "http://localhost:8080"})
		require.NoError(t, err)
		opts.Bundle = b
	}
	site, err := New(opts)
	require.NoError(t, err)
	r := chi.NewRouter()
	site.RegisterRoutes(r, r)
	return r
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestIndex(t *testing.T) {
	w := get(t, newSite(t, upper(), true), "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "/ws/demo")
}

func TestExtensionRoutes(t *testing.T) {
	h := newSite(t, upper(), true)

	guide := get(t, h, "/extension")
	assert.Equal(t, http.StatusOK, guide.Code)
	assert.Contains(t, guide.Body.String(), "Download extension.zip")
	assert.Contains(t, guide.Body.String(), "manifest.json")

	dl := get(t, h, "/extension/download")
	require.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, "application/zip", dl.Header().Get("Content-Type"))
	zr, err := zip.NewReader(bytes.NewReader(dl.Body.Bytes()), int64(dl.Body.Len()))
	require.NoError(t, err)
	assert.Equal(t, "manifest.json", zr.File[0].Name)

	files := get(t, h, "/api/extension/files")
	require.Equal(t, http.StatusOK, files.Code)
	var out struct {
		Endpoint string `json:"endpoint"`
		Files    []struct {
			Name    string `json:"name"`
			Content string `json:"content"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(files.Body.Bytes(), &out))
	assert.Equal(t, "http://localhost:8080/api/polish", out.Endpoint)
	assert.Equal(t, "background.js", out.Files[1].Name)
	assert.Contains(t, out.Files[1].Content, out.Endpoint)
}

func TestExtensionRoutesWithoutBundle(t *testing.T) {
	h := newSite(t, upper(), false)
	for _, path := range []string{"/extension", "/extension/download", "/api/extension/files"} {
		assert.Equal(t, http.StatusNotFound, get(t, h, path).Code, path)
	}
}

type demoClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func dial(t *testing.T, h http.Handler) *demoClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/demo"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &demoClient{t: t, conn: conn}
}

func (c *demoClient) send(msg demoMessage) {
	c.t.Helper()
	require.NoError(c.t, c.conn.WriteJSON(msg))
}

// next reads events until one satisfies pred.
func (c *demoClient) next(pred func(demoEvent) bool) demoEvent {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var ev demoEvent
		require.NoError(c.t, c.conn.ReadJSON(&ev))
		if pred(ev) {
			return ev
		}
	}
}

func (c *demoClient) view(pred func(v *surface.View) bool) *surface.View {
	c.t.Helper()
	return c.next(func(ev demoEvent) bool { return ev.Type == "view" && pred(ev.View) }).View
}

func TestDemoPolishAndReplace(t *testing.T) {
	c := dial(t, newSite(t, upper(), false))

	hello := c.next(func(ev demoEvent) bool { return ev.Type == "hello" })
	assert.Len(t, hello.ID, 36)
	initial := c.view(func(v *surface.View) bool { return true })
	assert.Equal(t, DemoText, initial.Text)

	c.send(demoMessage{Type: "select", Start: 4, End: 18})
	v := c.view(func(v *surface.View) bool { return v.Trigger != nil })
	assert.Equal(t, "i was wonderng", v.Trigger.Span.Text)

	c.send(demoMessage{Type: "activate"})
	v = c.view(func(v *surface.View) bool { return v.Session != nil && v.Session.State == polish.StateReady })
	assert.Equal(t, "I WAS WONDERNG", v.Session.Result)
	assert.Equal(t, polish.ToneProfessional, v.Session.Tone)
	assert.True(t, v.Session.CanCommit)

	c.send(demoMessage{Type: "commit"})
	v = c.view(func(v *surface.View) bool { return v.Session == nil })
	assert.True(t, strings.HasPrefix(v.Text, "hey I WAS WONDERNG if u got"))
}

func TestDemoReportsErrors(t *testing.T) {
	c := dial(t, newSite(t, upper(), false))
	c.next(func(ev demoEvent) bool { return ev.Type == "view" })

	c.send(demoMessage{Type: "activate"})
	ev := c.next(func(ev demoEvent) bool { return ev.Type == "error" })
	assert.Equal(t, surface.ErrNoTrigger.Error(), ev.Error)

	c.send(demoMessage{Type: "shout"})
	ev = c.next(func(ev demoEvent) bool { return ev.Type == "error" })
	assert.Contains(t, ev.Error, "unknown message type")

	c.send(demoMessage{Type: "tone", Tone: "Angry"})
	ev = c.next(func(ev demoEvent) bool { return ev.Type == "error" })
	assert.Contains(t, ev.Error, "unknown tone")
}

func TestDemoWithoutProviderFails(t *testing.T) {
	c := dial(t, newSite(t, nil, false))
	c.send(demoMessage{Type: "select", Start: 0, End: 3})
	c.view(func(v *surface.View) bool { return v.Trigger != nil })

	c.send(demoMessage{Type: "activate"})
	v := c.view(func(v *surface.View) bool { return v.Session != nil && v.Session.State == polish.StateFailed })
	assert.Equal(t, msgNoProvider, v.Session.Error)
	assert.False(t, v.Session.CanCommit)
}

func TestCommandMapping(t *testing.T) {
	for _, typ := range []string{"select", "elsewhere", "activate", "retry", "dismiss", "commit", "edit"} {
		cmd, err := command(demoMessage{Type: typ})
		require.NoError(t, err, typ)
		assert.NotNil(t, cmd, typ)
	}
	_, err := command(demoMessage{Type: "tone", Tone: "casual"})
	assert.NoError(t, err)
}

func TestDemoConnLogsFailedWrites(t *testing.T) {
	accepted := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		accepted <- ws
	}))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer client.Close()

	ws := <-accepted
	core, logs := observer.New(zap.DebugLevel)
	conn := &demoConn{ws: ws, logger: zap.New(core)}

	conn.push(demoEvent{Type: "hello", ID: "x"})
	assert.Zero(t, logs.Len())

	require.NoError(t, ws.Close())
	assert.Error(t, conn.send(demoEvent{Type: "view"}))
	conn.push(demoEvent{Type: "error", Error: "boom"})

	entries := logs.FilterMessage("demo: websocket write").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "error", entries[0].ContextMap()["event"])
}

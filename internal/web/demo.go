package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/polishedai/polished/internal/polish"
	"github.com/polishedai/polished/internal/surface"
)

const (
	maxMessageBytes = 64 << 10
	writeWait       = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// demoMessage is a command from the demo page.
type demoMessage struct {
	Type   string         `json:"type"` // select, elsewhere, activate, tone, retry, dismiss, commit, edit
	Origin surface.Origin `json:"origin,omitempty"`
	Start  int            `json:"start"`
	End    int            `json:"end"`
	Anchor surface.Rect   `json:"anchor"`
	Tone   string         `json:"tone,omitempty"`
	Text   string         `json:"text,omitempty"`
}

// demoEvent is pushed to the demo page.
type demoEvent struct {
	Type  string        `json:"type"` // hello, view, error
	ID    string        `json:"id,omitempty"`
	View  *surface.View `json:"view,omitempty"`
	Error string        `json:"error,omitempty"`
}

type demoConn struct {
	ws     *websocket.Conn
	mu     sync.Mutex
	logger *zap.Logger
}

func (c *demoConn) send(ev demoEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteJSON(ev)
}

// push sends ev, logging write failures. A broken connection also fails
// the reader, which ends the handler.
func (c *demoConn) push(ev demoEvent) {
	if err := c.send(ev); err != nil {
		c.logger.Debug("demo: websocket write", zap.String("event", ev.Type), zap.Error(err))
	}
}

// handleDemo runs one editor loop per connection and streams its views.
func (s *Site) handleDemo(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("demo: websocket upgrade", zap.Error(err))
		return
	}
	defer ws.Close()
	ws.SetReadLimit(maxMessageBytes)

	id := uuid.NewString()
	logger := s.logger.With(zap.String("conn", id))
	conn := &demoConn{ws: ws, logger: logger}
	if err := conn.send(demoEvent{Type: "hello", ID: id}); err != nil {
		return
	}

	loop := surface.NewLoop(s.demoText, s.tone, s.improver, func(v surface.View) {
		conn.push(demoEvent{Type: "view", View: &v})
	})

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error { return loop.Run(ctx) })
	g.Go(func() error { return s.readCommands(ctx, conn, loop) })
	g.Go(func() error {
		<-ctx.Done()
		// Unblocks the reader when the loop stops first.
		ws.Close()
		return nil
	})

	logger.Debug("demo: connected")
	err = g.Wait()
	if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		logger.Info("demo: websocket read", zap.Error(err))
	}
	logger.Debug("demo: disconnected")
}

func (s *Site) readCommands(ctx context.Context, conn *demoConn, loop *surface.Loop) error {
	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			return err
		}

		var msg demoMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			conn.push(demoEvent{Type: "error", Error: "invalid message format"})
			continue
		}
		cmd, err := command(msg)
		if err != nil {
			conn.push(demoEvent{Type: "error", Error: err.Error()})
			continue
		}

		err = loop.Do(ctx, cmd)
		switch {
		case err == nil:
		case errors.Is(err, surface.ErrLoopStopped), ctx.Err() != nil:
			return err
		default:
			conn.push(demoEvent{Type: "error", Error: polish.FailureMessage(err)})
		}
	}
}

// command maps a page message onto an editor operation.
func command(msg demoMessage) (func(e *surface.Editor) error, error) {
	switch msg.Type {
	case "select":
		origin := msg.Origin
		if origin == "" {
			origin = surface.OriginSurface
		}
		sig := surface.Signal{Kind: surface.SignalSelect, Origin: origin, Start: msg.Start, End: msg.End, Anchor: msg.Anchor}
		return func(e *surface.Editor) error { e.Observe(sig); return nil }, nil
	case "elsewhere":
		sig := surface.Signal{Kind: surface.SignalPointerUp, Origin: surface.OriginElsewhere}
		return func(e *surface.Editor) error { e.Observe(sig); return nil }, nil
	case "activate":
		return (*surface.Editor).Activate, nil
	case "tone":
		tone, err := polish.ParseTone(msg.Tone)
		if err != nil {
			return nil, err
		}
		return func(e *surface.Editor) error { return e.SetTone(tone) }, nil
	case "retry":
		return (*surface.Editor).Retry, nil
	case "dismiss":
		return (*surface.Editor).Dismiss, nil
	case "commit":
		return (*surface.Editor).Commit, nil
	case "edit":
		text := msg.Text
		return func(e *surface.Editor) error { return e.Edit(text) }, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", msg.Type)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package improve

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/polishedai/polished/internal/polish"
)

// PolishPath is the route of the remote improvement endpoint.
const PolishPath = "/api/polish"

// Messages surfaced by Client on failure.
const (
	ErrMsgUnreachable = "Could not reach the polishing service. Check your connection and try again."
	ErrMsgBadResponse = "The polishing service returned an unexpected response."
)

// PolishRequest is the JSON body accepted by the remote endpoint.
type PolishRequest struct {
	Text string      `json:"text"`
	Tone polish.Tone `json:"tone"`
}

// PolishResponse is the JSON body returned by the remote endpoint. Exactly
// one of the fields is set.
type PolishResponse struct {
	ImprovedText *string `json:"improvedText,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// Client implements polish.Improver by calling a remote polish endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a Client for the service at baseURL. A nil httpClient
// uses one with a 30 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	endpoint := strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(endpoint, PolishPath) {
		endpoint += PolishPath
	}
	return &Client{endpoint: endpoint, http: httpClient}
}

// Endpoint returns the full URL requests are sent to.
func (c *Client) Endpoint() string { return c.endpoint }

var _ polish.Improver = (*Client)(nil)

// Improve posts text and tone to the endpoint and returns the improved text.
func (c *Client) Improve(ctx context.Context, text string, tone polish.Tone) (string, error) {
	if polish.IsBlank(text) {
		return "", nil
	}

	body, err := json.Marshal(PolishRequest{Text: text, Tone: tone})
	if err != nil {
		return "", fmt.Errorf("marshaling polish request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating polish request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", polish.NewRequestError(ErrMsgUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", polish.NewRequestError(ErrMsgUnreachable, err)
	}

	var out PolishResponse
	decodeErr := json.Unmarshal(raw, &out)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Proxies in front of the backend may answer with non-JSON pages.
		msg := out.Error
		if decodeErr != nil || msg == "" {
			msg = fmt.Sprintf("The polishing service failed (HTTP %d).", resp.StatusCode)
		}
		return "", polish.NewRequestError(msg, fmt.Errorf("status %d", resp.StatusCode))
	}
	if decodeErr != nil {
		return "", polish.NewRequestError(ErrMsgBadResponse,
			fmt.Errorf("status %d: %w", resp.StatusCode, decodeErr))
	}
	if out.Error != "" {
		return "", polish.NewRequestError(out.Error, nil)
	}
	if out.ImprovedText == nil {
		return "", polish.NewRequestError(ErrMsgBadResponse, errors.New("missing improvedText"))
	}
	return *out.ImprovedText, nil
}

package cmd

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polishedai/polished/internal/config"
	"github.com/polishedai/polished/internal/improve"
	"github.com/polishedai/polished/internal/polish"
)

// run executes the root command against a config file written from cfg.
func run(t *testing.T, cfg *config.Config, stdin string, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".polished.yml")
	require.NoError(t, cfg.Save(path))

	polishTone, polishRemote = "", ""
	extOut, extZip, extBackend = "polished-extension", "", ""
	costTone = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", path}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestReadInput(t *testing.T) {
	got, err := readInput(strings.NewReader("ignored"), []string{"hello", "there"})
	require.NoError(t, err)
	assert.Equal(t, "hello there", got)

	got, err = readInput(strings.NewReader("from stdin\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	got, err = readInput(strings.NewReader("dash\r\n"), []string{"-"})
	require.NoError(t, err)
	assert.Equal(t, "dash", got)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, config.DefaultConfig(), "", "version")
	require.NoError(t, err)
	assert.Equal(t, "polished dev\n", out)
}

func TestTonesCommand(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DefaultTone = polish.ToneCreative
	out, err := run(t, cfg, "", "tones")
	require.NoError(t, err)
	assert.Equal(t, "  Neutral\n  Professional\n  Casual\n* Creative\n", out)
}

func TestPolishRemote(t *testing.T) {
	var got improve.PolishRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, improve.PolishPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		improved := strings.ToUpper(got.Text)
		_ = json.NewEncoder(w).Encode(improve.PolishResponse{ImprovedText: &improved})
	}))
	defer srv.Close()

	out, err := run(t, config.DefaultConfig(), "", "polish", "--remote", srv.URL, "--tone", "casual", "hi", "there")
	require.NoError(t, err)
	assert.Equal(t, "HI THERE\n", out)
	assert.Equal(t, "hi there", got.Text)
	assert.Equal(t, polish.ToneCasual, got.Tone)
}

func TestPolishRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(improve.PolishResponse{Error: "Connection failed."})
	}))
	defer srv.Close()

	_, err := run(t, config.DefaultConfig(), "", "polish", "--remote", srv.URL, "hello")
	require.Error(t, err)
	assert.Equal(t, "Connection failed.", err.Error())
}

func TestPolishRejectsBadTone(t *testing.T) {
	_, err := run(t, config.DefaultConfig(), "", "polish", "--remote", "http://localhost:1", "--tone", "angry", "hi")
	require.Error(t, err)
}

func TestPolishEmptyInput(t *testing.T) {
	_, err := run(t, config.DefaultConfig(), "   \n", "polish", "--remote", "http://localhost:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to polish")
}

func TestExtensionZip(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "ext.zip")
	out, err := run(t, config.DefaultConfig(), "", "extension", "--zip", dest, "--backend", "https://polish.example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "https://polish.example.com/api/polish")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "manifest.json")
	assert.Contains(t, names, "content.js")
}

func TestCostCommand(t *testing.T) {
	out, err := run(t, config.DefaultConfig(), "", "cost", "i was wonderng if u could send the files")
	require.NoError(t, err)
	assert.Contains(t, out, "Cost Estimate")
	assert.Contains(t, out, "* normal")
	assert.Contains(t, out, "(model: gemini-2.5-pro)")
	assert.Contains(t, out, "Tone:     Professional")
}

func TestInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Provider = "nope"
	_, err := run(t, cfg, "", "tones")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid provider")
}

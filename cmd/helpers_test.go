package cmd_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/telogical/gqlx/cmd"
	"github.com/telogical/gqlx/pkg/config"
)

var fixturePath = filepath.Join("..", "testdata", "telecom.json")

// clearEnv keeps the developer's TELOGICAL_* settings out of the tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvEndpoint, config.EnvAuthToken, config.EnvLocale, config.EnvTimeout} {
		t.Setenv(key, "")
	}
}

// runOffline executes the CLI against the saved introspection fixture.
func runOffline(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	clearEnv(t)
	return cmd.ExecuteWithArgs(append(args, "-s", fixturePath))
}

// runOnline executes the CLI against a test backend.
func runOnline(t *testing.T, b *backend, args ...string) (string, string, error) {
	t.Helper()
	clearEnv(t)
	return cmd.ExecuteWithArgs(append(args, "--endpoint", b.URL, "--token", "secret", "--locale", "en-US"))
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type backend struct {
	*httptest.Server

	mu       sync.Mutex
	requests []graphqlRequest
	headers  []http.Header
}

func newBackend(t *testing.T, respond func(w http.ResponseWriter, r *http.Request, req graphqlRequest)) *backend {
	t.Helper()
	b := &backend{}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		b.mu.Lock()
		b.requests = append(b.requests, req)
		b.headers = append(b.headers, r.Header.Clone())
		b.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		respond(w, r, req)
	}))
	t.Cleanup(b.Close)
	return b
}

func (b *backend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

func (b *backend) request(i int) (graphqlRequest, http.Header) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[i], b.headers[i]
}

// fixtureBackend answers every request with the introspection fixture.
func fixtureBackend(t *testing.T) *backend {
	t.Helper()
	payload, err := os.ReadFile(fixturePath)
	require.NoError(t, err)
	return newBackend(t, func(w http.ResponseWriter, _ *http.Request, _ graphqlRequest) {
		_, _ = w.Write(payload)
	})
}

// runWithSchema passes -s only when path is non-empty.
func runWithSchema(t *testing.T, path string, args ...string) (string, string, error) {
	t.Helper()
	if path != "" {
		args = append(args, "-s", path)
	}
	return cmd.ExecuteWithArgs(args)
}

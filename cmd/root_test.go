package cmd_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telogical/gqlx/cmd"
	"github.com/telogical/gqlx/pkg/config"
)

func TestRoot_EndpointFromEnvironment(t *testing.T) {
	b := echoBackend(t)
	clearEnv(t)
	t.Setenv(config.EnvEndpoint, b.URL)
	t.Setenv(config.EnvAuthToken, "env-token")

	_, _, err := cmd.ExecuteWithArgs([]string{"query", "{ a }"})
	require.NoError(t, err)

	_, headers := b.request(0)
	assert.Equal(t, "env-token", headers.Get("Authorization"))
}

func TestRoot_ConfigFile(t *testing.T) {
	b := echoBackend(t)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "gqlx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("endpoint: %s\nlocale: fr-CA\ntimeout: 5s\n", b.URL)), 0644))

	_, _, err := cmd.ExecuteWithArgs([]string{"query", "{ a }", "--config", path})
	require.NoError(t, err)

	_, headers := b.request(0)
	assert.Equal(t, "fr-CA", headers.Get("Locale"))
}

func TestRoot_FlagsOverrideEnvironment(t *testing.T) {
	b := echoBackend(t)
	clearEnv(t)
	t.Setenv(config.EnvEndpoint, "http://127.0.0.1:1/unreachable")
	t.Setenv(config.EnvLocale, "en-GB")

	_, _, err := cmd.ExecuteWithArgs([]string{"query", "{ a }", "--endpoint", b.URL, "--locale", "es-MX"})
	require.NoError(t, err)

	_, headers := b.request(0)
	assert.Equal(t, "es-MX", headers.Get("Locale"))
}

func TestRoot_InvalidConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvTimeout, "soon")

	_, _, err := cmd.ExecuteWithArgs([]string{"types", "-s", fixturePath})
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	t.Setenv(config.EnvTimeout, "")
	_, _, err = cmd.ExecuteWithArgs([]string{"types", "-s", fixturePath, "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestRoot_InvalidFormat(t *testing.T) {
	_, _, err := runOffline(t, "types", "-f", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid: json, text, pretty, markdown")
}

func TestRoot_VerboseRedactsToken(t *testing.T) {
	clearEnv(t)

	_, stderr, err := cmd.ExecuteWithArgs([]string{"types", "-s", fixturePath, "-v", "--token", "hunter2"})
	require.NoError(t, err)
	assert.Contains(t, stderr, "configuration loaded")
	assert.Contains(t, stderr, "<redacted>")
	assert.NotContains(t, stderr, "hunter2")
}

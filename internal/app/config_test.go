package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
[server]
port = ":8080"

[store]
dsn = "registrar.db"

[challenge]
endpoint = "https://challenge.example.com"
site_key = "test-key"
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "registrar.db", cfg.Store.DSN)

	// Defaults fill in what the file leaves out.
	assert.Equal(t, "./migrations", cfg.Store.MigrationsDir)
	assert.Equal(t, "registrations", cfg.Store.CollectionPath)
	assert.Equal(t, "registration_submit", cfg.Challenge.Action)
	assert.Equal(t, 10, cfg.Challenge.TimeoutSeconds)
	assert.Equal(t, "challenge:used:{token}", cfg.Replay.KeyTemplate)
}

func TestLoadConfigFailsFast(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{
			name: "missing port",
			content: `
[store]
dsn = "registrar.db"
[challenge]
endpoint = "https://challenge.example.com"
site_key = "test-key"
`,
		},
		{
			name: "missing store dsn",
			content: `
[server]
port = ":8080"
[challenge]
endpoint = "https://challenge.example.com"
site_key = "test-key"
`,
		},
		{
			name: "missing challenge site key",
			content: `
[server]
port = ":8080"
[store]
dsn = "registrar.db"
[challenge]
endpoint = "https://challenge.example.com"
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("TEST_SITE_KEY", "key-from-env")

	cfg, err := LoadConfig(writeConfig(t, `
[server]
port = ":8080"
[store]
dsn = "registrar.db"
[challenge]
endpoint = "https://challenge.example.com"
site_key = "${TEST_SITE_KEY}"
`))
	require.NoError(t, err)
	assert.Equal(t, "key-from-env", cfg.Challenge.SiteKey)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_OriginalLayout(t *testing.T) {
	path := writeConfig(t, `{"database": "specify", "user": "master", "password": "secret", "host": "10.0.0.5"}`)

	db, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverMySQL, db.Driver)
	assert.Equal(t, "specify", db.Database)
	assert.Equal(t, "master", db.User)
	assert.Equal(t, "secret", db.Password)
	assert.Equal(t, "10.0.0.5", db.Host)
	assert.Zero(t, db.Port)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"database": "specify", "user": "master", "password": "secret"}`)
	t.Setenv("SPECIFY_PASSWORD", "from-env")
	t.Setenv("SPECIFY_PORT", "3307")

	db, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", db.Password)
	assert.Equal(t, 3307, db.Port)
	assert.Equal(t, DefaultHost, db.Host)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing database",
			body:    `{"user": "master"}`,
			wantErr: "database is required",
		},
		{
			name:    "unknown driver",
			body:    `{"database": "specify", "driver": "oracle"}`,
			wantErr: "unsupported driver",
		},
		{
			name:    "not json",
			body:    `database = specify`,
			wantErr: "failed to read config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	in := &Database{Driver: DriverMySQL, Database: "specify", User: "u", Password: "p", Host: "db.local"}

	require.NoError(t, Save(path, in))
	assert.True(t, Exists(path))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("SPECIFY_CONFIG", "")
	assert.Equal(t, DefaultConfigFilename, ConfigPath())

	t.Setenv("SPECIFY_CONFIG", "/etc/specify.json")
	assert.Equal(t, "/etc/specify.json", ConfigPath())
}

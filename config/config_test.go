package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeTemp(t, "conf.yaml", `
host: broker.example.com
port: 1883
client_id: test
keepalive: 30
clean_session: true
`)

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "broker.example.com", opts.Host)
	assert.Equal(t, uint16(1883), opts.Port)
	assert.True(t, opts.CleanSession)
	assert.Nil(t, opts.TLSConfig)
}

func TestLoadTOML(t *testing.T) {
	path := writeTemp(t, "conf.toml", `
host = "broker.example.com"
port = 8883
keepalive = 60
use_tls = true
`)

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint16(8883), opts.Port)
	require.NotNil(t, opts.TLSConfig)
	assert.Equal(t, "broker.example.com", opts.TLSConfig.ServerName)
}

func TestLoadDerivesCredentialFlagsFromNonemptyFields(t *testing.T) {
	path := writeTemp(t, "conf.yaml", `
host: broker.example.com
port: 1883
keepalive: 30
username: alice
password: secret
`)

	opts, err := Load(path)
	require.NoError(t, err)
	assert.True(t, opts.HasUsername)
	assert.True(t, opts.HasPassword)
	assert.Equal(t, "alice", opts.Username)
}

func TestLoadRejectsMissingRequiredFields(t *testing.T) {
	path := writeTemp(t, "bad.yaml", `
client_id: test
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "conf.json", `{}`)
	_, err := Load(path)
	assert.Error(t, err)
}

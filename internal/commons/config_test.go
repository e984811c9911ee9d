package commons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("server:\n  port: 9090\nsource:\n  kind: api\n"), 0o600)
	require.NoError(t, err)

	values, err := ReadYAMLFile(path)
	require.NoError(t, err)

	server, ok := values["server"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 9090, server["port"])
}

func TestReadYAMLFile_Missing(t *testing.T) {
	_, err := ReadYAMLFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "reading config file")
}

func TestReadYAMLFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [port"), 0o600))

	_, err := ReadYAMLFile(path)
	assert.ErrorContains(t, err, "parsing config file")
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOrCreate(t *testing.T) {
	dir := t.TempDir()

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, "default", c.Profile)
	assert.Equal(t, "info", c.LogLevel)
	assert.FileExists(t, filepath.Join(dir, configFileName))

	c.Profile = "calibrated"
	c.DBPath = "/tmp/custom.db"
	require.NoError(t, Save(dir, c))

	again, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, "calibrated", again.Profile)
	assert.Equal(t, "/tmp/custom.db", again.DBPath)
}

func TestReadOrCreateErrors(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)

	require.NoError(t, Save(t.TempDir(), getDefaultConfig()))
	assert.Error(t, Save("", getDefaultConfig()))
	assert.Error(t, Save(t.TempDir(), nil))
}

func TestReadOrCreatePartialFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("db_path: x.db\n"), 0600))

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, "x.db", c.DBPath)
	assert.Equal(t, "default", c.Profile, "missing fields fall back to defaults")
	assert.Equal(t, "info", c.LogLevel)
}

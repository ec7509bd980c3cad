package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data string) string {
	f := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(f, []byte(data), 0644))
	return f
}

func TestParseJSON(t *testing.T) {
	f := writeFile(t, "c.json", `{"username":"a@b.com","password":"x","thread":3,"base_url":"http://127.0.0.1:9000"}`)
	c, err := Parse(f)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", c.Username)
	assert.Equal(t, 3, c.Thread)
	assert.Equal(t, "http://127.0.0.1:9000", c.BaseURL)
	assert.Equal(t, "/dav", c.DavPrefix)
	assert.Equal(t, "/nsdav", c.OperationPrefix)
	assert.Equal(t, int64(30), c.Timeout)
}

func TestParseYAMLWithEnv(t *testing.T) {
	f := writeFile(t, "c.yaml", "username: a@b.com\nlog_level: debug\n")
	t.Setenv("NSDAV_PASSWORD", "from-env")
	c, err := Parse(f)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.Password)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 5, c.Thread)
}

func TestParseEnvOnly(t *testing.T) {
	t.Setenv("NSDAV_USERNAME", "u")
	t.Setenv("NSDAV_PASSWORD", "p")
	c, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, "u", c.Username)
	assert.Equal(t, "https://dav.jianguoyun.com", c.BaseURL)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, ErrConfigInvalid))

	f := writeFile(t, "c.json", `{"username":"u","password":"p","thread":0}`)
	_, err = Parse(f)
	assert.True(t, errors.Is(err, ErrConfigInvalid))

	f = writeFile(t, "c.json", `{"password":"p"}`)
	_, err = Parse(f)
	assert.True(t, errors.Is(err, ErrConfigInvalid))
}

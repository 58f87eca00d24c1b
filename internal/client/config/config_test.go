package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/linekeeper/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	want := Config{ServerEndpointAddr: "127.0.0.1:50051", Timeout: 5 * time.Second}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FlagsAndCommand(t *testing.T) {
	cfg, rest, err := load([]string{"-a", "10.0.0.1:9000", "-t", "tok", "-timeout", "2s", "get", "7", "operators"}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.1:9000", cfg.ServerEndpointAddr)
	assert.Equal(t, "tok", cfg.AccessToken)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"get", "7", "operators"}, rest)
}

func TestLoad_TokenFromEnvironment(t *testing.T) {
	env := func(k string) string {
		if k == common.EnvAccessToken {
			return "from-env"
		}
		return ""
	}

	cfg, rest, err := load([]string{"list"}, env)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AccessToken)
	assert.Equal(t, []string{"list"}, rest)

	cfg, _, err = load([]string{"-t", "flag", "list"}, env)
	require.NoError(t, err)
	assert.Equal(t, "flag", cfg.AccessToken, "flag must win over the environment")
}

func TestLoad_JsonThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_endpoint_addr":"json:1","access_token":"jt","timeout":"9s"}`), 0o600))

	cfg, rest, err := load([]string{"-c", path, "-a", "flag:2", "ping"}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "flag:2", cfg.ServerEndpointAddr)
	assert.Equal(t, "jt", cfg.AccessToken)
	assert.Equal(t, 9*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"ping"}, rest)
}

func TestLoad_JsonPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"timeout":1000000000}`), 0o600))

	cfg, _, err := load([]string{"-config", path}, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
	assert.Equal(t, time.Second, cfg.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	_, _, err := load([]string{"-c", filepath.Join(t.TempDir(), "missing.json")}, noEnv)
	require.ErrorContains(t, err, "read config file")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))
	_, _, err = load([]string{"-c", bad}, noEnv)
	require.ErrorContains(t, err, "parse config file")

	_, _, err = load([]string{"-unknown"}, noEnv)
	require.Error(t, err)

	_, _, err = load([]string{"-timeout", "soon"}, noEnv)
	require.Error(t, err)
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_Overlay(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_grpc":             "www.example:9000",
		"database_driver":                "postgres",
		"database_dsn":                   "postgres://db",
		"access_token_validity_duration": "2m",
		"operation_timeout":              int64(time.Second),
		"operator_table":                 "operadores",
		"list_limit":                     7,
	})

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseJson(&c, []string{"-config", path}))

	assert.Equal(t, "www.example:9000", c.EndpointAddrGRPC)
	assert.Equal(t, "postgres", c.DatabaseDriver)
	assert.Equal(t, "postgres://db", c.DatabaseDSN)
	assert.Equal(t, 2*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, time.Second, c.OperationTimeout)
	assert.Equal(t, "operadores", c.OperatorTable)
	assert.Equal(t, 7, c.ListLimit)

	// keys absent from the file keep their defaults
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, "users", c.StaffTable)
}

func Test_parseJson_NoFlag(t *testing.T) {
	var c Config
	c.LoadDefaults()
	require.NoError(t, parseJson(&c, []string{"-a", ":1"}))
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
}

func Test_parseJson_Errors(t *testing.T) {
	var c Config

	err := parseJson(&c, []string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.ErrorContains(t, err, "read config file")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	err = parseJson(&c, []string{"-c", bad})
	require.ErrorContains(t, err, "parse config file")

	path := writeTempJSON(t, map[string]any{"operation_timeout": "later"})
	require.Error(t, parseJson(&c, []string{"-c", path}))
}

func TestLoad_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_grpc": ":7000",
		"secret_key":         "from-json",
	})

	c, err := load([]string{"-c", path, "-a", ":8000"})
	require.NoError(t, err)
	assert.Equal(t, ":8000", c.EndpointAddrGRPC)
	assert.Equal(t, "from-json", c.SecretKey)
}

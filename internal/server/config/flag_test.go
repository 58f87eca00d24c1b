package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-d", "postgres://db", "-driver", "postgres", "-s", "secret",
				"-t", "5", "-timeout", "3s", "-staff-table", "usuarios", "-operator-table", "operadores",
				"-limit", "20", "-admin-email", "root@x.com", "-admin-secret", "pw",
				"-log-level", "debug", "-log-format", "json",
			},
			expected: &Config{
				EndpointAddrGRPC:            "127.0.0.1:9090",
				DatabaseDriver:              "postgres",
				DatabaseDSN:                 "postgres://db",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 5 * time.Minute,
				OperationTimeout:            3 * time.Second,
				StaffTable:                  "usuarios",
				OperatorTable:               "operadores",
				ListLimit:                   20,
				BootstrapAdminEmail:         "root@x.com",
				BootstrapAdminSecret:        "pw",
				LogLevel:                    "debug",
				LogFormat:                   "json",
			},
		},
		{
			name:     "foreign flags are ignored",
			args:     []string{"-x", "1", "-a", ":1"},
			expected: &Config{EndpointAddrGRPC: ":1"},
		},
		{
			name:    "bad duration",
			args:    []string{"-timeout", "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			err := parseFlags(config, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

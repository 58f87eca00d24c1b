package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/linekeeper/internal/flagx"
	"github.com/dmitrijs2005/linekeeper/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// Interval fields use timex.Duration, which accepts both "1s" strings and
// integer nanoseconds. Only keys present in the file override the target.
type JsonConfig struct {
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	DatabaseDriver              *string         `json:"database_driver"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	OperationTimeout            *timex.Duration `json:"operation_timeout"`
	StaffTable                  *string         `json:"staff_table"`
	OperatorTable               *string         `json:"operator_table"`
	ListLimit                   *int            `json:"list_limit"`
	BootstrapAdminEmail         *string         `json:"bootstrap_admin_email"`
	BootstrapAdminSecret        *string         `json:"bootstrap_admin_secret"`
	LogLevel                    *string         `json:"log_level"`
	LogFormat                   *string         `json:"log_format"`
}

// parseJson overlays values from the file named by -c or -config. Without
// either flag nothing is loaded.
func parseJson(config *Config, args []string) error {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.OperationTimeout != nil {
		config.OperationTimeout = c.OperationTimeout.Duration
	}
	setString(&config.StaffTable, c.StaffTable)
	setString(&config.OperatorTable, c.OperatorTable)
	if c.ListLimit != nil {
		config.ListLimit = *c.ListLimit
	}
	setString(&config.BootstrapAdminEmail, c.BootstrapAdminEmail)
	setString(&config.BootstrapAdminSecret, c.BootstrapAdminSecret)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

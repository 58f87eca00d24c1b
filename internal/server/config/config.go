// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/linekeeper/internal/dbx"
)

// Config holds runtime settings for the linekeeper server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - DatabaseDriver / DatabaseDSN: store selection, "sqlite" or "postgres".
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: token lifetime.
//   - OperationTimeout: upper bound for one service operation, migrations included.
//   - StaffTable / OperatorTable: physical names of the two user tables.
//   - ListLimit: maximum rows returned per table by ListUsers.
//   - BootstrapAdminEmail / BootstrapAdminSecret: administrator created at startup when absent.
//   - LogLevel / LogFormat: slog level and "text" or "json" output.
type Config struct {
	EndpointAddrGRPC            string
	DatabaseDriver              string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	OperationTimeout            time.Duration
	StaffTable                  string
	OperatorTable               string
	ListLimit                   int
	BootstrapAdminEmail         string
	BootstrapAdminSecret        string
	LogLevel                    string
	LogFormat                   string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDriver = dbx.SQLite.Name
	c.DatabaseDSN = "linekeeper.db"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.OperationTimeout = 10 * time.Second
	c.StaffTable = "users"
	c.OperatorTable = "operators"
	c.ListLimit = 500
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if _, err := dbx.DialectFor(c.DatabaseDriver); err != nil {
		errs = append(errs, err)
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database dsn is empty"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is empty"))
	}
	if c.StaffTable == "" || c.OperatorTable == "" {
		errs = append(errs, errors.New("both staff and operator tables must be named"))
	}
	if c.OperationTimeout <= 0 {
		errs = append(errs, fmt.Errorf("operation timeout must be positive, got %s", c.OperationTimeout))
	}
	if (c.BootstrapAdminEmail == "") != (c.BootstrapAdminSecret == "") {
		errs = append(errs, errors.New("bootstrap admin needs both email and secret"))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

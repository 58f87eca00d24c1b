package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/linekeeper/internal/flagx"
)

var ownFlags = []string{
	"-a", "-d", "-driver", "-s", "-t", "-timeout",
	"-staff-table", "-operator-table", "-limit",
	"-admin-email", "-admin-secret", "-log-level", "-log-format",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string              gRPC bind address (e.g., ":50051")
//	-d string              database DSN
//	-driver string         "sqlite" or "postgres"
//	-s string              JWT HMAC secret key
//	-t int                 access token validity, minutes
//	-timeout duration      per-operation timeout (e.g., "5s")
//	-staff-table string    physical staff table
//	-operator-table string physical operator table
//	-limit int             ListUsers row cap per table
//	-admin-email string    bootstrap administrator email
//	-admin-secret string   bootstrap administrator secret
//	-log-level string      debug, info, warn or error
//	-log-format string     text or json
//
// args is filtered with flagx.FilterArgs first so flags owned by other
// components do not collide.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, ownFlags)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver (sqlite or postgres)")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	fs.DurationVar(&config.OperationTimeout, "timeout", config.OperationTimeout, "per-operation timeout")

	fs.StringVar(&config.StaffTable, "staff-table", config.StaffTable, "physical staff table")
	fs.StringVar(&config.OperatorTable, "operator-table", config.OperatorTable, "physical operator table")
	fs.IntVar(&config.ListLimit, "limit", config.ListLimit, "maximum rows listed per table")
	fs.StringVar(&config.BootstrapAdminEmail, "admin-email", config.BootstrapAdminEmail, "bootstrap administrator email")
	fs.StringVar(&config.BootstrapAdminSecret, "admin-secret", config.BootstrapAdminSecret, "bootstrap administrator secret")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log format (text or json)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	return nil
}

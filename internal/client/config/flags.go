package config

import (
	"flag"
	"io"
)

// parseFlags overlays cfg with command-line flags and returns the
// positional arguments that follow them. -c and -config are accepted
// here only so they do not stop parsing; parseJson reads them.
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("linekeeper-cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.AccessToken, "t", cfg.AccessToken, "access token")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-call timeout")

	var file string
	fs.StringVar(&file, "c", "", "json config file")
	fs.StringVar(&file, "config", "", "json config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

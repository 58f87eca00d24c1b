package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/linekeeper/internal/common"
)

// Config holds runtime settings for the admin CLI.
type Config struct {
	ServerEndpointAddr string
	AccessToken        string
	Timeout            time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.AccessToken = ""
	c.Timeout = 5 * time.Second
}

// LoadConfig builds a Config from os.Args and returns the remaining
// command words.
func LoadConfig() (*Config, []string, error) {
	return load(os.Args[1:], os.Getenv)
}

func load(args []string, getenv func(string) string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if tok := getenv(common.EnvAccessToken); tok != "" {
		cfg.AccessToken = tok
	}

	if err := parseJson(cfg, args); err != nil {
		return nil, nil, err
	}

	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}

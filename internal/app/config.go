package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete client configuration, loadable from environment
// variables (TIENDA_ prefix), flags, or YAML config files.
type Config struct {
	APIURL         string        `usage:"Storefront API base URL (TIENDA_API_URL or API_URL)" flag:"api-url"`
	SessionFile    string        `default:"" usage:"Session file path (defaults to the user config dir)" flag:"session-file"`
	RequestTimeout time.Duration `default:"15s" usage:"Per-request HTTP timeout" flag:"request-timeout"`
}

// LoadConfig loads configuration from environment variables, flags, YAML
// config files, and applies platform defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "TIENDA",
		Files:     []string{"config.yaml", configHome("storectl/config.yaml")},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.APIURL == "" {
		return nil, errors.New("API base URL is required: set TIENDA_API_URL or API_URL")
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	return &cfg, nil
}

// applyPlatformDefaults maps the plain API_URL environment variable to the
// TIENDA_-prefixed configuration, for parity with how the hosted frontends
// are configured.
func (c *Config) applyPlatformDefaults() {
	if c.APIURL == "" {
		if v := os.Getenv("API_URL"); v != "" {
			c.APIURL = v
		}
	}
}

func configHome(rel string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return rel
	}
	return filepath.Join(dir, rel)
}

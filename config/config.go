package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/theoremus-urban-solutions/assettrack/connection"
)

// DefaultURL is the endpoint used when no server is configured
const DefaultURL = "ws://127.0.0.1:8000"

// DefaultPaths are searched in order when no path is given
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

// Default returns the configuration used when no file exists
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

// LoadAppConfig loads and validates the configuration at path, or the first
// of DefaultPaths that exists when path is empty. A missing file yields an
// error wrapping fs.ErrNotExist.
func LoadAppConfig(path string) (*AppConfig, error) {
	paths := DefaultPaths
	if path != "" {
		paths = []string{path}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration data
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	// servers are optional; listed ones must be reachable by name
	for _, s := range cfg.Servers {
		if s.Name == "" || s.URL == "" {
			return nil, errors.New("invalid config: servers[] entries need name and url")
		}
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// IsNotExist reports whether err came from a missing config file
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.URL == "" {
		cfg.Server.URL = DefaultURL
	}
	d := connection.DefaultSettings()
	if cfg.Connection.HandshakeTimeoutMS == 0 {
		cfg.Connection.HandshakeTimeoutMS = int(d.HandshakeTimeout / time.Millisecond)
	}
	if cfg.Connection.WriteTimeoutMS == 0 {
		cfg.Connection.WriteTimeoutMS = int(d.WriteTimeout / time.Millisecond)
	}
	if cfg.Connection.ReadLimitBytes == 0 {
		cfg.Connection.ReadLimitBytes = d.ReadLimit
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// SelectServer chooses a server by name; fallback to first; if none, use top-level server.
func (c *AppConfig) SelectServer(name string) ServerConfig {
	if name != "" {
		for _, s := range c.Servers {
			if s.Name == name {
				return s
			}
		}
	}
	if len(c.Servers) > 0 {
		return c.Servers[0]
	}
	return c.Server
}

// ConnectionSettings converts the connection section for connection.New
func (c *AppConfig) ConnectionSettings() *connection.Settings {
	return &connection.Settings{
		HandshakeTimeout: time.Duration(c.Connection.HandshakeTimeoutMS) * time.Millisecond,
		WriteTimeout:     time.Duration(c.Connection.WriteTimeoutMS) * time.Millisecond,
		ReadLimit:        c.Connection.ReadLimitBytes,
	}
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/navkit-dev/navkit/internal/errors"
)

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "navkit.json"

	// DefaultPort is the default dev shell server port.
	DefaultPort = 4200

	// DefaultHost is the default dev shell server host.
	DefaultHost = "localhost"

	// DefaultRootComponent is the root component type assumed when the
	// project does not name one.
	DefaultRootComponent = "AppRoot"
)

// Config represents the complete navkit.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// RootComponent is the application's root component type.
	RootComponent string `json:"rootComponent,omitempty"`

	// BaseHref overrides the platform's base href.
	BaseHref string `json:"baseHref,omitempty"`

	// UseHash selects the fragment-based location strategy.
	UseHash bool `json:"useHash,omitempty"`

	// EnableTracing logs every router lifecycle event.
	EnableTracing bool `json:"enableTracing,omitempty"`

	// SkipInitialNavigation disables the automatic first navigation.
	SkipInitialNavigation bool `json:"skipInitialNavigation,omitempty"`

	// Preload selects the preloading strategy: "none" or "all".
	Preload string `json:"preload,omitempty"`

	// Routes configures where route-module manifests live.
	Routes RoutesConfig `json:"routes,omitempty"`

	// Dev contains dev shell server settings.
	Dev DevConfig `json:"dev,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RoutesConfig configures route-module manifest resolution.
type RoutesConfig struct {
	// Dir is the directory containing manifest JSON files.
	Dir string `json:"dir,omitempty"`

	// Entry is the name of the root manifest (without extension).
	Entry string `json:"entry,omitempty"`

	// Components lists the component types manifests may reference. Empty
	// disables validation.
	Components []string `json:"components,omitempty"`
}

// DevConfig contains dev shell server settings.
type DevConfig struct {
	// Port is the port to run the dev shell on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Version:       "0.1.0",
		RootComponent: DefaultRootComponent,
		Preload:       "none",
		Routes: RoutesConfig{
			Dir:   "routes",
			Entry: "app",
		},
		Dev: DevConfig{
			Port: DefaultPort,
			Host: DefaultHost,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for navkit.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFromWorkingDir reads configuration from the working directory,
// searching parent directories until a navkit.json is found.
func LoadFromWorkingDir() (*Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, errors.New("N080").Wrap(err)
	}
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, errors.New("N080").
				WithSuggestion("Run 'navkit init' or create navkit.json manually")
		}
		dir = parent
	}
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("N080").
				WithDetail("No navkit.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'navkit init' or create navkit.json manually")
		}
		return nil, errors.New("N081").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("N081").
			WithDetail("Failed to parse navkit.json: " + err.Error()).
			WithSuggestion("Check that navkit.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("N081").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("N081").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.RootComponent == "" {
		c.RootComponent = DefaultRootComponent
	}
	if c.Preload == "" {
		c.Preload = "none"
	}
	if c.Routes.Dir == "" {
		c.Routes.Dir = "routes"
	}
	if c.Routes.Entry == "" {
		c.Routes.Entry = "app"
	}
	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
}

// Validate checks the configuration for unrecognized values.
func (c *Config) Validate() error {
	switch c.Preload {
	case "none", "all":
	default:
		return errors.New("N081").
			WithDetail(fmt.Sprintf("unknown preload strategy %q", c.Preload)).
			WithSuggestion(`Use "none" or "all"`)
	}
	return nil
}

// DevAddress returns the host:port address for the dev shell server.
func (c *Config) DevAddress() string {
	return fmt.Sprintf("%s:%d", c.Dev.Host, c.Dev.Port)
}

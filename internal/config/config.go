package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/recera/vango-sigma/internal/frontend"
)

// FileNames are the config files looked up in the project root, in order.
var FileNames = []string{"vango.json", "vango.yaml", "vango.yml"}

// Config represents the vango configuration
type Config struct {
	// Graph component configuration
	Sigma *SigmaConfig `json:"sigma,omitempty" yaml:"sigma,omitempty" validate:"required"`

	// Development server configuration
	Dev *DevConfig `json:"dev,omitempty" yaml:"dev,omitempty" validate:"required"`

	// Sigma paths before and after resolve, so Save writes back what was read
	written  sigmaPaths
	resolved sigmaPaths
}

type sigmaPaths struct {
	root      string
	sourceDir string
	bundleDir string
}

func pathsOf(c *SigmaConfig) sigmaPaths {
	return sigmaPaths{root: c.Root, sourceDir: c.SourceDir, bundleDir: c.BundleDir}
}

// SigmaConfig controls asset staging and the frontend packages.
type SigmaConfig struct {
	// Project root the staging directory is resolved against
	Root string `json:"root,omitempty" yaml:"root,omitempty" validate:"required"`

	// Destination of the staged JSX files, relative to Root
	UtilsDir string `json:"utilsDir,omitempty" yaml:"utilsDir,omitempty" validate:"required"`

	// Directory to read JSX sources from instead of the embedded copies
	SourceDir string `json:"sourceDir,omitempty" yaml:"sourceDir,omitempty"`

	// Pinned npm packages ("name@version")
	Packages []string `json:"packages,omitempty" yaml:"packages,omitempty" validate:"dive,pkgspec"`

	// URL of the compiled component bundle the demo page imports
	BundleURL string `json:"bundleURL,omitempty" yaml:"bundleURL,omitempty" validate:"required"`

	// Directory holding the host-built bundle, relative to Root; served by the
	// demo under /assets/
	BundleDir string `json:"bundleDir,omitempty" yaml:"bundleDir,omitempty"`
}

// DevConfig contains development server configuration
type DevConfig struct {
	// Server port
	Port int `json:"port,omitempty" yaml:"port,omitempty" validate:"min=1,max=65535"`

	// Server host
	Host string `json:"host,omitempty" yaml:"host,omitempty" validate:"required"`
}

// Load loads configuration from the first config file found in projectPath.
// Relative Sigma paths are resolved against projectPath.
func Load(projectPath string) (*Config, error) {
	var cfg Config
	found := false

	for _, name := range FileNames {
		configPath := filepath.Join(projectPath, name)
		data, err := os.ReadFile(configPath)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if filepath.Ext(name) == ".json" {
			err = json.Unmarshal(data, &cfg)
		} else {
			err = yaml.Unmarshal(data, &cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
		found = true
		break
	}

	if !found {
		cfg = *DefaultConfig()
	}
	applyDefaults(&cfg)
	cfg.resolve(projectPath)
	return &cfg, nil
}

// Find returns the path of the first config file present in projectPath.
func Find(projectPath string) (string, bool) {
	for _, name := range FileNames {
		configPath := filepath.Join(projectPath, name)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, true
		}
	}
	return "", false
}

// Save saves configuration to vango.json. Paths Load resolved are written
// back in their original form unless they were changed since.
func Save(config *Config, projectPath string) error {
	configPath := filepath.Join(projectPath, "vango.json")

	out := *config
	if config.Sigma != nil {
		sigma := *config.Sigma
		sigma.Root = unresolve(sigma.Root, config.resolved.root, config.written.root)
		sigma.SourceDir = unresolve(sigma.SourceDir, config.resolved.sourceDir, config.written.sourceDir)
		sigma.BundleDir = unresolve(sigma.BundleDir, config.resolved.bundleDir, config.written.bundleDir)
		out.Sigma = &sigma
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, append(data, '\n'), 0644)
}

func unresolve(current, resolved, written string) string {
	if resolved != "" && current == resolved {
		return written
	}
	return current
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Sigma: &SigmaConfig{
			Root:      ".",
			UtilsDir:  ".web/utils",
			Packages:  append([]string(nil), frontend.DefaultPackages...),
			BundleURL: "/assets/sigma-graph.js",
			BundleDir: ".web/build/assets",
		},
		Dev: &DevConfig{
			Port: 8080,
			Host: "localhost",
		},
	}
}

// applyDefaults applies default values to missing configuration
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.Sigma == nil {
		config.Sigma = defaults.Sigma
	} else {
		if config.Sigma.Root == "" {
			config.Sigma.Root = defaults.Sigma.Root
		}
		if config.Sigma.UtilsDir == "" {
			config.Sigma.UtilsDir = defaults.Sigma.UtilsDir
		}
		if len(config.Sigma.Packages) == 0 {
			config.Sigma.Packages = defaults.Sigma.Packages
		}
		if config.Sigma.BundleURL == "" {
			config.Sigma.BundleURL = defaults.Sigma.BundleURL
		}
		if config.Sigma.BundleDir == "" {
			config.Sigma.BundleDir = defaults.Sigma.BundleDir
		}
	}

	if config.Dev == nil {
		config.Dev = defaults.Dev
	} else {
		if config.Dev.Port == 0 {
			config.Dev.Port = defaults.Dev.Port
		}
		if config.Dev.Host == "" {
			config.Dev.Host = defaults.Dev.Host
		}
	}
}

func (c *Config) resolve(projectPath string) {
	c.written = pathsOf(c.Sigma)
	if !filepath.IsAbs(c.Sigma.Root) {
		c.Sigma.Root = filepath.Join(projectPath, c.Sigma.Root)
	}
	if c.Sigma.SourceDir != "" && !filepath.IsAbs(c.Sigma.SourceDir) {
		c.Sigma.SourceDir = filepath.Join(projectPath, c.Sigma.SourceDir)
	}
	if c.Sigma.BundleDir != "" && !filepath.IsAbs(c.Sigma.BundleDir) {
		c.Sigma.BundleDir = filepath.Join(c.Sigma.Root, c.Sigma.BundleDir)
	}
	c.resolved = pathsOf(c.Sigma)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.RegisterValidation("pkgspec", func(fl validator.FieldLevel) bool {
		_, err := frontend.ParsePackage(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// PackageJSONPath returns the package.json the bundler installs from.
func (c *Config) PackageJSONPath() string {
	return filepath.Join(c.Sigma.Root, filepath.Dir(filepath.Clean(c.Sigma.UtilsDir)), "package.json")
}

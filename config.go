package breeze

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the conventional credentials file name.
const ConfigFileName = "breeze_maker.yml"

// Config holds the account credentials needed to reach the Breeze API.
type Config struct {
	// BreezeURL is the account address, https://<subdomain>.breezechms.com.
	BreezeURL string `yaml:"breeze_url"`
	// APIKey is the account's API key.
	APIKey string `yaml:"api_key"`
}

// ErrNoConfig is returned when no configuration file exists in any
// searched location.
var ErrNoConfig = errors.New("no configuration file found")

// LoadConfig reads credentials from breeze_maker.yml. With no arguments
// it merges the file from the standard locations (/etc, the user config
// directory, the home directory, then the working directory), later
// files overriding earlier ones. With explicit paths only those files
// are read, in order, and each must exist.
func LoadConfig(paths ...string) (*Config, error) {
	explicit := len(paths) > 0
	if !explicit {
		paths = defaultConfigPaths()
	}

	cfg := &Config{}
	found := false
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if !explicit && os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("breeze: reading config %s: %w", path, err)
		}
		var layer Config
		if err := yaml.Unmarshal(data, &layer); err != nil {
			return nil, fmt.Errorf("breeze: parsing config %s: %w", path, err)
		}
		if layer.BreezeURL != "" {
			cfg.BreezeURL = layer.BreezeURL
		}
		if layer.APIKey != "" {
			cfg.APIKey = layer.APIKey
		}
		found = true
	}
	if !found {
		return nil, ErrNoConfig
	}
	if cfg.BreezeURL == "" || cfg.APIKey == "" {
		return nil, badRequest("config must provide both breeze_url and api_key")
	}
	return cfg, nil
}

func defaultConfigPaths() []string {
	paths := []string{filepath.Join("/etc", ConfigFileName)}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, ConfigFileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ConfigFileName))
	}
	paths = append(paths, ConfigFileName)
	return paths
}

// Package config loads process configuration from YAML, falling back on an
// embedded default when no file is found.
package config

import (
	_ "embed"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed dialcast.yaml
var defaultConfig []byte

const envConfigFile = "DIALCAST_CONFIG"
const localConfigFile = ".dialcast.yml"

type Config struct {
	LocalIP        string `yaml:"local_ip"`
	DescriptorPort int    `yaml:"descriptor_port"`
	MaxAge         int    `yaml:"max_age"`
	DescriptorFile string `yaml:"descriptor_file"`
	DeviceUUID     string `yaml:"device_uuid"`
	FriendlyName   string `yaml:"friendly_name"`
	Manufacturer   string `yaml:"manufacturer"`
	ModelName      string `yaml:"model_name"`
	Server         string `yaml:"server"`
	LogLevel       string `yaml:"log_level"`
}

// Load reads the configuration, trying in order: the given path, the file
// named by DIALCAST_CONFIG, .dialcast.yml in the current directory, and
// finally the embedded default. An explicitly requested file that cannot be
// read is an error; the fallbacks are silent.
func Load(filename string) (*Config, error) {
	var data []byte

	switch {
	case filename != "":
		d, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", filename, err)
		}
		log.Infof("✅ Using config %s", filename)
		data = d
	case os.Getenv(envConfigFile) != "":
		path := os.Getenv(envConfigFile)
		d, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s (from %s): %w", path, envConfigFile, err)
		}
		log.Infof("✅ Using config %s from %s", path, envConfigFile)
		data = d
	default:
		if d, err := os.ReadFile(localConfigFile); err == nil {
			log.Infof("✅ Using config %s", localConfigFile)
			data = d
		} else {
			log.Infof("✅ Using default embedded config")
			data = defaultConfig
		}
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: invalid YAML: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DescriptorPort == 0 {
		c.DescriptorPort = 8081
	}
	if c.MaxAge == 0 {
		c.MaxAge = 900
	}
	if c.FriendlyName == "" {
		c.FriendlyName = "dialcast renderer"
	}
	if c.Manufacturer == "" {
		c.Manufacturer = "dialcast"
	}
	if c.ModelName == "" {
		c.ModelName = "dialcast virtual renderer"
	}
	if c.Server == "" {
		c.Server = "Linux/1.0 UPnP/1.0 dialcast/1.0"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

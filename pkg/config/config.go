package config

import (
	"fmt"
	"os"
	"time"

	"github.com/jinzhu/copier"
	"github.com/railstat/railstat/pkg/util"
	"gopkg.in/yaml.v3"
)

type Config struct {
	StorePath string `yaml:"StorePath"`

	AmtrakerURL         string `yaml:"AmtrakerURL"`
	FetchTimeoutSeconds int    `yaml:"FetchTimeoutSeconds"`

	OnTimeGraceMinutes int    `yaml:"OnTimeGraceMinutes"`
	Timezone           string `yaml:"Timezone"`

	Listen string `yaml:"Listen"`
}

func Defaults() Config {
	return Config{
		StorePath: "auto_train_status.csv",

		AmtrakerURL:         "https://api-v3.amtraker.com/v3",
		FetchTimeoutSeconds: 15,

		OnTimeGraceMinutes: 0,
		Timezone:           "America/New_York",

		Listen: ":8080",
	}
}

// Load builds the runtime configuration from the compiled defaults, an
// optional YAML file and finally any environment variable overrides.
// A file value that is unset keeps the default rather than zeroing it
func Load(path string) (*Config, error) {
	config := Defaults()

	environmentVariables := util.GetEnvironmentVariables()

	if path == "" {
		path = environmentVariables["RAILSTAT_CONFIG"]
	}

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		var fileConfig Config
		if err := yaml.NewDecoder(file).Decode(&fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}

		if err := copier.CopyWithOption(&config, fileConfig, copier.Option{IgnoreEmpty: true}); err != nil {
			return nil, err
		}
	}

	if storePath := environmentVariables["RAILSTAT_STORE_PATH"]; storePath != "" {
		config.StorePath = storePath
	}
	if amtrakerURL := environmentVariables["RAILSTAT_AMTRAKER_URL"]; amtrakerURL != "" {
		config.AmtrakerURL = amtrakerURL
	}
	if timezone := environmentVariables["RAILSTAT_TIMEZONE"]; timezone != "" {
		config.Timezone = timezone
	}
	if listen := environmentVariables["RAILSTAT_LISTEN"]; listen != "" {
		config.Listen = listen
	}

	return &config, nil
}

func (config *Config) FetchTimeout() time.Duration {
	return time.Duration(config.FetchTimeoutSeconds) * time.Second
}

func (config *Config) Location() (*time.Location, error) {
	return time.LoadLocation(config.Timezone)
}

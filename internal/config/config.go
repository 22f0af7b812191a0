package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Data   DataConfig   `mapstructure:"data"`
	Goals  GoalsConfig  `mapstructure:"goals"`
	HTTP   HTTPConfig   `mapstructure:"http"`
	Ollama OllamaConfig `mapstructure:"ollama"`
}

type DataConfig struct {
	Path string `mapstructure:"path"`
}

// GoalsConfig sets the defaults used when a day's wellness record is
// first created.
type GoalsConfig struct {
	Steps int `mapstructure:"steps"`
	Water int `mapstructure:"water"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type OllamaConfig struct {
	Host    string `mapstructure:"host"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

func defaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tend.db"
	}
	return filepath.Join(home, ".config", "tend", "tend.db")
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/tend")

	viper.SetDefault("data.path", defaultDataPath())

	viper.SetDefault("goals.steps", 10000)
	viper.SetDefault("goals.water", 8)

	viper.SetDefault("http.addr", "localhost:8080")

	viper.SetDefault("ollama.host", "http://localhost:11434")
	viper.SetDefault("ollama.model", "codellama")
	viper.SetDefault("ollama.timeout", 30)

	viper.SetEnvPrefix("TEND")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found, use defaults
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

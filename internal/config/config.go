// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Reminders RemindersConfig `yaml:"reminders"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Host string `yaml:"host"`
}

type StorageConfig struct {
	Path string `yaml:"path"` // файл с задачами (JSON)
}

type RemindersConfig struct {
	SweepInterval Duration `yaml:"sweep_interval"` // период фоновой проверки
	Desktop       bool     `yaml:"desktop"`        // нативные уведомления ОС
}

// Duration - обёртка, потому что yaml.v3 не умеет строки вида "60s"
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("неверная длительность %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("не могу открыть %s: %w", path, err)
	}
	defer file.Close()

	var cfg Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "tasks.json"
	}
	if c.Reminders.SweepInterval <= 0 {
		c.Reminders.SweepInterval = Duration(time.Minute)
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

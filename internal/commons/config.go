package commons

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"radagast/internal/config"
)

// fileConfig mirrors config.Config with durations as strings, since yaml
// cannot decode "5m" into time.Duration directly.
type fileConfig struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		User            string `yaml:"user"`
		Password        string `yaml:"password"`
		Name            string `yaml:"name"`
		MaxOpenConns    int    `yaml:"maxOpenConns"`
		MaxIdleConns    int    `yaml:"maxIdleConns"`
		ConnMaxLifetime string `yaml:"connMaxLifetime"`
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Auth struct {
		APIKey string `yaml:"apiKey"`
	} `yaml:"auth"`
	Stock struct {
		ReallocationTxTimeout string `yaml:"reallocationTxTimeout"`
		MaxRetryAttempts      int    `yaml:"maxRetryAttempts"`
	} `yaml:"stock"`
}

func LoadConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	connMaxLifetime, err := time.ParseDuration(fc.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("parsing database.connMaxLifetime: %w", err)
	}

	txTimeout, err := time.ParseDuration(fc.Stock.ReallocationTxTimeout)
	if err != nil {
		return nil, fmt.Errorf("parsing stock.reallocationTxTimeout: %w", err)
	}

	return &config.Config{
		Server: config.ServerConfig{
			Port: fc.Server.Port,
		},
		Database: config.DatabaseConfig{
			Host:            fc.Database.Host,
			Port:            fc.Database.Port,
			User:            fc.Database.User,
			Password:        fc.Database.Password,
			Name:            fc.Database.Name,
			MaxOpenConns:    fc.Database.MaxOpenConns,
			MaxIdleConns:    fc.Database.MaxIdleConns,
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: config.LogConfig{
			Level: fc.Log.Level,
		},
		Auth: config.AuthConfig{
			APIKey: fc.Auth.APIKey,
		},
		Stock: config.StockConfig{
			ReallocationTxTimeout: txTimeout,
			MaxRetryAttempts:      fc.Stock.MaxRetryAttempts,
		},
	}, nil
}

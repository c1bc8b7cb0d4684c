package metadata

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/yc-actions/bucket-deploy/pkg/loglevel"
	"github.com/yc-actions/bucket-deploy/pkg/storage"
)

// Config is the function configuration, read from the environment.
type Config struct {
	Region          string            `env:"S3_REGION" env-description:"S3 region, defaults to the AWS SDK chain"`
	Endpoint        string            `env:"S3_ENDPOINT" env-description:"custom endpoint for S3-compatible stores"`
	UsePathStyle    bool              `env:"S3_USE_PATH_STYLE" env-default:"false"`
	AccessKeyID     string            `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string            `env:"S3_SECRET_ACCESS_KEY"`
	ContentTypes    map[string]string `env:"CONTENT_TYPES" env-separator:"," env-description:"extra ext:content-type pairs"`
	LogLevel        string            `env:"LOG_LEVEL" env-default:"INFO"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	if _, err := loglevel.Parse(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return &cfg, nil
}

// ContentTypeTable returns the built-in table extended by CONTENT_TYPES.
func (c *Config) ContentTypeTable() ContentTypeTable {
	return DefaultContentTypes().With(c.ContentTypes)
}

// ClientConfig returns the S3 client settings.
func (c *Config) ClientConfig() storage.ClientConfig {
	return storage.ClientConfig{
		Region:          c.Region,
		Endpoint:        c.Endpoint,
		UsePathStyle:    c.UsePathStyle,
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
	}
}

// NewLogger returns a JSON logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := loglevel.Parse(c.LogLevel)
	if err != nil {
		return nil, err
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
}

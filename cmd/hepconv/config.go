package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/hupe1980/hepgo"
	"github.com/hupe1980/hepgo/blobstore"
	"github.com/hupe1980/hepgo/blobstore/minio"
	"github.com/hupe1980/hepgo/blobstore/s3"
	"github.com/hupe1980/hepgo/resource"
)

const envPrefix = "HEPCONV"

// Config holds the settings shared by all subcommands. Values come from
// flags, HEPCONV_* environment variables and an optional config file, in
// that order of precedence.
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	Workers  int    `mapstructure:"workers"`
	IOLimit  int64  `mapstructure:"io_limit"`

	Store string `mapstructure:"store"`

	S3 struct {
		Bucket   string `mapstructure:"bucket"`
		Prefix   string `mapstructure:"prefix"`
		Region   string `mapstructure:"region"`
		Endpoint string `mapstructure:"endpoint"`
	} `mapstructure:"s3"`

	MinIO struct {
		Endpoint  string `mapstructure:"endpoint"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		Secure    bool   `mapstructure:"secure"`
		Bucket    string `mapstructure:"bucket"`
		Prefix    string `mapstructure:"prefix"`
	} `mapstructure:"minio"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "warn")
	v.SetDefault("workers", 4)
	v.SetDefault("io_limit", 0)
	v.SetDefault("store", "local")
	v.SetDefault("s3.region", "")
	v.SetDefault("minio.secure", true)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func loadConfig(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be positive, got %d", cfg.Workers)
	}
	return cfg, nil
}

func (c *Config) logger() (*hepgo.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return hepgo.NewTextLogger(level), nil
}

func (c *Config) controller() *resource.Controller {
	return resource.NewController(resource.Config{
		MaxWorkers:         int64(c.Workers),
		IOLimitBytesPerSec: c.IOLimit,
	})
}

// blobStore returns the configured remote store, or nil for local files.
func (c *Config) blobStore(ctx context.Context) (blobstore.BlobStore, error) {
	switch c.Store {
	case "", "local":
		return nil, nil
	case "s3":
		if c.S3.Bucket == "" {
			return nil, fmt.Errorf("s3 store requires s3.bucket")
		}
		var opts []s3.Option
		if c.S3.Prefix != "" {
			opts = append(opts, s3.WithPrefix(c.S3.Prefix))
		}
		if c.S3.Region != "" {
			opts = append(opts, s3.WithRegion(c.S3.Region))
		}
		if c.S3.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(c.S3.Endpoint))
		}
		return s3.New(ctx, c.S3.Bucket, opts...)
	case "minio":
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			return nil, fmt.Errorf("minio store requires minio.endpoint and minio.bucket")
		}
		return minio.Dial(c.MinIO.Endpoint, c.MinIO.AccessKey, c.MinIO.SecretKey, c.MinIO.Secure, c.MinIO.Bucket, c.MinIO.Prefix)
	default:
		return nil, fmt.Errorf("unknown store %q", c.Store)
	}
}

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/hepgo"
	"github.com/hupe1980/hepgo/blobstore"
	"github.com/hupe1980/hepgo/resource"
)

// app carries the state resolved before a subcommand runs.
type app struct {
	v          *viper.Viper
	configFile string

	cfg        *Config
	logger     *hepgo.Logger
	controller *resource.Controller
	store      blobstore.BlobStore
}

func newRootCmd() *cobra.Command {
	a := &app{v: newViper()}

	rootCmd := &cobra.Command{
		Use:   "hepconv",
		Short: "Convert and summarize HepMC3 event streams",
		Long: `hepconv converts event streams between the Asciiv3 listing, JSON and
msgpack record formats, with optional gzip, zstd or lz4 compression, and
summarizes their content.

Streams are read from local files by default, or from S3 or MinIO when a
remote store is configured.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Config file path")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.Int("workers", 4, "Files processed concurrently")
	flags.Int64("io-limit", 0, "Stream IO limit in bytes per second (0 = unlimited)")
	flags.String("store", "local", "Blob store (local, s3, minio)")
	flags.String("s3-bucket", "", "S3 bucket")
	flags.String("s3-prefix", "", "S3 key prefix")
	flags.String("s3-region", "", "S3 region")
	flags.String("s3-endpoint", "", "S3 endpoint override")
	flags.String("minio-endpoint", "", "MinIO endpoint")
	flags.String("minio-bucket", "", "MinIO bucket")
	flags.String("minio-prefix", "", "MinIO key prefix")

	for key, flag := range map[string]string{
		"log_level":      "log-level",
		"workers":        "workers",
		"io_limit":       "io-limit",
		"store":          "store",
		"s3.bucket":      "s3-bucket",
		"s3.prefix":      "s3-prefix",
		"s3.region":      "s3-region",
		"s3.endpoint":    "s3-endpoint",
		"minio.endpoint": "minio-endpoint",
		"minio.bucket":   "minio-bucket",
		"minio.prefix":   "minio-prefix",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(newConvertCmd(a))
	rootCmd.AddCommand(newStatCmd(a))
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.v, a.configFile)
	if err != nil {
		return err
	}
	logger, err := cfg.logger()
	if err != nil {
		return err
	}
	store, err := cfg.blobStore(cmd.Context())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.controller = cfg.controller()
	a.store = store
	return nil
}

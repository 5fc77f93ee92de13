// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"flag"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/juju/errors"
)

const (
	DefaultPort           = 5000
	DefaultDatabaseType   = "mongo"
	DefaultDatabaseName   = "labdesk"
	DefaultAttachmentDir  = "uploads"
	DefaultMaxUploadBytes = 10 << 20
	defaultEnvFile        = ".env"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	DatabaseName   string
	AttachmentDir  string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	MaxUploadBytes int64
	EnvFile        string
}

// ObjectStorage reports whether attachments go to an S3-compatible bucket
// instead of the local filesystem.
func (c Config) ObjectStorage() bool {
	return c.S3Endpoint != ""
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var maxUpload string

	fs := flag.NewFlagSet("labdesk", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (mongo, postgres or sqlite)")
	fs.StringVar(&cfg.DatabaseName, "db", "", "Database name (mongo only)")
	fs.StringVar(&cfg.EnvFile, "env", "", "Env file to load before reading the environment")

	// Attachments
	fs.StringVar(&cfg.AttachmentDir, "attachments", "", "Attachment directory for the filesystem store")
	fs.StringVar(&maxUpload, "max-upload", "", "Maximum upload size (e.g. 10MiB)")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", "", "S3-compatible endpoint")
	fs.StringVar(&cfg.S3AccessKey, "s3-access-key", "", "S3 access key (prefer env)")
	fs.StringVar(&cfg.S3SecretKey, "s3-secret-key", "", "S3 secret key (prefer env)")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", "", "S3 bucket")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Values already in the environment win over the env file
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil {
			return Config{}, errors.Annotatef(err, "loading env file %q", cfg.EnvFile)
		}
	} else if err := godotenv.Load(defaultEnvFile); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Annotatef(err, "loading env file %q", defaultEnvFile)
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	cfg.DatabaseURL = fallback(cfg.DatabaseURL, "DATABASE_URL", "")
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	cfg.DatabaseType = fallback(cfg.DatabaseType, "DATABASE_TYPE", DefaultDatabaseType)
	switch cfg.DatabaseType {
	case "mongo", "postgres", "sqlite":
	default:
		return Config{}, errors.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
	cfg.DatabaseName = fallback(cfg.DatabaseName, "DATABASE_NAME", DefaultDatabaseName)
	cfg.AttachmentDir = fallback(cfg.AttachmentDir, "ATTACHMENT_DIR", DefaultAttachmentDir)

	maxUpload = fallback(maxUpload, "MAX_UPLOAD_BYTES", "")
	cfg.MaxUploadBytes = DefaultMaxUploadBytes
	if maxUpload != "" {
		n, err := humanize.ParseBytes(maxUpload)
		if err != nil || n == 0 {
			return Config{}, errors.Errorf("invalid upload limit %q", maxUpload)
		}
		cfg.MaxUploadBytes = int64(n)
	}

	cfg.S3Endpoint = fallback(cfg.S3Endpoint, "S3_ENDPOINT", "")
	cfg.S3AccessKey = fallback(cfg.S3AccessKey, "S3_ACCESS_KEY", "")
	cfg.S3SecretKey = fallback(cfg.S3SecretKey, "S3_SECRET_KEY", "")
	cfg.S3Bucket = fallback(cfg.S3Bucket, "S3_BUCKET", "")
	if cfg.ObjectStorage() && (cfg.S3AccessKey == "" || cfg.S3SecretKey == "" || cfg.S3Bucket == "") {
		return Config{}, errors.New("S3_ENDPOINT set but S3_ACCESS_KEY, S3_SECRET_KEY or S3_BUCKET missing")
	}

	return cfg, nil
}

func fallback(value, env, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv blanks every variable ParseFlags reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DATABASE_URL", "DATABASE_TYPE", "DATABASE_NAME", "ATTACHMENT_DIR",
		"MAX_UPLOAD_BYTES", "S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET",
	} {
		t.Setenv(k, "")
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "lims")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseName != "lims" {
		t.Errorf("expected database name lims, got %q", cfg.DatabaseName)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-d", "mongodb://localhost:27017"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.DatabaseType != "mongo" {
		t.Errorf("expected default type mongo, got %q", cfg.DatabaseType)
	}
	if cfg.DatabaseName != DefaultDatabaseName {
		t.Errorf("expected default name %q, got %q", DefaultDatabaseName, cfg.DatabaseName)
	}
	if cfg.AttachmentDir != DefaultAttachmentDir {
		t.Errorf("expected attachment dir %q, got %q", DefaultAttachmentDir, cfg.AttachmentDir)
	}
	if cfg.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Errorf("expected upload limit %d, got %d", DefaultMaxUploadBytes, cfg.MaxUploadBytes)
	}
	if cfg.ObjectStorage() {
		t.Error("object storage should be off without S3_ENDPOINT")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-t", "sqlite"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("CLI should override env: expected sqlite, got %q", cfg.DatabaseType)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"missing database url", []string{}, nil},
		{"invalid port env", []string{"-d", "x"}, map[string]string{"PORT": "abc"}},
		{"unsupported database type", []string{"-d", "x", "-t", "oracle"}, nil},
		{"invalid upload limit", []string{"-d", "x", "-max-upload", "lots"}, nil},
		{"incomplete s3 config", []string{"-d", "x", "-s3-endpoint", "minio:9000"}, nil},
		{"unknown flag", []string{"-nope"}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tc.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseFlags_UploadLimit(t *testing.T) {
	testCases := []struct {
		in   string
		want int64
	}{
		{"1048576", 1 << 20},
		{"5MiB", 5 << 20},
		{"2 MB", 2000000},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("MAX_UPLOAD_BYTES", tc.in)
			cfg, err := ParseFlags([]string{"-d", "x"})
			if err != nil {
				t.Fatal(err)
			}
			if cfg.MaxUploadBytes != tc.want {
				t.Errorf("expected %d, got %d", tc.want, cfg.MaxUploadBytes)
			}
		})
	}
}

func TestParseFlags_ObjectStorage(t *testing.T) {
	clearEnv(t)
	t.Setenv("S3_ENDPOINT", "http://minio:9000")
	t.Setenv("S3_ACCESS_KEY", "minio")
	t.Setenv("S3_SECRET_KEY", "minio123")
	t.Setenv("S3_BUCKET", "attachments")

	cfg, err := ParseFlags([]string{"-d", "x"})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.ObjectStorage() || cfg.S3Bucket != "attachments" {
		t.Errorf("unexpected object storage config %+v", cfg)
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "labdesk.env")
	content := "DATABASE_URL=postgres://lab@localhost/labdesk\nDATABASE_TYPE=postgres\nPORT=7000\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv sets variables for the whole process
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("DATABASE_TYPE")
		os.Unsetenv("PORT")
	})
	// Blank values count as unset, so unset them for the file to apply
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("DATABASE_TYPE")
	os.Unsetenv("PORT")

	cfg, err := ParseFlags([]string{"-env", path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DatabaseType != "postgres" || cfg.Port != 7000 {
		t.Errorf("env file not applied: %+v", cfg)
	}

	if _, err := ParseFlags([]string{"-env", filepath.Join(t.TempDir(), "missing.env")}); err == nil {
		t.Error("expected an error for a missing explicit env file")
	}
}

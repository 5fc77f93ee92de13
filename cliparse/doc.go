// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseURL: MongoDB URI, PostgreSQL connection string or SQLite path (required)
  - DatabaseType: mongo, postgres or sqlite (default: mongo)
  - DatabaseName: MongoDB database name (default: labdesk)
  - AttachmentDir: Directory for the filesystem attachment store (default: uploads)
  - MaxUploadBytes: Largest accepted attachment (default: 10 MiB)
  - S3Endpoint, S3AccessKey, S3SecretKey, S3Bucket: Object storage for attachments

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	-db             Database name
	-attachments    Attachment directory
	-max-upload     Upload limit, plain bytes or units such as 10MiB
	-s3-endpoint    S3-compatible endpoint, with or without scheme
	-s3-access-key  S3 access key
	-s3-secret-key  S3 secret key
	-s3-bucket      S3 bucket
	-env            Env file to load

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	DATABASE_NAME    → -db
	ATTACHMENT_DIR   → -attachments
	MAX_UPLOAD_BYTES → -max-upload
	S3_ENDPOINT      → -s3-endpoint
	S3_ACCESS_KEY    → -s3-access-key
	S3_SECRET_KEY    → -s3-secret-key
	S3_BUCKET        → -s3-bucket

CLI flags take precedence over environment variables. Before the environment
is read, a .env file in the working directory is loaded if present; -env names
a different file, which must exist. Variables already set in the process
environment are never overwritten by the file.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - DATABASE_TYPE is not mongo, postgres or sqlite
  - S3_ENDPOINT is set without the access key, secret key and bucket

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
*/
package cliparse

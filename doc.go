// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the labdesk API server.

labdesk tracks laboratory work requests. General requests and equipment
reservations live in separate collections; a status update addressed by
record id or request number finds the right one, searching general requests
first.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=mongodb://localhost:27017 go run .

Or with flags:

	go run . -p 5000 -t postgres -d "postgres://..."
	go run . -t sqlite -d labdesk.db

# Configuration

Required settings:

  - DATABASE_URL (-d): MongoDB URI, PostgreSQL connection string or SQLite path

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): mongo, postgres or sqlite (default: mongo)
  - DATABASE_NAME (-db): MongoDB database (default: labdesk)
  - ATTACHMENT_DIR (-attachments): Filesystem attachment root (default: uploads)
  - MAX_UPLOAD_BYTES (-max-upload): Attachment size limit (default: 10 MiB)
  - S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY, S3_BUCKET: Store attachments in MinIO/S3

A .env file in the working directory is read at startup.

# Architecture

  - handlers: HTTP request handlers (requests, equipment, samples, scores, attachments)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, request ids, logging, response envelope
  - reconcile: Status updates across the two request collections
  - store: Storage interfaces, with mongostore and sqlstore backends
  - attachments: Filesystem and MinIO file stores
  - models: Domain, request and response types
  - idgen: Record ids and human-readable numbers
  - db: SQL schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

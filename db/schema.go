// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed by the SQL backend.
// Safe to call multiple times - uses IF NOT EXISTS.
// The statements are valid for both PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- General requests
CREATE TABLE IF NOT EXISTS request (
    id TEXT PRIMARY KEY,
    request_number TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    requested_by TEXT NOT NULL,
    request_status TEXT NOT NULL DEFAULT 'pending',
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL,
    complete_date TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_request_status ON request(request_status);

-- Equipment reservation requests
CREATE TABLE IF NOT EXISTS equipment_request (
    id TEXT PRIMARY KEY,
    request_number TEXT NOT NULL UNIQUE,
    equipment_name TEXT NOT NULL,
    requested_by TEXT NOT NULL,
    purpose TEXT NOT NULL DEFAULT '',
    start_time TIMESTAMPTZ NOT NULL,
    end_time TIMESTAMPTZ NOT NULL,
    request_status TEXT NOT NULL DEFAULT 'pending',
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL,
    complete_date TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_equipment_request_status ON equipment_request(request_status);

-- Samples
CREATE TABLE IF NOT EXISTS sample (
    id TEXT PRIMARY KEY,
    sample_code TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    sample_type TEXT NOT NULL DEFAULT '',
    owner TEXT NOT NULL,
    location TEXT NOT NULL DEFAULT '',
    collected_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sample_owner ON sample(owner);

-- User scores
CREATE TABLE IF NOT EXISTS user_score (
    user_id TEXT PRIMARY KEY,
    score BIGINT NOT NULL DEFAULT 0,
    updated_at TIMESTAMPTZ NOT NULL
);
`

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema creation for the SQL backend.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite).

# Tables

  - request: General requests and their status lifecycle
  - equipment_request: Equipment reservations, kept apart from request
  - sample: Sample records
  - user_score: Point totals per user

request and equipment_request share the columns the status reconciler
touches: request_status, updated_at and complete_date.

# Indexes

  - request.request_number (unique)
  - request.request_status
  - equipment_request.request_number (unique)
  - equipment_request.request_status
  - sample.sample_code (unique)
  - sample.owner
*/
package db

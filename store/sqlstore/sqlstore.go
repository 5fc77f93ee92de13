// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/labdesk/db"
	"github.com/danielhkuo/labdesk/store"
)

// Open connects to PostgreSQL or SQLite and makes sure the schema exists.
func Open(ctx context.Context, dbType, dsn string) (*sql.DB, error) {
	driverName := "postgres"
	if dbType == store.TypeSQLite {
		driverName = "sqlite"
	}

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, errors.Annotatef(err, "opening %s database", dbType)
	}
	if dbType == store.TypeSQLite {
		// One connection: SQLite has a single writer and ":memory:"
		// databases are private to the connection that created them.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, errors.Annotatef(err, "pinging %s database", dbType)
	}
	if err := db.CreateSchema(conn); err != nil {
		_ = conn.Close()
		return nil, errors.Trace(err)
	}
	return conn, nil
}

// New builds a store.Backend over an open connection.
func New(conn *sql.DB, clk clock.Clock) *store.Backend {
	if clk == nil {
		clk = clock.WallClock
	}
	return store.NewBackend(
		&RequestTable{db: conn, clock: clk},
		&EquipmentTable{db: conn, clock: clk},
		&SampleTable{db: conn, clock: clk},
		&ScoreTable{db: conn, clock: clk},
		func(context.Context) error { return conn.Close() },
	)
}

// isUniqueViolation reports whether err is a unique-constraint failure from
// either supported driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}
	return false
}

// nullableTime converts an optional timestamp into a bind argument.
func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// timeLayouts covers what lib/pq and modernc.org/sqlite hand back for
// TIMESTAMP columns when the driver does not convert them itself.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// scanTime is a sql.Scanner that accepts time.Time, string or []byte.
type scanTime struct {
	Time  time.Time
	Valid bool
}

func (s *scanTime) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		s.Time, s.Valid = time.Time{}, false
		return nil
	case time.Time:
		s.Time, s.Valid = v.UTC(), true
		return nil
	case []byte:
		return s.parse(string(v))
	case string:
		return s.parse(v)
	}
	return errors.Errorf("cannot scan %T into timestamp", value)
}

func (s *scanTime) parse(v string) error {
	// time.Time.String may carry a monotonic clock suffix.
	if i := strings.Index(v, " m="); i >= 0 {
		v = v[:i]
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			s.Time, s.Valid = t.UTC(), true
			return nil
		}
	}
	return errors.Errorf("cannot parse timestamp %q", v)
}

func (s scanTime) ptr() *time.Time {
	if !s.Valid {
		return nil
	}
	t := s.Time
	return &t
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

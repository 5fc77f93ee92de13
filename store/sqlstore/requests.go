// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"database/sql"

	"github.com/juju/clock"
	"github.com/juju/errors"

	"github.com/danielhkuo/labdesk/idgen"
	"github.com/danielhkuo/labdesk/models"
)

const requestColumns = `id, request_number, title, description, requested_by,
	request_status, created_at, updated_at, complete_date`

// RequestTable stores general requests in the request table.
type RequestTable struct {
	db    *sql.DB
	clock clock.Clock
}

func (t *RequestTable) Kind() models.RecordKind { return models.KindGeneric }

func scanRequest(row rowScanner) (*models.GenericRequest, error) {
	var req models.GenericRequest
	var createdAt, updatedAt, completeDate scanTime
	err := row.Scan(
		&req.ID, &req.RequestNumber, &req.Title, &req.Description, &req.RequestedBy,
		&req.RequestStatus, &createdAt, &updatedAt, &completeDate,
	)
	if err != nil {
		return nil, err
	}
	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time
	req.CompleteDate = completeDate.ptr()
	return &req, nil
}

// Create inserts req, filling in its id, timestamps and default status.
func (t *RequestTable) Create(ctx context.Context, req *models.GenericRequest) error {
	now := t.clock.Now().UTC()
	req.ID = idgen.NewID()
	req.CreatedAt = now
	req.UpdatedAt = now
	if req.RequestStatus == "" {
		req.RequestStatus = models.StatusPending
	}

	_, err := t.db.ExecContext(ctx, `
		INSERT INTO request (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, req.ID, req.RequestNumber, req.Title, req.Description, req.RequestedBy,
		req.RequestStatus, req.CreatedAt, req.UpdatedAt, nullableTime(req.CompleteDate))
	if isUniqueViolation(err) {
		return errors.AlreadyExistsf("request number %q", req.RequestNumber)
	}
	if err != nil {
		return errors.Annotate(err, "inserting request")
	}
	return nil
}

func (t *RequestTable) Find(ctx context.Context, identifier string) (models.Record, error) {
	row := t.db.QueryRowContext(ctx, `
		SELECT `+requestColumns+`
		FROM request
		WHERE id = $1 OR request_number = $1
		LIMIT 1
	`, identifier)
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("request %q", identifier)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "querying request %q", identifier)
	}
	return req, nil
}

// FindAndUpdateStatus updates at most one row in a single statement and
// returns it as persisted.
func (t *RequestTable) FindAndUpdateStatus(ctx context.Context, identifier string, u models.StatusUpdate) (models.Record, error) {
	row := t.db.QueryRowContext(ctx, `
		UPDATE request
		SET request_status = $1, updated_at = $2, complete_date = COALESCE($3, complete_date)
		WHERE id = (SELECT id FROM request WHERE id = $4 OR request_number = $4 LIMIT 1)
		RETURNING `+requestColumns,
		u.Status, u.UpdatedAt.UTC(), nullableTime(u.CompleteDate), identifier)
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("request %q", identifier)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "updating request %q", identifier)
	}
	return req, nil
}

// List returns requests newest first, optionally filtered by status.
func (t *RequestTable) List(ctx context.Context, status string) ([]models.GenericRequest, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT `+requestColumns+`
		FROM request
		WHERE $1 = '' OR request_status = $1
		ORDER BY created_at DESC
	`, status)
	if err != nil {
		return nil, errors.Annotate(err, "listing requests")
	}
	defer rows.Close()

	requests := []models.GenericRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, errors.Annotate(err, "scanning request")
		}
		requests = append(requests, *req)
	}
	return requests, errors.Trace(rows.Err())
}

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

const equipmentColumns = `id, request_number, equipment_name, requested_by, purpose,
	start_time, end_time, request_status, created_at, updated_at, complete_date`

// EquipmentTable stores equipment reservations in the equipment_request table.
type EquipmentTable struct {
	db    *sql.DB
	clock clock.Clock
}

func (t *EquipmentTable) Kind() models.RecordKind { return models.KindEquipment }

func scanEquipment(row rowScanner) (*models.EquipmentRequest, error) {
	var req models.EquipmentRequest
	var start, end, createdAt, updatedAt, completeDate scanTime
	err := row.Scan(
		&req.ID, &req.RequestNumber, &req.EquipmentName, &req.RequestedBy, &req.Purpose,
		&start, &end, &req.RequestStatus, &createdAt, &updatedAt, &completeDate,
	)
	if err != nil {
		return nil, err
	}
	req.StartTime = start.Time
	req.EndTime = end.Time
	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time
	req.CompleteDate = completeDate.ptr()
	return &req, nil
}

func (t *EquipmentTable) Create(ctx context.Context, req *models.EquipmentRequest) error {
	now := t.clock.Now().UTC()
	req.ID = idgen.NewID()
	req.CreatedAt = now
	req.UpdatedAt = now
	if req.RequestStatus == "" {
		req.RequestStatus = models.StatusPending
	}

	_, err := t.db.ExecContext(ctx, `
		INSERT INTO equipment_request (`+equipmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, req.ID, req.RequestNumber, req.EquipmentName, req.RequestedBy, req.Purpose,
		req.StartTime.UTC(), req.EndTime.UTC(), req.RequestStatus, req.CreatedAt, req.UpdatedAt,
		nullableTime(req.CompleteDate))
	if isUniqueViolation(err) {
		return errors.AlreadyExistsf("equipment request number %q", req.RequestNumber)
	}
	if err != nil {
		return errors.Annotate(err, "inserting equipment request")
	}
	return nil
}

func (t *EquipmentTable) Find(ctx context.Context, identifier string) (models.Record, error) {
	row := t.db.QueryRowContext(ctx, `
		SELECT `+equipmentColumns+`
		FROM equipment_request
		WHERE id = $1 OR request_number = $1
		LIMIT 1
	`, identifier)
	req, err := scanEquipment(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("equipment request %q", identifier)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "querying equipment request %q", identifier)
	}
	return req, nil
}

func (t *EquipmentTable) FindAndUpdateStatus(ctx context.Context, identifier string, u models.StatusUpdate) (models.Record, error) {
	row := t.db.QueryRowContext(ctx, `
		UPDATE equipment_request
		SET request_status = $1, updated_at = $2, complete_date = COALESCE($3, complete_date)
		WHERE id = (SELECT id FROM equipment_request WHERE id = $4 OR request_number = $4 LIMIT 1)
		RETURNING `+equipmentColumns,
		u.Status, u.UpdatedAt.UTC(), nullableTime(u.CompleteDate), identifier)
	req, err := scanEquipment(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("equipment request %q", identifier)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "updating equipment request %q", identifier)
	}
	return req, nil
}

// List returns reservations ordered by start time, optionally filtered by status.
func (t *EquipmentTable) List(ctx context.Context, status string) ([]models.EquipmentRequest, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT `+equipmentColumns+`
		FROM equipment_request
		WHERE $1 = '' OR request_status = $1
		ORDER BY start_time
	`, status)
	if err != nil {
		return nil, errors.Annotate(err, "listing equipment requests")
	}
	defer rows.Close()

	requests := []models.EquipmentRequest{}
	for rows.Next() {
		req, err := scanEquipment(rows)
		if err != nil {
			return nil, errors.Annotate(err, "scanning equipment request")
		}
		requests = append(requests, *req)
	}
	return requests, errors.Trace(rows.Err())
}

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

const sampleColumns = `id, sample_code, name, sample_type, owner, location,
	collected_at, created_at, updated_at`

type SampleTable struct {
	db    *sql.DB
	clock clock.Clock
}

func scanSample(row rowScanner) (*models.Sample, error) {
	var s models.Sample
	var collectedAt, createdAt, updatedAt scanTime
	err := row.Scan(
		&s.ID, &s.SampleCode, &s.Name, &s.SampleType, &s.Owner, &s.Location,
		&collectedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.CollectedAt = collectedAt.ptr()
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}

func (t *SampleTable) Create(ctx context.Context, s *models.Sample) error {
	now := t.clock.Now().UTC()
	s.ID = idgen.NewID()
	s.CreatedAt = now
	s.UpdatedAt = now

	_, err := t.db.ExecContext(ctx, `
		INSERT INTO sample (`+sampleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, s.ID, s.SampleCode, s.Name, s.SampleType, s.Owner, s.Location,
		nullableTime(s.CollectedAt), s.CreatedAt, s.UpdatedAt)
	if isUniqueViolation(err) {
		return errors.AlreadyExistsf("sample code %q", s.SampleCode)
	}
	if err != nil {
		return errors.Annotate(err, "inserting sample")
	}
	return nil
}

func (t *SampleTable) Get(ctx context.Context, identifier string) (*models.Sample, error) {
	row := t.db.QueryRowContext(ctx, `
		SELECT `+sampleColumns+`
		FROM sample
		WHERE id = $1 OR sample_code = $1
		LIMIT 1
	`, identifier)
	s, err := scanSample(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("sample %q", identifier)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "querying sample %q", identifier)
	}
	return s, nil
}

func (t *SampleTable) List(ctx context.Context, owner string) ([]models.Sample, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT `+sampleColumns+`
		FROM sample
		WHERE $1 = '' OR owner = $1
		ORDER BY created_at DESC
	`, owner)
	if err != nil {
		return nil, errors.Annotate(err, "listing samples")
	}
	defer rows.Close()

	samples := []models.Sample{}
	for rows.Next() {
		s, err := scanSample(rows)
		if err != nil {
			return nil, errors.Annotate(err, "scanning sample")
		}
		samples = append(samples, *s)
	}
	return samples, errors.Trace(rows.Err())
}

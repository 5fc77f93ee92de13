// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"database/sql"

	"github.com/juju/clock"
	"github.com/juju/errors"

	"github.com/danielhkuo/labdesk/models"
)

type ScoreTable struct {
	db    *sql.DB
	clock clock.Clock
}

// Get returns the user's score. Users without a row have a score of zero.
func (t *ScoreTable) Get(ctx context.Context, userID string) (models.UserScore, error) {
	score := models.UserScore{UserID: userID}
	var updatedAt scanTime
	err := t.db.QueryRowContext(ctx, `
		SELECT score, updated_at FROM user_score WHERE user_id = $1
	`, userID).Scan(&score.Score, &updatedAt)
	if err == sql.ErrNoRows {
		return score, nil
	}
	if err != nil {
		return models.UserScore{}, errors.Annotatef(err, "querying score for %q", userID)
	}
	score.UpdatedAt = updatedAt.Time
	return score, nil
}

// Add increments the user's score by points in one upsert.
func (t *ScoreTable) Add(ctx context.Context, userID string, points int64) (models.UserScore, error) {
	score := models.UserScore{UserID: userID}
	var updatedAt scanTime
	err := t.db.QueryRowContext(ctx, `
		INSERT INTO user_score (user_id, score, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET score = user_score.score + excluded.score, updated_at = excluded.updated_at
		RETURNING score, updated_at
	`, userID, points, t.clock.Now().UTC()).Scan(&score.Score, &updatedAt)
	if err != nil {
		return models.UserScore{}, errors.Annotatef(err, "adding score for %q", userID)
	}
	score.UpdatedAt = updatedAt.Time
	return score, nil
}

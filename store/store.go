// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/danielhkuo/labdesk/models"
	"github.com/danielhkuo/labdesk/reconcile"
)

// Backend type names accepted by cliparse.
const (
	TypeMongo    = "mongo"
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

// RequestStore holds general requests.
type RequestStore interface {
	reconcile.Collection
	Create(ctx context.Context, req *models.GenericRequest) error
	List(ctx context.Context, status string) ([]models.GenericRequest, error)
}

// EquipmentStore holds equipment reservation requests.
type EquipmentStore interface {
	reconcile.Collection
	Create(ctx context.Context, req *models.EquipmentRequest) error
	List(ctx context.Context, status string) ([]models.EquipmentRequest, error)
}

// SampleStore holds sample records. Get matches id or sample code.
type SampleStore interface {
	Create(ctx context.Context, s *models.Sample) error
	Get(ctx context.Context, identifier string) (*models.Sample, error)
	List(ctx context.Context, owner string) ([]models.Sample, error)
}

// ScoreStore holds per-user point totals.
type ScoreStore interface {
	Get(ctx context.Context, userID string) (models.UserScore, error)
	Add(ctx context.Context, userID string, points int64) (models.UserScore, error)
}

// Backend bundles every store served by one database connection.
type Backend struct {
	Requests  RequestStore
	Equipment EquipmentStore
	Samples   SampleStore
	Scores    ScoreStore

	closer func(context.Context) error
}

// NewBackend assembles a Backend. close may be nil.
func NewBackend(requests RequestStore, equipment EquipmentStore, samples SampleStore, scores ScoreStore, close func(context.Context) error) *Backend {
	return &Backend{
		Requests:  requests,
		Equipment: equipment,
		Samples:   samples,
		Scores:    scores,
		closer:    close,
	}
}

// Close releases the underlying connection.
func (b *Backend) Close(ctx context.Context) error {
	if b.closer == nil {
		return nil
	}
	return b.closer(ctx)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"

	"github.com/danielhkuo/labdesk/models"
)

// Collection is the capability the reconciler needs from a backing store.
// Both methods match a record by internal id OR request number and must
// return an error satisfying errors.Is(err, errors.NotFound) on a miss.
type Collection interface {
	Kind() models.RecordKind
	Find(ctx context.Context, identifier string) (models.Record, error)
	FindAndUpdateStatus(ctx context.Context, identifier string, update models.StatusUpdate) (models.Record, error)
}

// Ref identifies a record together with the collection that holds it.
type Ref struct {
	Kind models.RecordKind
	ID   string
}

// Result is the outcome of a lookup or a status update.
type Result struct {
	Ref     Ref
	Record  models.Record
	Message string
}

// completeDateLayouts are tried in order when parsing a completion timestamp.
var completeDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Service locates request records across collections in a fixed order:
// the first collection given to New is always consulted first.
type Service struct {
	collections []Collection
	clock       clock.Clock
}

func New(clk clock.Clock, primary, secondary Collection) *Service {
	if clk == nil {
		clk = clock.WallClock
	}
	return &Service{
		collections: []Collection{primary, secondary},
		clock:       clk,
	}
}

// UpdateStatus writes status (and, for completed requests, completeDate) to
// whichever collection holds identifier and returns the persisted record.
func (s *Service) UpdateStatus(ctx context.Context, identifier, status, completeDate string) (Result, error) {
	update, err := s.buildUpdate(status, completeDate)
	if err != nil {
		return Result{}, err
	}
	if identifier == "" {
		return Result{}, errors.NewNotValid(nil, "request identifier is required")
	}

	for _, c := range s.collections {
		rec, err := c.FindAndUpdateStatus(ctx, identifier, update)
		if errors.Is(err, errors.NotFound) {
			continue
		}
		if err != nil {
			return Result{}, errors.Annotatef(err, "updating %s status", c.Kind())
		}
		return Result{
			Ref:     Ref{Kind: c.Kind(), ID: rec.RecordID()},
			Record:  rec,
			Message: fmt.Sprintf("Request status updated to %s", update.Status),
		}, nil
	}
	return Result{}, errors.NewNotFound(nil, "Request not found")
}

// Resolve finds identifier without modifying anything.
func (s *Service) Resolve(ctx context.Context, identifier string) (Result, error) {
	if identifier == "" {
		return Result{}, errors.NewNotValid(nil, "request identifier is required")
	}
	for _, c := range s.collections {
		rec, err := c.Find(ctx, identifier)
		if errors.Is(err, errors.NotFound) {
			continue
		}
		if err != nil {
			return Result{}, errors.Annotatef(err, "finding %s", c.Kind())
		}
		return Result{Ref: Ref{Kind: c.Kind(), ID: rec.RecordID()}, Record: rec}, nil
	}
	return Result{}, errors.NewNotFound(nil, "Request not found")
}

func (s *Service) buildUpdate(status, completeDate string) (models.StatusUpdate, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return models.StatusUpdate{}, errors.NewNotValid(nil, "requestStatus is required")
	}
	update := models.StatusUpdate{
		Status:    status,
		UpdatedAt: s.clock.Now().UTC(),
	}
	if status != models.StatusCompleted || completeDate == "" {
		return update, nil
	}
	t, err := ParseCompleteDate(completeDate)
	if err != nil {
		return models.StatusUpdate{}, err
	}
	update.CompleteDate = &t
	return update, nil
}

// ParseCompleteDate parses an ISO-8601 timestamp or date into UTC.
func ParseCompleteDate(value string) (time.Time, error) {
	for _, layout := range completeDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.NewNotValid(nil, fmt.Sprintf("completeDate %q is not a valid ISO-8601 date", value))
}

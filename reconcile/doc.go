// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package reconcile locates request records that may live in either of two
collections and applies status transitions to them.

# Lookup Order

A Service is built from two collections:

	svc := reconcile.New(clock.WallClock, backend.Requests, backend.Equipment)

General requests are always tried first. An identifier matches a record when
it equals the record's internal id or its request number. If both
collections hold a match, the general request wins.

# Status Updates

	res, err := svc.UpdateStatus(ctx, "ER-2024-007", "in-progress", "")

Each collection update is a single atomic find-and-update. There is no
transition guard: any status may overwrite any other. completeDate is only
written when the new status is "completed" and a date was supplied.

# Errors

Errors carry github.com/juju/errors kinds:

  - errors.NotValid: missing status, malformed completeDate
  - errors.NotFound: no collection matched
  - anything else: storage failure, annotated with the collection kind
*/
package reconcile

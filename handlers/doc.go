// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the labdesk API.

# Handler Types

Each handler is a struct holding the stores it needs:

  - RequestHandler: General requests and status updates across both request collections
  - EquipmentHandler: Equipment reservation requests
  - SampleHandler: Sample records
  - ScoreHandler: Per-user point totals
  - AttachmentHandler: Files attached to request records

Handlers are created via constructor functions:

	requestHandler := handlers.NewRequestHandler(backend.Requests, svc, clock.WallClock)

# Status Updates

	PATCH /requests/{identifier}/status → UpdateStatus

The identifier may be a record id or a request number. The general request
collection is searched first, then equipment requests. A body of

	{"requestStatus": "completed", "completeDate": "2024-03-15T16:45:00Z"}

sets the status and refreshes updatedAt; completeDate is only written when
the status is "completed". The response carries the record as stored:

	{"success": true, "data": {...}, "message": "Request status updated to completed"}

# Error Mapping

Stores and the reconcile service return juju/errors kinds, translated in one
place:

	NotValid      → 400
	NotFound      → 404
	AlreadyExists → 409
	anything else → 500, logged

# Numbers

Created records get a human-readable number (REQ-2024-xxxx, ER-2024-xxxx,
SMP-2024-xxxx) unless the client supplies one. A generated number that
collides is regenerated a few times before giving up.
*/
package handlers

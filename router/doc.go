// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the labdesk API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(backend, files, cfg, clock.WallClock)

# Endpoints

Health:

	GET /health

Requests ({identifier} is a record id or request number, general requests
are searched before equipment requests):

	POST  /requests                          - Create general request
	GET   /requests?status=                  - List general requests
	GET   /requests/{identifier}             - Resolve in either collection
	PATCH /requests/{identifier}/status      - Update status
	POST  /requests/{identifier}/attachments - Upload file (multipart "file")
	GET   /requests/{identifier}/attachments - List files

Equipment reservations:

	POST /equipment-requests          - Create reservation
	GET  /equipment-requests?status=  - List reservations

Samples:

	POST /samples               - Register sample
	GET  /samples?owner=        - List samples
	GET  /samples/{identifier}  - Get by id or sample code

Scores:

	GET  /users/{userId}/score - Current total
	POST /users/{userId}/score - Add points

# Handler Initialization

The router builds one reconcile.Service over the two request collections and
shares it between the request and attachment handlers.
*/
package router

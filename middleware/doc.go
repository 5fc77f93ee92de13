// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request IDs

RequestID tags every request with an id, keeping a client supplied
X-Request-Id and echoing it on the response:

	handler := middleware.CORS(middleware.RequestID(mux))

Handlers and loggers read it back with RequestIDFromContext.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /requests", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(status, duration_ms).

# CORS Middleware

Allows methods GET, POST, PUT, PATCH, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Request-Id.

# Response Envelope

Every response body uses the same envelope:

	middleware.SuccessResponse(w, http.StatusOK, record, "Request status updated to completed")
	middleware.ListResponse(w, records)
	middleware.ErrorResponse(w, http.StatusNotFound, "Request not found")

which render as

	{"success":true,"data":{...},"message":"Request status updated to completed"}
	{"success":true,"data":[...],"count":2}
	{"success":false,"error":"Request not found"}

Parse JSON request bodies:

	var req models.UpdateStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware

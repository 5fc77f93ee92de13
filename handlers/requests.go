// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/juju/clock"

	"github.com/danielhkuo/labdesk/idgen"
	"github.com/danielhkuo/labdesk/middleware"
	"github.com/danielhkuo/labdesk/models"
	"github.com/danielhkuo/labdesk/reconcile"
	"github.com/danielhkuo/labdesk/store"
)

type RequestHandler struct {
	requests store.RequestStore
	svc      *reconcile.Service
	clock    clock.Clock
}

func NewRequestHandler(requests store.RequestStore, svc *reconcile.Service, clk clock.Clock) *RequestHandler {
	return &RequestHandler{requests: requests, svc: svc, clock: clk}
}

// CreateRequest handles POST /requests
func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRequestRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if strings.TrimSpace(req.RequestedBy) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "requestedBy is required")
		return
	}

	rec := &models.GenericRequest{
		RequestNumber: strings.TrimSpace(req.RequestNumber),
		Title:         req.Title,
		Description:   req.Description,
		RequestedBy:   req.RequestedBy,
		RequestStatus: models.StatusPending,
	}
	err := createNumbered(idgen.PrefixRequest, h.clock.Now(), &rec.RequestNumber, func() error {
		return h.requests.Create(r.Context(), rec)
	})
	if err != nil {
		writeError(w, r, err, "Failed to create request")
		return
	}

	slog.Info("request created", "id", rec.ID, "request_number", rec.RequestNumber, "requested_by", rec.RequestedBy)
	middleware.SuccessResponse(w, http.StatusCreated, rec, "")
}

// ListRequests handles GET /requests?status=
func (h *RequestHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	list, err := h.requests.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err, "Failed to list requests")
		return
	}
	middleware.ListResponse(w, list)
}

// GetRequest handles GET /requests/{identifier}, looking in both
// request collections.
func (h *RequestHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Resolve(r.Context(), r.PathValue("identifier"))
	if err != nil {
		writeError(w, r, err, "Failed to fetch request")
		return
	}
	middleware.SuccessResponse(w, http.StatusOK, models.ResolvedRequest{
		Kind:   res.Ref.Kind,
		Record: res.Record,
	}, "")
}

// UpdateStatus handles PATCH /requests/{identifier}/status
func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identifier := r.PathValue("identifier")

	var req models.UpdateStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := h.svc.UpdateStatus(r.Context(), identifier, req.RequestStatus, req.CompleteDate)
	if err != nil {
		writeError(w, r, err, "Failed to update request status")
		return
	}

	slog.Info("request status updated",
		"identifier", identifier,
		"kind", res.Ref.Kind,
		"id", res.Ref.ID,
		"status", res.Record.Status(),
	)
	middleware.SuccessResponse(w, http.StatusOK, res.Record, res.Message)
}

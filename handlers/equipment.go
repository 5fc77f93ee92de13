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
	"github.com/danielhkuo/labdesk/store"
)

type EquipmentHandler struct {
	equipment store.EquipmentStore
	clock     clock.Clock
}

func NewEquipmentHandler(equipment store.EquipmentStore, clk clock.Clock) *EquipmentHandler {
	return &EquipmentHandler{equipment: equipment, clock: clk}
}

// CreateEquipmentRequest handles POST /equipment-requests
func (h *EquipmentHandler) CreateEquipmentRequest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEquipmentRequestRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.EquipmentName) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "equipmentName is required")
		return
	}
	if strings.TrimSpace(req.RequestedBy) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "requestedBy is required")
		return
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "startTime and endTime are required")
		return
	}
	if !req.EndTime.After(req.StartTime) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "endTime must be after startTime")
		return
	}

	rec := &models.EquipmentRequest{
		RequestNumber: strings.TrimSpace(req.RequestNumber),
		EquipmentName: req.EquipmentName,
		RequestedBy:   req.RequestedBy,
		Purpose:       req.Purpose,
		RequestStatus: models.StatusPending,
		StartTime:     req.StartTime.UTC(),
		EndTime:       req.EndTime.UTC(),
	}
	err := createNumbered(idgen.PrefixEquipment, h.clock.Now(), &rec.RequestNumber, func() error {
		return h.equipment.Create(r.Context(), rec)
	})
	if err != nil {
		writeError(w, r, err, "Failed to create equipment request")
		return
	}

	slog.Info("equipment request created",
		"id", rec.ID,
		"request_number", rec.RequestNumber,
		"equipment", rec.EquipmentName,
	)
	middleware.SuccessResponse(w, http.StatusCreated, rec, "")
}

// ListEquipmentRequests handles GET /equipment-requests?status=
func (h *EquipmentHandler) ListEquipmentRequests(w http.ResponseWriter, r *http.Request) {
	list, err := h.equipment.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err, "Failed to list equipment requests")
		return
	}
	middleware.ListResponse(w, list)
}

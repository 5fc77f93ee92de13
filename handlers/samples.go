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

type SampleHandler struct {
	samples store.SampleStore
	clock   clock.Clock
}

func NewSampleHandler(samples store.SampleStore, clk clock.Clock) *SampleHandler {
	return &SampleHandler{samples: samples, clock: clk}
}

// CreateSample handles POST /samples
func (h *SampleHandler) CreateSample(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSampleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if strings.TrimSpace(req.Owner) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "owner is required")
		return
	}

	s := &models.Sample{
		SampleCode: strings.TrimSpace(req.SampleCode),
		Name:       req.Name,
		SampleType: req.SampleType,
		Owner:      req.Owner,
		Location:   req.Location,
	}
	if req.CollectedAt != nil {
		t := req.CollectedAt.UTC()
		s.CollectedAt = &t
	}
	err := createNumbered(idgen.PrefixSample, h.clock.Now(), &s.SampleCode, func() error {
		return h.samples.Create(r.Context(), s)
	})
	if err != nil {
		writeError(w, r, err, "Failed to create sample")
		return
	}

	slog.Info("sample created", "id", s.ID, "sample_code", s.SampleCode, "owner", s.Owner)
	middleware.SuccessResponse(w, http.StatusCreated, s, "")
}

// GetSample handles GET /samples/{identifier}
func (h *SampleHandler) GetSample(w http.ResponseWriter, r *http.Request) {
	s, err := h.samples.Get(r.Context(), r.PathValue("identifier"))
	if err != nil {
		writeError(w, r, err, "Failed to fetch sample")
		return
	}
	middleware.SuccessResponse(w, http.StatusOK, s, "")
}

// ListSamples handles GET /samples?owner=
func (h *SampleHandler) ListSamples(w http.ResponseWriter, r *http.Request) {
	list, err := h.samples.List(r.Context(), r.URL.Query().Get("owner"))
	if err != nil {
		writeError(w, r, err, "Failed to list samples")
		return
	}
	middleware.ListResponse(w, list)
}

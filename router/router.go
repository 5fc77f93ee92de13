// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/juju/clock"

	"github.com/danielhkuo/labdesk/attachments"
	"github.com/danielhkuo/labdesk/cliparse"
	"github.com/danielhkuo/labdesk/handlers"
	"github.com/danielhkuo/labdesk/middleware"
	"github.com/danielhkuo/labdesk/reconcile"
	"github.com/danielhkuo/labdesk/store"
)

// Banner is served on the root path.
const Banner = "labdesk API v1"

func NewRouter(backend *store.Backend, files attachments.Store, cfg cliparse.Config, clk clock.Clock) *http.ServeMux {
	mux := http.NewServeMux()

	// General requests are always consulted before equipment requests
	svc := reconcile.New(clk, backend.Requests, backend.Equipment)

	// Initialize handlers
	requestHandler := handlers.NewRequestHandler(backend.Requests, svc, clk)
	equipmentHandler := handlers.NewEquipmentHandler(backend.Equipment, clk)
	sampleHandler := handlers.NewSampleHandler(backend.Samples, clk)
	scoreHandler := handlers.NewScoreHandler(backend.Scores)
	attachmentHandler := handlers.NewAttachmentHandler(svc, files, cfg.MaxUploadBytes)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Requests (both collections resolve through the reconcile service)
	mux.HandleFunc("POST /requests", middleware.WithLogging(requestHandler.CreateRequest))
	mux.HandleFunc("GET /requests", middleware.WithLogging(requestHandler.ListRequests))
	mux.HandleFunc("GET /requests/{identifier}", middleware.WithLogging(requestHandler.GetRequest))
	mux.HandleFunc("PATCH /requests/{identifier}/status", middleware.WithLogging(requestHandler.UpdateStatus))

	// Attachments
	mux.HandleFunc("POST /requests/{identifier}/attachments", middleware.WithLogging(attachmentHandler.UploadAttachment))
	mux.HandleFunc("GET /requests/{identifier}/attachments", middleware.WithLogging(attachmentHandler.ListAttachments))

	// Equipment reservations
	mux.HandleFunc("POST /equipment-requests", middleware.WithLogging(equipmentHandler.CreateEquipmentRequest))
	mux.HandleFunc("GET /equipment-requests", middleware.WithLogging(equipmentHandler.ListEquipmentRequests))

	// Samples
	mux.HandleFunc("POST /samples", middleware.WithLogging(sampleHandler.CreateSample))
	mux.HandleFunc("GET /samples", middleware.WithLogging(sampleHandler.ListSamples))
	mux.HandleFunc("GET /samples/{identifier}", middleware.WithLogging(sampleHandler.GetSample))

	// Scores
	mux.HandleFunc("GET /users/{userId}/score", middleware.WithLogging(scoreHandler.GetScore))
	mux.HandleFunc("POST /users/{userId}/score", middleware.WithLogging(scoreHandler.AddScore))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(Banner))
	})

	return mux
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/labdesk/middleware"
	"github.com/danielhkuo/labdesk/models"
	"github.com/danielhkuo/labdesk/store"
)

type ScoreHandler struct {
	scores store.ScoreStore
}

func NewScoreHandler(scores store.ScoreStore) *ScoreHandler {
	return &ScoreHandler{scores: scores}
}

// GetScore handles GET /users/{userId}/score. Unknown users score zero.
func (h *ScoreHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.PathValue("userId"))
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userId is required")
		return
	}

	score, err := h.scores.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "Failed to fetch score")
		return
	}
	middleware.SuccessResponse(w, http.StatusOK, score, "")
}

// AddScore handles POST /users/{userId}/score
func (h *ScoreHandler) AddScore(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.PathValue("userId"))
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userId is required")
		return
	}

	var req models.AddScoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Points == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "points must be a non-zero integer")
		return
	}

	score, err := h.scores.Add(r.Context(), userID, req.Points)
	if err != nil {
		writeError(w, r, err, "Failed to update score")
		return
	}

	slog.Info("score updated", "user_id", userID, "points", req.Points, "score", score.Score)
	middleware.SuccessResponse(w, http.StatusOK, score, "")
}

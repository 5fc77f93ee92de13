// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielhkuo/labdesk/models"
	"github.com/danielhkuo/labdesk/testutil"
)

func TestScoreHandler(t *testing.T) {
	env := setupTestEnv(t)
	h := NewScoreHandler(env.backend.Scores)

	get := func(userID string) models.UserScore {
		t.Helper()
		req := httptest.NewRequest("GET", "/users/"+url.PathEscape(userID)+"/score", nil)
		req.SetPathValue("userId", userID)
		w := httptest.NewRecorder()
		h.GetScore(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		var score models.UserScore
		testutil.AssertEnvelope(t, w, &score)
		return score
	}
	add := func(userID, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/users/"+url.PathEscape(userID)+"/score", strings.NewReader(body))
		req.SetPathValue("userId", userID)
		w := httptest.NewRecorder()
		h.AddScore(w, req)
		return w
	}

	if s := get("u-1"); s.Score != 0 || s.UserID != "u-1" {
		t.Errorf("Unknown user should score zero, got %+v", s)
	}

	testutil.AssertStatus(t, add("u-1", `{"points":5}`), http.StatusOK)
	w := add("u-1", `{"points":-2}`)
	testutil.AssertStatus(t, w, http.StatusOK)
	var score models.UserScore
	testutil.AssertEnvelope(t, w, &score)
	if score.Score != 3 {
		t.Errorf("Expected score 3, got %d", score.Score)
	}
	if s := get("u-1"); s.Score != 3 {
		t.Errorf("Expected stored score 3, got %d", s.Score)
	}

	testCases := []struct {
		name   string
		userID string
		body   string
	}{
		{"zero points", "u-1", `{"points":0}`},
		{"missing points", "u-1", `{}`},
		{"fractional points", "u-1", `{"points":1.5}`},
		{"invalid JSON", "u-1", `points`},
		{"blank user", " ", `{"points":1}`},
		{"tab user", "\t", `{"points":1}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testutil.AssertStatus(t, add(tc.userID, tc.body), http.StatusBadRequest)
		})
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/labdesk/models"
	"github.com/danielhkuo/labdesk/testutil"
)

// TestConcurrentStatusUpdates sends competing updates for one record.
// Every call succeeds and the stored status is one of the values sent.
func TestConcurrentStatusUpdates(t *testing.T) {
	env := setupTestEnv(t)
	h := env.requestHandler()
	testutil.CreateTestEquipmentRequest(t, env.backend, "ER-2024-007", models.StatusPending)

	statuses := []string{models.StatusPending, models.StatusInProgress, models.StatusCompleted, models.StatusCancelled}

	var successCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := patchStatus(h, "ER-2024-007", models.UpdateStatusRequest{RequestStatus: statuses[i%len(statuses)]})
			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if successCount.Load() != 20 {
		t.Errorf("Expected 20 successful updates, got %d", successCount.Load())
	}

	rec, err := env.backend.Equipment.Find(context.Background(), "ER-2024-007")
	if err != nil {
		t.Fatal(err)
	}
	final := rec.(*models.EquipmentRequest).RequestStatus
	found := false
	for _, s := range statuses {
		if s == final {
			found = true
		}
	}
	if !found {
		t.Errorf("Unexpected final status %q", final)
	}
}

// TestConcurrentScoreUpdates checks that increments are not lost.
func TestConcurrentScoreUpdates(t *testing.T) {
	env := setupTestEnv(t)
	h := NewScoreHandler(env.backend.Scores)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := testutil.MakeRequest("POST", "/users/u-9/score", models.AddScoreRequest{Points: 2}, nil)
			req.SetPathValue("userId", "u-9")
			h.AddScore(httptest.NewRecorder(), req)
		}()
	}
	wg.Wait()

	score, err := env.backend.Scores.Get(context.Background(), "u-9")
	if err != nil {
		t.Fatal(err)
	}
	if score.Score != 50 {
		t.Errorf("Expected score 50, got %s", strconv.FormatInt(score.Score, 10))
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/labdesk/models"
	"github.com/danielhkuo/labdesk/testutil"
)

func TestCreateEquipmentRequest(t *testing.T) {
	env := setupTestEnv(t)
	h := NewEquipmentHandler(env.backend.Equipment, env.clock)

	start := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

	t.Run("valid booking", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/equipment-requests", models.CreateEquipmentRequestRequest{
			EquipmentName: "Mass Spectrometer",
			RequestedBy:   "carol",
			Purpose:       "Peptide ID",
			StartTime:     start,
			EndTime:       start.Add(2 * time.Hour),
		}, nil)
		w := httptest.NewRecorder()
		h.CreateEquipmentRequest(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)

		var rec models.EquipmentRequest
		testutil.AssertEnvelope(t, w, &rec)
		if !strings.HasPrefix(rec.RequestNumber, "ER-2024-") {
			t.Errorf("Unexpected request number %q", rec.RequestNumber)
		}
		if rec.RequestStatus != models.StatusPending || !rec.StartTime.Equal(start) {
			t.Errorf("Unexpected record %+v", rec)
		}
	})

	testCases := []struct {
		name string
		body models.CreateEquipmentRequestRequest
	}{
		{"missing equipment", models.CreateEquipmentRequestRequest{RequestedBy: "carol", StartTime: start, EndTime: start.Add(time.Hour)}},
		{"missing requester", models.CreateEquipmentRequestRequest{EquipmentName: "FACS", StartTime: start, EndTime: start.Add(time.Hour)}},
		{"missing times", models.CreateEquipmentRequestRequest{EquipmentName: "FACS", RequestedBy: "carol"}},
		{"end before start", models.CreateEquipmentRequestRequest{EquipmentName: "FACS", RequestedBy: "carol", StartTime: start, EndTime: start.Add(-time.Hour)}},
		{"zero length", models.CreateEquipmentRequestRequest{EquipmentName: "FACS", RequestedBy: "carol", StartTime: start, EndTime: start}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.CreateEquipmentRequest(w, testutil.MakeRequest("POST", "/equipment-requests", tc.body, nil))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestListEquipmentRequests(t *testing.T) {
	env := setupTestEnv(t)
	h := NewEquipmentHandler(env.backend.Equipment, env.clock)
	testutil.CreateTestEquipmentRequest(t, env.backend, "ER-2024-001", models.StatusPending)
	testutil.CreateTestEquipmentRequest(t, env.backend, "ER-2024-002", models.StatusInProgress)

	w := httptest.NewRecorder()
	h.ListEquipmentRequests(w, httptest.NewRequest("GET", "/equipment-requests?status=in-progress", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var list []models.EquipmentRequest
	testutil.AssertEnvelope(t, w, &list)
	if len(list) != 1 || list[0].RequestNumber != "ER-2024-002" {
		t.Errorf("Unexpected list %+v", list)
	}
}

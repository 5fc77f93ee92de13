// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/juju/errors"

	"github.com/danielhkuo/labdesk/models"
	"github.com/danielhkuo/labdesk/reconcile"
	"github.com/danielhkuo/labdesk/store"
)

var t0 = time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)

func setupBackend(t *testing.T) (*store.Backend, *testclock.Clock) {
	t.Helper()

	conn, err := Open(context.Background(), store.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	clk := testclock.NewClock(t0)
	backend := New(conn, clk)
	t.Cleanup(func() { backend.Close(context.Background()) })
	return backend, clk
}

func TestRequestTable_CreateAndFind(t *testing.T) {
	b, _ := setupBackend(t)
	ctx := context.Background()

	req := &models.GenericRequest{RequestNumber: "REQ-2024-001", Title: "Centrifuge calibration", RequestedBy: "alice"}
	if err := b.Requests.Create(ctx, req); err != nil {
		t.Fatal(err)
	}
	if req.ID == "" || req.RequestStatus != models.StatusPending || !req.CreatedAt.Equal(t0) {
		t.Errorf("Create did not fill defaults: %+v", req)
	}

	for _, id := range []string{req.ID, "REQ-2024-001"} {
		rec, err := b.Requests.Find(ctx, id)
		if err != nil {
			t.Fatalf("Find(%q): %v", id, err)
		}
		got := rec.(*models.GenericRequest)
		if got.Title != "Centrifuge calibration" || !got.CreatedAt.Equal(t0) || got.CompleteDate != nil {
			t.Errorf("Find(%q) returned %+v", id, got)
		}
	}

	if _, err := b.Requests.Find(ctx, "REQ-2024-999"); !errors.Is(err, errors.NotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}

	dup := &models.GenericRequest{RequestNumber: "REQ-2024-001", Title: "dup", RequestedBy: "bob"}
	if err := b.Requests.Create(ctx, dup); !errors.Is(err, errors.AlreadyExists) {
		t.Errorf("expected AlreadyExists for duplicate number, got %v", err)
	}
}

func TestRequestTable_FindAndUpdateStatus(t *testing.T) {
	b, clk := setupBackend(t)
	ctx := context.Background()

	req := &models.GenericRequest{RequestNumber: "REQ-2024-002", Title: "PCR run", RequestedBy: "alice"}
	if err := b.Requests.Create(ctx, req); err != nil {
		t.Fatal(err)
	}

	clk.Advance(time.Hour)
	done := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	rec, err := b.Requests.FindAndUpdateStatus(ctx, "REQ-2024-002", models.StatusUpdate{
		Status:       models.StatusCompleted,
		UpdatedAt:    clk.Now(),
		CompleteDate: &done,
	})
	if err != nil {
		t.Fatal(err)
	}
	got := rec.(*models.GenericRequest)
	if got.RequestStatus != models.StatusCompleted {
		t.Errorf("expected completed, got %q", got.RequestStatus)
	}
	if !got.UpdatedAt.Equal(t0.Add(time.Hour)) {
		t.Errorf("expected updatedAt %v, got %v", t0.Add(time.Hour), got.UpdatedAt)
	}
	if got.CompleteDate == nil || !got.CompleteDate.Equal(done) {
		t.Errorf("expected completeDate %v, got %v", done, got.CompleteDate)
	}

	// A later update without a date keeps the stored completion timestamp.
	rec, err = b.Requests.FindAndUpdateStatus(ctx, req.ID, models.StatusUpdate{
		Status:    models.StatusInProgress,
		UpdatedAt: clk.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if cd := rec.(*models.GenericRequest).CompleteDate; cd == nil || !cd.Equal(done) {
		t.Errorf("completeDate should be untouched, got %v", cd)
	}

	_, err = b.Requests.FindAndUpdateStatus(ctx, "ER-2024-007", models.StatusUpdate{Status: "x", UpdatedAt: clk.Now()})
	if !errors.Is(err, errors.NotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestEquipmentTable_ListByStatus(t *testing.T) {
	b, _ := setupBackend(t)
	ctx := context.Background()

	for i, number := range []string{"ER-2024-001", "ER-2024-002", "ER-2024-003"} {
		start := t0.Add(time.Duration(3-i) * time.Hour)
		err := b.Equipment.Create(ctx, &models.EquipmentRequest{
			RequestNumber: number,
			EquipmentName: "Confocal microscope",
			RequestedBy:   "carol",
			StartTime:     start,
			EndTime:       start.Add(time.Hour),
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	_, err := b.Equipment.FindAndUpdateStatus(ctx, "ER-2024-002", models.StatusUpdate{Status: models.StatusInProgress, UpdatedAt: t0})
	if err != nil {
		t.Fatal(err)
	}

	all, err := b.Equipment.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 reservations, got %d", len(all))
	}
	if all[0].RequestNumber != "ER-2024-003" {
		t.Errorf("expected earliest start first, got %q", all[0].RequestNumber)
	}

	pending, err := b.Equipment.List(ctx, models.StatusPending)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Errorf("expected 2 pending reservations, got %d", len(pending))
	}
}

// TestReconcileOverSQL runs the status reconciler against both tables.
func TestReconcileOverSQL(t *testing.T) {
	b, clk := setupBackend(t)
	ctx := context.Background()

	if err := b.Requests.Create(ctx, &models.GenericRequest{RequestNumber: "REQ-2024-010", Title: "t", RequestedBy: "a"}); err != nil {
		t.Fatal(err)
	}
	equipment := &models.EquipmentRequest{
		RequestNumber: "ER-2024-007", EquipmentName: "HPLC", RequestedBy: "b",
		StartTime: t0, EndTime: t0.Add(2 * time.Hour),
	}
	if err := b.Equipment.Create(ctx, equipment); err != nil {
		t.Fatal(err)
	}

	svc := reconcile.New(clk, b.Requests, b.Equipment)
	res, err := svc.UpdateStatus(ctx, "ER-2024-007", models.StatusInProgress, "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Ref.Kind != models.KindEquipment || res.Ref.ID != equipment.ID {
		t.Errorf("unexpected ref %+v", res.Ref)
	}

	generic, err := b.Requests.Find(ctx, "REQ-2024-010")
	if err != nil {
		t.Fatal(err)
	}
	if generic.(*models.GenericRequest).RequestStatus != models.StatusPending {
		t.Errorf("general request must be untouched")
	}
}

func TestSampleTable(t *testing.T) {
	b, _ := setupBackend(t)
	ctx := context.Background()

	collected := t0.Add(-24 * time.Hour)
	s := &models.Sample{SampleCode: "SMP-2024-1", Name: "Serum A", Owner: "dave", CollectedAt: &collected}
	if err := b.Samples.Create(ctx, s); err != nil {
		t.Fatal(err)
	}
	if err := b.Samples.Create(ctx, &models.Sample{SampleCode: "SMP-2024-2", Name: "Serum B", Owner: "erin"}); err != nil {
		t.Fatal(err)
	}

	got, err := b.Samples.Get(ctx, "SMP-2024-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != s.ID || got.CollectedAt == nil || !got.CollectedAt.Equal(collected) {
		t.Errorf("unexpected sample %+v", got)
	}

	owned, err := b.Samples.List(ctx, "dave")
	if err != nil {
		t.Fatal(err)
	}
	if len(owned) != 1 || owned[0].Name != "Serum A" {
		t.Errorf("unexpected owner filter result %+v", owned)
	}

	if _, err := b.Samples.Get(ctx, "nope"); !errors.Is(err, errors.NotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
	if err := b.Samples.Create(ctx, &models.Sample{SampleCode: "SMP-2024-1", Name: "dup", Owner: "x"}); !errors.Is(err, errors.AlreadyExists) {
		t.Errorf("expected AlreadyExists, got %v", err)
	}
}

func TestScoreTable(t *testing.T) {
	b, clk := setupBackend(t)
	ctx := context.Background()

	score, err := b.Scores.Get(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if score.Score != 0 {
		t.Errorf("unknown user should score 0, got %d", score.Score)
	}

	if _, err := b.Scores.Add(ctx, "alice", 10); err != nil {
		t.Fatal(err)
	}
	clk.Advance(time.Minute)
	score, err = b.Scores.Add(ctx, "alice", -3)
	if err != nil {
		t.Fatal(err)
	}
	if score.Score != 7 {
		t.Errorf("expected 7, got %d", score.Score)
	}
	if !score.UpdatedAt.Equal(t0.Add(time.Minute)) {
		t.Errorf("expected updatedAt %v, got %v", t0.Add(time.Minute), score.UpdatedAt)
	}

	score, err = b.Scores.Get(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if score.Score != 7 {
		t.Errorf("expected stored score 7, got %d", score.Score)
	}
}

func TestScanTime(t *testing.T) {
	want := time.Date(2024, 3, 14, 9, 30, 15, 500000000, time.UTC)
	inputs := []any{
		want,
		"2024-03-14 09:30:15.5+00:00",
		"2024-03-14 11:30:15.5 +0200 EET",
		[]byte("2024-03-14T09:30:15.5Z"),
	}

	for _, in := range inputs {
		var st scanTime
		if err := st.Scan(in); err != nil {
			t.Errorf("Scan(%v): %v", in, err)
			continue
		}
		if !st.Valid || !st.Time.Equal(want) {
			t.Errorf("Scan(%v) = %v, want %v", in, st.Time, want)
		}
	}

	var st scanTime
	if err := st.Scan(nil); err != nil || st.Valid || st.ptr() != nil {
		t.Errorf("Scan(nil) should produce an invalid time")
	}
	if err := st.Scan(42); err == nil {
		t.Errorf("Scan(int) should fail")
	}
}

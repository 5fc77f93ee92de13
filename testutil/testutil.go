// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/juju/clock/testclock"

	"github.com/danielhkuo/labdesk/cliparse"
	"github.com/danielhkuo/labdesk/models"
	"github.com/danielhkuo/labdesk/store"
	"github.com/danielhkuo/labdesk/store/sqlstore"
)

// TestNow is the instant the test clock starts at.
var TestNow = time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)

// SetupTestBackend opens a fresh in-memory SQLite backend with the full schema.
// The returned clock drives every timestamp the stores write.
func SetupTestBackend(t *testing.T) (*store.Backend, *testclock.Clock) {
	t.Helper()

	conn, err := sqlstore.Open(context.Background(), store.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	clk := testclock.NewClock(TestNow)
	backend := sqlstore.New(conn, clk)
	t.Cleanup(func() { _ = backend.Close(context.Background()) })
	return backend, clk
}

// GetTestConfig returns a standard test configuration with a private
// attachment directory.
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()
	return cliparse.Config{
		Port:           cliparse.DefaultPort,
		DatabaseURL:    ":memory:",
		DatabaseType:   store.TypeSQLite,
		DatabaseName:   cliparse.DefaultDatabaseName,
		AttachmentDir:  t.TempDir(),
		MaxUploadBytes: 1 << 20,
	}
}

// CreateTestRequest stores a general request with the given number and status.
func CreateTestRequest(t *testing.T, b *store.Backend, number, status string) *models.GenericRequest {
	t.Helper()

	req := &models.GenericRequest{
		RequestNumber: number,
		Title:         "Test Request",
		Description:   "A test request",
		RequestedBy:   "TestUser",
		RequestStatus: status,
	}
	if err := b.Requests.Create(context.Background(), req); err != nil {
		t.Fatalf("Failed to create test request: %v", err)
	}
	return req
}

// CreateTestEquipmentRequest stores an equipment request with the given
// number and status, booked for an hour from TestNow.
func CreateTestEquipmentRequest(t *testing.T, b *store.Backend, number, status string) *models.EquipmentRequest {
	t.Helper()

	req := &models.EquipmentRequest{
		RequestNumber: number,
		EquipmentName: "Confocal Microscope",
		RequestedBy:   "TestUser",
		Purpose:       "Imaging",
		RequestStatus: status,
		StartTime:     TestNow,
		EndTime:       TestNow.Add(time.Hour),
	}
	if err := b.Equipment.Create(context.Background(), req); err != nil {
		t.Fatalf("Failed to create test equipment request: %v", err)
	}
	return req
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeUploadRequest creates a multipart request carrying one file in the
// "file" field.
func MakeUploadRequest(t *testing.T, path, fileName string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// Envelope mirrors models.Envelope with the data left undecoded.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// AssertEnvelope decodes the response envelope and, when data is non-nil,
// its data field into data.
func AssertEnvelope(t *testing.T, w *httptest.ResponseRecorder, data interface{}) Envelope {
	t.Helper()

	var env Envelope
	AssertJSON(t, w, &env)
	if data != nil {
		if len(env.Data) == 0 {
			t.Fatalf("Expected data in envelope, got none")
		}
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("Failed to decode envelope data: %v", err)
		}
	}
	return env
}

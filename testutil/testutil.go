// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/trustbox/cliparse"
	"github.com/danielhkuo/trustbox/db"
	"github.com/danielhkuo/trustbox/ledger"
	"github.com/danielhkuo/trustbox/models"
)

// TestAdminSalt is the admin key salt in GetTestConfig
const TestAdminSalt = "test-admin-salt"

// NewTestLedger returns a ledger over a fresh in-memory store, seeded with
// the default dataset
func NewTestLedger(t *testing.T) (*ledger.Ledger, *db.MemoryStore) {
	t.Helper()
	return NewTestLedgerFrom(t, nil)
}

// NewTestLedgerFrom is NewTestLedger starting from snap instead of the
// seed data. A nil snap seeds.
func NewTestLedgerFrom(t *testing.T, snap *models.Snapshot) (*ledger.Ledger, *db.MemoryStore) {
	t.Helper()

	store := db.NewMemoryStore()
	if snap != nil {
		if err := store.Save(context.Background(), snap); err != nil {
			t.Fatalf("Failed to store test snapshot: %v", err)
		}
	}

	l, err := ledger.New(context.Background(), store, ledger.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("Failed to create test ledger: %v", err)
	}
	return l, store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: db.TypeMemory,
		AdminKeySalt: TestAdminSalt,
	}
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

// AsAccount returns the header map that identifies a caller
func AsAccount(address string) map[string]string {
	return map[string]string{"X-Account-Address": address}
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

// AssertErrorKind checks the kind tag of a JSON error response
func AssertErrorKind(t *testing.T, w *httptest.ResponseRecorder, kind string) {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v (body %s)", err, w.Body.String())
	}
	if resp.Kind != kind {
		t.Errorf("Expected error kind %q, got %q (message %q)", kind, resp.Kind, resp.Message)
	}
}

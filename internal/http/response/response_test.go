package response

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/go-json-experiment/json"

	"github.com/podfeedapp/podfeed-server/internal/store"
)

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()

	Success(rec, map[string]string{"status": "ok"}, nil)

	if rec.Code != 200 {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type: got %q", ct)
	}

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if !env.Success {
		t.Error("expected success=true")
	}
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()

	NotFound(rec, "show not found", nil)

	if rec.Code != 404 {
		t.Errorf("status: got %d, want 404", rec.Code)
	}

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.Success {
		t.Error("expected success=false")
	}
	if env.Error != "show not found" {
		t.Errorf("error message: got %q", env.Error)
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"store not found", store.ErrNotFound, 404},
		{"store conflict", store.ErrAlreadyExists, 409},
		{"store invalid input", store.ErrInvalidInput, 400},
		{"redirect conflict", store.ErrRedirectConflict, 500},
		{"wrapped store error", fmt.Errorf("lookup: %w", store.ErrNotFound), 404},
		{"unknown error", fmt.Errorf("boom"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err, nil)
			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

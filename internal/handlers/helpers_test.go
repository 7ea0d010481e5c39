package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusCreated, map[string]string{"key": "value"})

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", ct)
	}

	var envelope map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode envelope: %v", err)
	}
	if envelope["success"] != true {
		t.Error("Expected success true")
	}
	if envelope["timestamp"] == nil {
		t.Error("Expected timestamp to be set")
	}
}

func TestRespondJSONError_CapsLongMessages(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respondJSONError(rec, http.StatusInternalServerError, "Internal Server Error", strings.Repeat("x", 500))

	var envelope map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode envelope: %v", err)
	}
	message, _ := envelope["message"].(string)
	if len(message) != 203 {
		t.Errorf("Expected message capped at 203 chars, got %d", len(message))
	}
	if !strings.HasSuffix(message, "...") {
		t.Errorf("Expected truncation marker, got %q", message)
	}
	if envelope["success"] != false {
		t.Error("Expected success false")
	}
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"x","bogus":1}`))
	var dst struct {
		Title string `json:"title"`
	}
	if err := decodeJSON(req, &dst); err == nil {
		t.Error("Expected error for unknown field")
	}
}

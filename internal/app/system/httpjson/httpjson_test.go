package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/chroniclehq/chronicle/internal/app/system/apperr"
)

type samplePayload struct {
	Title   string `json:"title" validate:"required"`
	Privacy string `json:"privacy" validate:"required,oneof=public private unlisted"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
}

func TestDecodeValid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/post",
		strings.NewReader(`{"title":"Week 1","privacy":"public"}`))

	var p samplePayload
	if err := Decode(r, &p); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.Title != "Week 1" {
		t.Errorf("Title = %q", p.Title)
	}
}

func TestDecodeFieldMessages(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing title", `{"privacy":"public"}`, "title"},
		{"bad privacy", `{"title":"x","privacy":"everyone"}`, "privacy"},
		{"bad email", `{"title":"x","privacy":"public","email":"nope"}`, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/post", strings.NewReader(tt.body))
			var p samplePayload
			err := Decode(r, &p)
			if err == nil {
				t.Fatal("Decode() expected error")
			}
			ae := apperr.From(err)
			if ae.Kind != apperr.KindValidation {
				t.Fatalf("Kind = %v, want KindValidation", ae.Kind)
			}
			if _, ok := ae.Fields[tt.field]; !ok {
				t.Errorf("Fields missing %q: %v", tt.field, ae.Fields)
			}
		})
	}
}

func TestDecodeMalformedJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/post", strings.NewReader(`{"title":`))
	var p samplePayload
	err := Decode(r, &p)
	if apperr.Status(err) != http.StatusNotAcceptable {
		t.Errorf("Status = %d, want 406", apperr.Status(err))
	}
}

func TestErrorHidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, zap.NewNop(), errors.New("dial tcp 10.0.0.1: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if msg := body["message"]; msg != "internal error" {
		t.Errorf("message = %v, leaked cause?", msg)
	}
}

func TestErrorValidationBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, zap.NewNop(), apperr.ValidationField("url", "missing url for resource"))

	if rec.Code != http.StatusNotAcceptable {
		t.Fatalf("status = %d, want 406", rec.Code)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Fields["url"] != "missing url for resource" {
		t.Errorf("fields = %v", body.Fields)
	}
}

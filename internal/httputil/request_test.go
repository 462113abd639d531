package httputil

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("decodes a valid body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Past Papers"}`))
		w := httptest.NewRecorder()

		var p payload
		if err := ParseJSON(w, r, &p); err != nil {
			t.Fatalf("ParseJSON() error = %v", err)
		}
		if p.Name != "Past Papers" {
			t.Errorf("Name = %q, want %q", p.Name, "Past Papers")
		}
	})

	t.Run("rejects a body over the cap", func(t *testing.T) {
		body := `{"name":"` + strings.Repeat("a", maxBodyBytes) + `"}`
		r := httptest.NewRequest("POST", "/", strings.NewReader(body))
		w := httptest.NewRecorder()

		var p payload
		if err := ParseJSON(w, r, &p); err == nil {
			t.Fatal("ParseJSON() accepted an oversized body")
		}
	})
}

package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	pkgerrors "github.com/angelmondragon/cardfinderz/pkg/errors"
)

type quantityBody struct {
	Quantity *int   `json:"quantity" validate:"required"`
	Currency string `json:"currency" validate:"omitempty,oneof=PEN USD"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"quantity":3}`))
	var body quantityBody
	if err := DecodeJSONBody(req, &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.Quantity == nil || *body.Quantity != 3 {
		t.Fatalf("unexpected quantity %v", body.Quantity)
	}
}

func TestDecodeJSONBodyValidation(t *testing.T) {
	cases := map[string]string{
		"missing field": `{}`,
		"unknown field": `{"quantity":1,"extra":true}`,
		"malformed":     `{"quantity":`,
		"bad enum":      `{"quantity":1,"currency":"EUR"}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(payload))
			var body quantityBody
			err := DecodeJSONBody(req, &body)
			if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestDecodeJSONBodyDetailsUseJSONNames(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{}`))
	var body quantityBody
	typed := pkgerrors.As(DecodeJSONBody(req, &body))
	if typed == nil {
		t.Fatalf("expected typed error")
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["quantity"] != "is required" {
		t.Fatalf("unexpected details %v", typed.Details())
	}
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/featured?limit=5", nil)
	got, err := ParseQueryInt(req, "limit", 20, 1, 20)
	if err != nil || got != 5 {
		t.Fatalf("expected 5, got %d (%v)", got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/featured", nil)
	if got, _ := ParseQueryInt(req, "limit", 20, 1, 20); got != 20 {
		t.Fatalf("expected default, got %d", got)
	}

	for _, raw := range []string{"abc", "0", "21"} {
		req = httptest.NewRequest(http.MethodGet, "/featured?limit="+raw, nil)
		if _, err := ParseQueryInt(req, "limit", 20, 1, 20); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("expected validation error for %q, got %v", raw, err)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  pikachu  ", 4); got != "pika" {
		t.Fatalf("unexpected %q", got)
	}
	if got := SanitizeString(" 25/102 ", 0); got != "25/102" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestSanitizeStringCutsOnRuneBoundary(t *testing.T) {
	input := strings.Repeat("a", 119) + "é"
	got := SanitizeString(input, 120)
	if got != input {
		t.Fatalf("expected 120-rune input to be kept, got %q", got)
	}

	got = SanitizeString("Flabébé", 5)
	if !utf8.ValidString(got) {
		t.Fatalf("sanitized value is invalid UTF-8: %q", got)
	}
	if got != "Flabé" {
		t.Fatalf("expected five runes, got %q", got)
	}

	got = SanitizeString(strings.Repeat("é", 130), 120)
	if !utf8.ValidString(got) || utf8.RuneCountInString(got) != 120 {
		t.Fatalf("expected 120 valid runes, got %d (%q)", utf8.RuneCountInString(got), got)
	}
}

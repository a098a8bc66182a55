package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestBodyParser_JSON(t *testing.T) {
	body := `{"name": "Coffee", "amount": 42.50, "category": "Food", "date": "2024-03-05", "paid": true}`
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	parser := NewRequestBodyParser(req)
	if err := parser.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !parser.IsJSON() {
		t.Error("Expected IsJSON() to be true")
	}

	// Numbers keep their literal form
	if amount := parser.Get("amount"); amount != "42.50" {
		t.Errorf("Get('amount') = %q, want '42.50'", amount)
	}
	if paid := parser.Get("paid"); paid != "true" {
		t.Errorf("Get('paid') = %q, want 'true'", paid)
	}

	d := parser.Draft()
	if d.Name != "Coffee" || d.Category != "Food" || d.Date != "2024-03-05" {
		t.Errorf("Draft() = %+v", d)
	}
}

func TestRequestBodyParser_FormData(t *testing.T) {
	body := "name=Bus+ticket&amount=30&category=Transport&date=2024-03-06"
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	parser := NewRequestBodyParser(req)
	if err := parser.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if parser.IsJSON() {
		t.Error("Expected IsJSON() to be false for form data")
	}

	d := parser.Draft()
	if d.Name != "Bus ticket" || d.Amount != "30" || d.Category != "Transport" || d.Date != "2024-03-06" {
		t.Errorf("Draft() = %+v", d)
	}
}

func TestRequestBodyParser_StripsControlCharacters(t *testing.T) {
	body := "name=%20Tea%07%20"
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))

	parser := NewRequestBodyParser(req)
	if err := parser.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := parser.Get("name"); got != "Tea" {
		t.Errorf("Get('name') = %q, want 'Tea'", got)
	}
}

func TestRequestBodyParser_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(""))

	parser := NewRequestBodyParser(req)
	if err := parser.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if val := parser.Get("nonexistent"); val != "" {
		t.Errorf("Get('nonexistent') = %q, want empty string", val)
	}
}

func TestRequestBodyParser_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(`{"name":`))

	parser := NewRequestBodyParser(req)
	if err := parser.Parse(); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
	if parser.IsJSON() {
		t.Error("IsJSON() should be false after a failed parse")
	}
}

func TestRequestBodyParser_TooLarge(t *testing.T) {
	body := "name=" + strings.Repeat("a", maxBodyBytes)
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))

	parser := NewRequestBodyParser(req)
	if err := parser.Parse(); !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("Parse() error = %v, want ErrBodyTooLarge", err)
	}
}

package services

import (
	"errors"
	"testing"
)

func TestNormalizeAuthEmail(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{"Alice@Example.COM", "alice@example.com"},
		{"  bob@example.com  ", "bob@example.com"},
		{"", ""},
		{"   ", ""},
		{"not-an-email", ""},
		{"missing@domain@twice", ""},
	}

	for _, testCase := range testCases {
		if got := NormalizeAuthEmail(testCase.raw); got != testCase.expected {
			t.Fatalf("NormalizeAuthEmail(%q) = %q, want %q", testCase.raw, got, testCase.expected)
		}
	}
}

func TestNormalizeCredentialsInput(t *testing.T) {
	email, password, err := NormalizeCredentialsInput(" Alice@Example.com ", " secret ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "alice@example.com" || password != "secret" {
		t.Fatalf("unexpected normalization: %q / %q", email, password)
	}

	if _, _, err := NormalizeCredentialsInput("", "secret"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid, got %v", err)
	}
	if _, _, err := NormalizeCredentialsInput("alice@example.com", "  "); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid, got %v", err)
	}
}

package api

import (
	"net/http"
	"testing"
)

func TestLoginAfterRegistration(t *testing.T) {
	app, _ := newTestApp(t, &stubBatchRunner{})

	registerTestUser(t, app, "ada@example.com", "Sup3rSecret", "Ada Lovelace")

	response := postJSON(t, app, "/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", response.StatusCode)
	}
	if code := readErrorCode(t, response); code != "InvalidCredentials" {
		t.Fatalf("wrong password: expected InvalidCredentials, got %q", code)
	}

	response = postJSON(t, app, "/auth/login", "", map[string]string{
		"email":    "Ada@Example.com ",
		"password": "Sup3rSecret",
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", response.StatusCode)
	}
	payload := decodeBody(t, response)
	if payload["token_type"] != "bearer" {
		t.Fatalf("expected bearer token type, got %v", payload["token_type"])
	}
	user, _ := payload["user"].(map[string]any)
	if user["email"] != "ada@example.com" {
		t.Fatalf("expected normalized email, got %v", user["email"])
	}
	if user["is_superuser"] != false {
		t.Fatalf("fresh registration must not be superuser: %v", user)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	app, _ := newTestApp(t, &stubBatchRunner{})

	response := postJSON(t, app, "/auth/login", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "Sup3rSecret",
	})
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", response.StatusCode)
	}
	if code := readErrorCode(t, response); code != "InvalidCredentials" {
		t.Fatalf("expected InvalidCredentials, got %q", code)
	}
}

func TestMeRequiresToken(t *testing.T) {
	app, _ := newTestApp(t, &stubBatchRunner{})

	response := getJSON(t, app, "/auth/me", "")
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", response.StatusCode)
	}
	if code := readErrorCode(t, response); code != "TokenMissing" {
		t.Fatalf("expected TokenMissing, got %q", code)
	}

	response = getJSON(t, app, "/auth/me", "not-a-real-token")
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", response.StatusCode)
	}
	if code := readErrorCode(t, response); code != "TokenInvalid" {
		t.Fatalf("expected TokenInvalid, got %q", code)
	}
}

func TestMeReturnsCurrentUser(t *testing.T) {
	app, _ := newTestApp(t, &stubBatchRunner{})

	registerTestUser(t, app, "ada@example.com", "Sup3rSecret", "Ada Lovelace")
	token := loginTestUser(t, app, "ada@example.com", "Sup3rSecret")

	response := getJSON(t, app, "/auth/me", token)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	payload := decodeBody(t, response)
	user, _ := payload["user"].(map[string]any)
	if user["email"] != "ada@example.com" || user["full_name"] != "Ada Lovelace" {
		t.Fatalf("unexpected user payload: %v", user)
	}
}

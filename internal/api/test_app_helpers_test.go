package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/foliogate/internal/batch"
	"github.com/terraincognita07/foliogate/internal/db"
	"gorm.io/gorm"
)

const (
	testSecretKey  = "test-secret-key"
	testInviteCode = "FRIENDS-2026"
)

type stubBatchRunner struct {
	err           error
	calls         int
	lastUserID    uint
	lastPortfolio uint
}

func (stub *stubBatchRunner) Run(ctx context.Context, userID uint, portfolioID uint) error {
	stub.calls++
	stub.lastUserID = userID
	stub.lastPortfolio = portfolioID
	return stub.err
}

func newTestApp(t *testing.T, runner batch.Runner) (*fiber.App, *gorm.DB) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	handler, err := NewHandler(database, Config{
		SecretKey:   testSecretKey,
		InviteCode:  testInviteCode,
		BatchRunner: runner,
	})
	if err != nil {
		t.Fatalf("create handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func postJSON(t *testing.T, app *fiber.App, path string, token string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request payload: %v", err)
	}
	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return response
}

func getJSON(t *testing.T, app *fiber.App, path string, token string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return response
}

func decodeBody(t *testing.T, response *http.Response) map[string]any {
	t.Helper()

	defer response.Body.Close()
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	payload := map[string]any{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response body %q: %v", raw, err)
	}
	return payload
}

func readErrorCode(t *testing.T, response *http.Response) string {
	t.Helper()

	payload := decodeBody(t, response)
	errorPayload, ok := payload["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error payload, got %v", payload)
	}
	code, _ := errorPayload["code"].(string)
	return code
}

func registerTestUser(t *testing.T, app *fiber.App, email string, password string, fullName string) uint {
	t.Helper()

	response := postJSON(t, app, "/onboarding/register", "", map[string]string{
		"email":       email,
		"password":    password,
		"full_name":   fullName,
		"invite_code": testInviteCode,
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d", email, response.StatusCode)
	}
	payload := decodeBody(t, response)
	user, ok := payload["user"].(map[string]any)
	if !ok {
		t.Fatalf("register %s: missing user payload: %v", email, payload)
	}
	id, ok := user["id"].(float64)
	if !ok {
		t.Fatalf("register %s: missing user id: %v", email, user)
	}
	return uint(id)
}

func loginTestUser(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	response := postJSON(t, app, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d", email, response.StatusCode)
	}
	payload := decodeBody(t, response)
	token, ok := payload["access_token"].(string)
	if !ok || token == "" {
		t.Fatalf("login %s: missing access token: %v", email, payload)
	}
	return token
}

func uploadPortfolioCSV(t *testing.T, app *fiber.App, token string, fileName string, csvContent string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.Copy(part, strings.NewReader(csvContent)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, "/onboarding/create-portfolio", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	request.Header.Set("Authorization", "Bearer "+token)

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("upload portfolio failed: %v", err)
	}
	return response
}

package assets_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assets "github.com/goliatone/go-assets"
)

func newTestApp(t *testing.T, store assets.AssetStore, creds assets.CredentialStore) *fiber.App {
	t.Helper()

	service := newTestService(store, creds)
	tokens := assets.NewTokenService([]byte("test-key"), time.Hour, "go-assets-test", nil, nil)

	app := fiber.New()
	assets.NewHTTPController(service, tokens).RegisterRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func loginToken(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/login", "", assets.LoginRequest{
		Username: username,
		Password: password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func testCredentials() memCredentials {
	return memCredentials{
		"ann": {Username: "ann", PasswordHash: "x", Role: "Approver"},
		"it":  {Username: "it", PasswordHash: "x", Role: "ituser"},
		"bob": {Username: "bob", PasswordHash: "x", Role: "EndUser"},
	}
}

func TestHTTPLoginIssuesToken(t *testing.T) {
	app := newTestApp(t, newMemStore(), testCredentials())

	token := loginToken(t, app, "ann", "correct")
	assert.NotEmpty(t, token)
}

func TestHTTPLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t, newMemStore(), testCredentials())

	resp := doJSON(t, app, http.MethodPost, "/login", "", assets.LoginRequest{
		Username: "ann",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "INVALID_CREDENTIALS", body["text_code"])
}

func TestHTTPLoginValidatesPayload(t *testing.T) {
	app := newTestApp(t, newMemStore(), testCredentials())

	resp := doJSON(t, app, http.MethodPost, "/login", "", assets.LoginRequest{Username: "ann"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHTTPProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t, newMemStore(), testCredentials())

	resp := doJSON(t, app, http.MethodGet, "/assets/pending", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/assets/pending", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHTTPRoleGateOverRoutes(t *testing.T) {
	store := newMemStore(
		assets.Asset{ID: "7", Owner: "bob", Name: "Laptop", Status: assets.StatusPendingApproval},
	)
	app := newTestApp(t, store, testCredentials())

	bobToken := loginToken(t, app, "bob", "correct")

	// end user cannot see the queue
	resp := doJSON(t, app, http.MethodGet, "/assets/pending", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// but sees their own assets
	resp = doJSON(t, app, http.MethodGet, "/assets/mine", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	records, _ := body["assets"].([]any)
	assert.Len(t, records, 1)
}

func TestHTTPEndToEndScenario(t *testing.T) {
	store := newMemStore(
		assets.Asset{ID: "7", Owner: "bob", Name: "Laptop", Status: assets.StatusInUse},
	)
	app := newTestApp(t, store, testCredentials())

	itToken := loginToken(t, app, "it", "correct")
	annToken := loginToken(t, app, "ann", "correct")

	resp := doJSON(t, app, http.MethodPut, "/assets/7/status", itToken, assets.StatusRequest{
		Status: assets.StatusPendingApproval,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, string(assets.UpdateApplied), decodeBody(t, resp)["outcome"])

	resp = doJSON(t, app, http.MethodGet, "/assets/pending", annToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	queue, _ := decodeBody(t, resp)["assets"].([]any)
	require.Len(t, queue, 1)

	resp = doJSON(t, app, http.MethodPost, "/assets/7/approve", annToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/assets/?owner=%s", "bob"), itToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	owned, _ := decodeBody(t, resp)["assets"].([]any)
	require.Len(t, owned, 1)
	record, _ := owned[0].(map[string]any)
	assert.Equal(t, assets.StatusApproved, record["status"])
}

func TestHTTPStatusPutRejectsUnknownStatus(t *testing.T) {
	store := newMemStore(
		assets.Asset{ID: "7", Owner: "bob", Status: assets.StatusInUse},
	)
	app := newTestApp(t, store, testCredentials())
	itToken := loginToken(t, app, "it", "correct")

	resp := doJSON(t, app, http.MethodPut, "/assets/7/status", itToken, assets.StatusRequest{
		Status: "Broken",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

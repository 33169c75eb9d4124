package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoppingk/jitsi-session-keeper/internal/auth"
	"github.com/shoppingk/jitsi-session-keeper/internal/middleware"
	"github.com/shoppingk/jitsi-session-keeper/internal/model"
	"github.com/shoppingk/jitsi-session-keeper/internal/recording"
	"github.com/shoppingk/jitsi-session-keeper/internal/tenant"
	"github.com/shoppingk/jitsi-session-keeper/pkg/config"
	"github.com/shoppingk/jitsi-session-keeper/pkg/jwtutil"
	"github.com/shoppingk/jitsi-session-keeper/pkg/sessionstore"
)

func newTestHandler(t *testing.T) (*Handler, *jwtutil.JWTUtil) {
	t.Helper()

	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "test-key", ExpirationHours: 24})
	tenants := tenant.NewService(0, nil)
	authSvc := auth.NewService(tenants, sessionstore.NewMemory(), jwtUtil, nil)
	ledger := recording.NewLedger(10*time.Millisecond, nil)
	t.Cleanup(ledger.Close)

	h := New(tenants, authSvc, ledger, config.ConferenceConfig{
		Domain:      "meet.jit.si",
		EmailDomain: "videoconf.app",
	})
	return h, jwtUtil
}

func loginCreds(username, password string) model.Credentials {
	return model.Credentials{Username: username, Password: password}
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Host = "localhost:8080"
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLoginHandler(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	req := jsonRequest(http.MethodPost, "/auth/login?tenant=male", `{"username":"john","password":"user123"}`)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Login(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "john", user["username"])
	assert.NotContains(t, user, "password")

	resolved := body["tenant"].(map[string]interface{})
	assert.Equal(t, "male", resolved["subdomain"])
}

func TestLoginHandlerRejectsBadCredentials(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	req := jsonRequest(http.MethodPost, "/auth/login?tenant=male", `{"username":"john","password":"nope"}`)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Login(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, h.Auth.State().IsAuthenticated)
}

func TestLoginHandlerUnknownTenant(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	req := jsonRequest(http.MethodPost, "/auth/login?tenant=nosuch", `{"username":"john","password":"user123"}`)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Login(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginHandlerSubdomainHost(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	req := jsonRequest(http.MethodPost, "/auth/login", `{"username":"sarah","password":"user123"}`)
	req.Host = "female.videoconf.app"
	rec := httptest.NewRecorder()
	require.NoError(t, h.Login(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareGuardsAPI(t *testing.T) {
	h, jwtUtil := newTestHandler(t)
	e := echo.New()
	e.GET("/api/auth/me", h.Me, middleware.JWTAuthMiddleware(jwtUtil))

	// No token.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token.
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token.
	token, err := jwtUtil.GenerateToken("male-user-1", "john", "user", "male-tenant")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminBlocksUsers(t *testing.T) {
	h, jwtUtil := newTestHandler(t)
	e := echo.New()
	e.GET("/api/users", h.ListTenantUsers, middleware.JWTAuthMiddleware(jwtUtil), middleware.RequireAdmin)

	token, err := jwtUtil.GenerateToken("male-user-1", "john", "user", "male-tenant")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRecordingHandlers(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	start := func() *httptest.ResponseRecorder {
		req := jsonRequest(http.MethodPost, "/api/recordings/start", `{"roomId":"room-1","roomName":"Standup"}`)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("user_id", "male-admin-1")
		c.Set("role", "admin")
		require.NoError(t, h.StartRecording(c))
		return rec
	}

	rec := start()
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, h.Recordings.IsActive("room-1"))

	// Double start conflicts.
	rec = start()
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Stop.
	req := jsonRequest(http.MethodPost, "/api/recordings/room-1/stop", "")
	stopRec := httptest.NewRecorder()
	c := e.NewContext(req, stopRec)
	c.SetParamNames("room")
	c.SetParamValues("room-1")
	require.NoError(t, h.StopRecording(c))
	assert.Equal(t, http.StatusOK, stopRec.Code)
	assert.False(t, h.Recordings.IsActive("room-1"))

	body := decode(t, stopRec)
	stopped := body["recording"].(map[string]interface{})
	assert.Equal(t, true, stopped["isProcessing"])
}

func TestListRecordingsScopesNonAdmins(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	_, err := h.Recordings.Start("room-1", "A", "alice")
	require.NoError(t, err)
	_, err = h.Recordings.Start("room-2", "B", "bob")
	require.NoError(t, err)

	list := func(userID, role string) []interface{} {
		req := jsonRequest(http.MethodGet, "/api/recordings", "")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("user_id", userID)
		c.Set("role", role)
		require.NoError(t, h.ListRecordings(c))
		return decode(t, rec)["recordings"].([]interface{})
	}

	assert.Len(t, list("alice", "user"), 1)
	assert.Len(t, list("anyone", "admin"), 2)
}

func TestConferenceConfigHandler(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	req := jsonRequest(http.MethodGet, "/api/conference/config?room=standup&video=false", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "male-user-1")
	c.Set("username", "john")
	c.Set("role", "user")
	require.NoError(t, h.ConferenceConfig(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	cfg := decode(t, rec)["config"].(map[string]interface{})
	assert.Equal(t, "standup", cfg["roomName"])
	assert.Equal(t, "john", cfg["displayName"])
	assert.Equal(t, "john@videoconf.app", cfg["email"])
	assert.Equal(t, false, cfg["startWithAudioMuted"])
	assert.Equal(t, true, cfg["startWithVideoMuted"])

	// Room is required.
	req = jsonRequest(http.MethodGet, "/api/conference/config", "")
	rec = httptest.NewRecorder()
	require.NoError(t, h.ConferenceConfig(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTenantDirectoryHandlers(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	// A tenant admin that is not the super admin is rejected.
	_, err := h.Tenants.Resolve(context.Background(), "male")
	require.NoError(t, err)
	require.NoError(t, h.Auth.Login(loginCreds("admin", "admin123")))

	req := jsonRequest(http.MethodGet, "/api/tenants", "")
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListTenants(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The super admin can list and create.
	_, err = h.Tenants.Resolve(context.Background(), "admin")
	require.NoError(t, err)
	require.NoError(t, h.Auth.Login(loginCreds("superadmin", "super123")))

	rec = httptest.NewRecorder()
	require.NoError(t, h.ListTenants(e.NewContext(jsonRequest(http.MethodGet, "/api/tenants", ""), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["tenants"], 3)

	rec = httptest.NewRecorder()
	createReq := jsonRequest(http.MethodPost, "/api/tenants", `{"subdomain":"acme","name":"Acme Portal","isActive":true}`)
	require.NoError(t, h.CreateTenant(e.NewContext(createReq, rec)))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate subdomain conflicts.
	rec = httptest.NewRecorder()
	dupReq := jsonRequest(http.MethodPost, "/api/tenants", `{"subdomain":"acme","name":"Copy","isActive":true}`)
	require.NoError(t, h.CreateTenant(e.NewContext(dupReq, rec)))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Patching an unknown tenant is a 404.
	rec = httptest.NewRecorder()
	patchReq := jsonRequest(http.MethodPatch, "/api/tenants/tenant-unknown", `{"name":"X"}`)
	c := e.NewContext(patchReq, rec)
	c.SetParamNames("id")
	c.SetParamValues("tenant-unknown")
	require.NoError(t, h.UpdateTenant(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResolveTenantHandler(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()

	req := jsonRequest(http.MethodGet, "/tenant?tenant=female", "")
	rec := httptest.NewRecorder()
	require.NoError(t, h.ResolveTenant(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	resolved := decode(t, rec)["tenant"].(map[string]interface{})
	assert.Equal(t, "Female Portal", resolved["name"])

	// No identifier on a dev host without the override.
	req = jsonRequest(http.MethodGet, "/tenant", "")
	rec = httptest.NewRecorder()
	require.NoError(t, h.ResolveTenant(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

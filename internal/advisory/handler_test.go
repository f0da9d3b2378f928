package advisory

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"farmadvisor-backend/internal/shared/auth"
	"farmadvisor-backend/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T) (*gin.Engine, string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	userToken, err := auth.SignJWT(auth.Claims{Sub: "user-1"})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	adminToken, err := auth.SignJWT(auth.Claims{Sub: "admin-1", Admin: true})
	if err != nil {
		t.Fatalf("SignJWT admin: %v", err)
	}

	svc := &Service{Repo: NewMemoryRepo()}
	handler := NewHandler(svc)

	r := gin.New()
	r.Use(middleware.Auth())
	api := r.Group("/api/v1")
	handler.RegisterRoutes(api)
	admin := api.Group("/admin", middleware.AdminOnly())
	handler.RegisterAdminRoutes(admin)
	return r, userToken, adminToken
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func advisoryPayload() gin.H {
	return gin.H{
		"temperature":    26,
		"soilType":       "Loamy",
		"cropType":       "Maize",
		"fertilizerName": "Urea",
		"quantity":       50,
	}
}

func TestCreateAndListAdvisories(t *testing.T) {
	router, token, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/advisories", advisoryPayload(), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}
	var created Advisory
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if created.ID == "" || created.UserID != "user-1" {
		t.Fatalf("unexpected advisory: %+v", created)
	}
	if len(created.Recommendations) == 0 {
		t.Fatal("expected recommendations")
	}

	list := doJSON(t, router, http.MethodGet, "/api/v1/advisories", nil, token)
	if list.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", list.Code)
	}
	var items []Advisory
	if err := json.NewDecoder(list.Body).Decode(&items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != 1 || items[0].ID != created.ID {
		t.Fatalf("expected the created advisory, got %v", items)
	}
}

func TestCreateAdvisoryValidation(t *testing.T) {
	router, token, _ := newTestRouter(t)

	payload := advisoryPayload()
	payload["quantity"] = 0
	resp := doJSON(t, router, http.MethodPost, "/api/v1/advisories", payload, token)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", resp.Code, resp.Body.String())
	}
}

func TestCreateAdvisoryRequiresAuth(t *testing.T) {
	router, _, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/advisories", advisoryPayload(), "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestDeleteAdvisory(t *testing.T) {
	router, token, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/advisories", advisoryPayload(), token)
	var created Advisory
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	del := doJSON(t, router, http.MethodDelete, "/api/v1/advisories/"+created.ID, nil, token)
	if del.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", del.Code)
	}

	again := doJSON(t, router, http.MethodDelete, "/api/v1/advisories/"+created.ID, nil, token)
	if again.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", again.Code)
	}
}

func TestAnalyticsEndpoint(t *testing.T) {
	router, token, _ := newTestRouter(t)

	for i := 0; i < 3; i++ {
		if resp := doJSON(t, router, http.MethodPost, "/api/v1/advisories", advisoryPayload(), token); resp.Code != http.StatusCreated {
			t.Fatalf("create %d: expected 201, got %d", i, resp.Code)
		}
	}

	resp := doJSON(t, router, http.MethodGet, "/api/v1/advisories/analytics", nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var analytics Analytics
	if err := json.NewDecoder(resp.Body).Decode(&analytics); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if analytics.TotalAdvisories != 3 {
		t.Fatalf("expected 3 advisories, got %d", analytics.TotalAdvisories)
	}
	if analytics.CompatibilityRate != 100 {
		t.Fatalf("expected 100%% compatibility, got %v", analytics.CompatibilityRate)
	}
}

func TestAdminRoutesRequireAdminClaim(t *testing.T) {
	router, userToken, adminToken := newTestRouter(t)

	if resp := doJSON(t, router, http.MethodPost, "/api/v1/advisories", advisoryPayload(), userToken); resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.Code)
	}

	denied := doJSON(t, router, http.MethodGet, "/api/v1/admin/users/user-1/advisories", nil, userToken)
	if denied.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", denied.Code)
	}

	allowed := doJSON(t, router, http.MethodGet, "/api/v1/admin/users/user-1/advisories", nil, adminToken)
	if allowed.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", allowed.Code)
	}
	var items []Advisory
	if err := json.NewDecoder(allowed.Body).Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected the user's advisory, got %v", items)
	}

	analytics := doJSON(t, router, http.MethodGet, "/api/v1/admin/users/user-1/analytics", nil, adminToken)
	if analytics.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin analytics, got %d", analytics.Code)
	}
}

package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAPI_ETag(t *testing.T) {
	h := &Handler{}

	rec := httptest.NewRecorder()
	h.OpenAPI(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/v1/teams/{teamID}/rosters") {
		t.Fatalf("unexpected openapi response: %d", rec.Code)
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected etag")
	}

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.OpenAPI(rec, req)
	if rec.Code != http.StatusNotModified || rec.Body.Len() != 0 {
		t.Fatalf("expected 304 without body, got %d", rec.Code)
	}
}

func TestSwaggerUI_PointsAtSpec(t *testing.T) {
	rec := httptest.NewRecorder()
	(&Handler{}).SwaggerUI(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
	if !strings.Contains(rec.Body.String(), "url: '/openapi.yaml'") {
		t.Fatalf("swagger page does not load openapi.yaml")
	}
}

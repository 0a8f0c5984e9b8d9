package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/domain"
)

func TestSessionMiddleware_IssuesCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(sessionMiddleware())
	var seen string
	router.GET("/test", func(c *gin.Context) {
		seen = sessionID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if seen == "" {
		t.Fatalf("expected a session id in context")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("session id %q is not a uuid: %v", seen, err)
	}
	var issued *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookie {
			issued = cookie
		}
	}
	if issued == nil {
		t.Fatalf("expected a %s cookie", sessionCookie)
	}
	if issued.Value != seen || !issued.HttpOnly {
		t.Fatalf("unexpected cookie %+v", issued)
	}
}

func TestSessionMiddleware_ReusesCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(sessionMiddleware())
	var seen string
	router.GET("/test", func(c *gin.Context) {
		seen = sessionID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "existing-session"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if seen != "existing-session" {
		t.Fatalf("expected existing session id, got %q", seen)
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookie {
			t.Fatalf("middleware must not reissue an existing cookie")
		}
	}
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	profiles := &stubProfileService{profile: &domain.Profile{ID: 7, Username: "alice"}}
	router := gin.New()
	router.Use(authRequired(profiles))
	router.GET("/test", func(c *gin.Context) {
		p := currentProfile(c)
		if p == nil || p.ID != 7 {
			t.Fatalf("expected profile in context, got %+v", p)
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthRequired_Rejects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	profiles := &stubProfileService{verifyErr: domain.ErrValidation}
	router := gin.New()
	router.Use(authRequired(profiles))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, header := range []string{"", "Basic abc", "Bearer bad-token"} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "error") {
			t.Fatalf("header %q: expected an error body, got %s", header, rec.Body.String())
		}
	}
}

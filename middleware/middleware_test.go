package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"havenstay/database/repository"
	profileRepo "havenstay/database/repository/profile"
	"havenstay/models"
	"havenstay/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeProfiles struct {
	profileRepo.ProfileRepository
	byID map[string]*models.Profile
}

func (f fakeProfiles) GetByIDWithProjection(_ context.Context, id string, _ bson.M) (*models.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(profiles profileRepo.ProfileRepository, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuthMiddleware(profiles, nil)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		s := GetSession(c)
		c.String(http.StatusOK, s.UserID+"/"+string(s.Role))
	})
	r.GET("/me", handlers...)
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	current, _ := utils.GenerateToken("p1", models.RoleGuest, time.Hour)
	stale, _ := utils.GenerateToken("p1", models.RoleGuest, 2*time.Hour)
	profiles := fakeProfiles{byID: map[string]*models.Profile{
		// The stored role wins over the token claim.
		"p1": {ID: "p1", Role: models.RoleHost, TokenHash: utils.HashToken(current)},
	}}
	r := newRouter(profiles)

	if w := get(r, current); w.Code != http.StatusOK || w.Body.String() != "p1/host" {
		t.Fatalf("expected p1/host, got %d %q", w.Code, w.Body.String())
	}
	if w := get(r, stale); w.Code != http.StatusUnauthorized {
		t.Fatalf("rotated token should be rejected, got %d", w.Code)
	}
	if w := get(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token should be rejected, got %d", w.Code)
	}
	if w := get(r, "garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("malformed token should be rejected, got %d", w.Code)
	}
	ghost, _ := utils.GenerateToken("ghost", models.RoleGuest, time.Hour)
	if w := get(r, ghost); w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown profile should be rejected, got %d", w.Code)
	}
}

func TestRequireHost(t *testing.T) {
	guestToken, _ := utils.GenerateToken("g1", models.RoleGuest, time.Hour)
	profiles := fakeProfiles{byID: map[string]*models.Profile{
		"g1": {ID: "g1", Role: models.RoleGuest, TokenHash: utils.HashToken(guestToken)},
	}}
	r := newRouter(profiles, RequireHost())
	if w := get(r, guestToken); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes %v", codes)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "10.0.0.9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("other clients keep their own budget, got %d", w.Code)
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name, xff, realIP, remote, want string
	}{
		{"forwarded first", "203.0.113.7, 10.0.0.1", "", "10.0.0.2:5000", "203.0.113.7"},
		{"skips garbage", "unknown, 198.51.100.4", "", "10.0.0.2:5000", "198.51.100.4"},
		{"real ip", "", "192.0.2.9", "10.0.0.2:5000", "192.0.2.9"},
		{"socket", "", "", "10.0.0.2:5000", "10.0.0.2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tc.remote
			if tc.xff != "" {
				c.Request.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.realIP != "" {
				c.Request.Header.Set("X-Real-IP", tc.realIP)
			}
			if got := clientIP(c); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

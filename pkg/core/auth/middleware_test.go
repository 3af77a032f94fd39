package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"finboard/pkg/core/store"
)

type fakeUserLoader struct {
	users map[string]*store.User
}

func (f *fakeUserLoader) GetByUsername(_ context.Context, username string) (*store.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func protectedRouter(svc *Service, users UserLoader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Middleware(svc, users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentUser(c).Username})
	})
	return r
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	loader := &fakeUserLoader{users: map[string]*store.User{
		"alice": {ID: 1, Username: "alice", IsActive: true},
	}}
	r := protectedRouter(svc, loader)

	token, err := svc.CreateToken("alice")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestMiddlewareRejections(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	otherSvc := NewService("other-secret", time.Hour)
	loader := &fakeUserLoader{users: map[string]*store.User{
		"alice":    {ID: 1, Username: "alice", IsActive: true},
		"inactive": {ID: 2, Username: "inactive", IsActive: false},
	}}
	r := protectedRouter(svc, loader)

	mustToken := func(s *Service, username string) string {
		t.Helper()
		token, err := s.CreateToken(username)
		if err != nil {
			t.Fatalf("CreateToken: %v", err)
		}
		return token
	}

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + mustToken(otherSvc, "alice")},
		{"unknown user", "Bearer " + mustToken(svc, "bob")},
		{"inactive user", "Bearer " + mustToken(svc, "inactive")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
			if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
				t.Errorf("WWW-Authenticate = %q, want Bearer", got)
			}
		})
	}
}

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventconnect-app/go-events-backend/internal/users"
)

// The production wiring hands these concrete types to RequireUser; keep
// them pinned to the interfaces.
var (
	_ TokenVerifier = (*fbauth.Client)(nil)
	_ ProfileStore  = (*users.Repo)(nil)
)

type stubVerifier struct {
	token *fbauth.Token
	err   error
}

func (s stubVerifier) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	return s.token, s.err
}

type stubProfiles struct {
	role string
	err  error
	seen users.Profile
}

func (s *stubProfiles) Ensure(ctx context.Context, seed users.Profile) (*users.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.seen = seed
	out := seed
	if s.role != "" {
		out.Role = s.role
	}
	return &out, nil
}

func validToken() *fbauth.Token {
	return &fbauth.Token{
		UID: "u1",
		Claims: map[string]interface{}{
			"email": "ada@example.com",
			"name":  "Ada",
		},
	}
}

func runRequest(t *testing.T, mws []gin.HandlerFunc, header string) (*httptest.ResponseRecorder, *users.Profile, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var gotProfile *users.Profile
	var gotUID string

	r := gin.New()
	handlers := append(mws, func(c *gin.Context) {
		gotProfile = CurrentProfile(c)
		gotUID = UserUID(c)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/protected", handlers...)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w, gotProfile, gotUID
}

func TestRequireUser(t *testing.T) {
	t.Run("missing token is refused before any store call", func(t *testing.T) {
		profiles := &stubProfiles{}
		mw := RequireUser(stubVerifier{token: validToken()}, profiles)

		w, profile, _ := runRequest(t, []gin.HandlerFunc{mw}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, profile)
		assert.Empty(t, profiles.seen.UID, "profile store must not be touched")
	})

	t.Run("invalid token is refused", func(t *testing.T) {
		mw := RequireUser(stubVerifier{err: errors.New("expired")}, &stubProfiles{})

		w, _, _ := runRequest(t, []gin.HandlerFunc{mw}, "Bearer bad")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token provisions and exposes the profile", func(t *testing.T) {
		profiles := &stubProfiles{}
		mw := RequireUser(stubVerifier{token: validToken()}, profiles)

		w, profile, uid := runRequest(t, []gin.HandlerFunc{mw}, "Bearer good")
		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, profile)
		assert.Equal(t, "u1", uid)
		assert.Equal(t, "ada@example.com", profile.Email)
		assert.Equal(t, "Ada", profile.DisplayName)
		// First-login seed always starts as a plain user.
		assert.Equal(t, users.RoleUser, profiles.seen.Role)
	})

	t.Run("profile store failure yields 500", func(t *testing.T) {
		mw := RequireUser(stubVerifier{token: validToken()}, &stubProfiles{err: errors.New("down")})

		w, _, _ := runRequest(t, []gin.HandlerFunc{mw}, "Bearer good")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("plain users are refused", func(t *testing.T) {
		mw := RequireUser(stubVerifier{token: validToken()}, &stubProfiles{role: users.RoleUser})

		w, _, _ := runRequest(t, []gin.HandlerFunc{mw, RequireAdmin()}, "Bearer good")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admins pass", func(t *testing.T) {
		mw := RequireUser(stubVerifier{token: validToken()}, &stubProfiles{role: users.RoleAdmin})

		w, profile, _ := runRequest(t, []gin.HandlerFunc{mw, RequireAdmin()}, "Bearer good")
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, profile.IsAdmin())
	})

	t.Run("without RequireUser everyone is refused", func(t *testing.T) {
		w, _, _ := runRequest(t, []gin.HandlerFunc{RequireAdmin()}, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

package auth

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/eventconnect-app/go-events-backend/internal/users"
)

// TokenVerifier validates an identity-service ID token.
// *fbauth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// ProfileStore provisions and loads user profile documents.
type ProfileStore interface {
	Ensure(ctx context.Context, seed users.Profile) (*users.Profile, error)
}

// RequireUser validates the Bearer ID token, provisions the profile
// document on first login, and stores the profile in the request context.
// Unauthenticated callers are refused before any other store operation
// runs.
func RequireUser(verifier TokenVerifier, profiles ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "you must be logged in"})
			c.Abort()
			return
		}

		decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		profile, err := profiles.Ensure(c.Request.Context(), seedFromToken(decoded))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load profile"})
			c.Abort()
			return
		}

		c.Set(CtxFirebaseUID, decoded.UID)
		c.Set(CtxProfile, profile)
		c.Next()
	}
}

// RequireAdmin refuses callers whose profile does not carry the admin
// role. Must run after RequireUser.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentProfile(c).IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// seedFromToken builds the default first-login profile from the verified
// token's standard claims.
func seedFromToken(t *fbauth.Token) users.Profile {
	email, _ := t.Claims["email"].(string)
	name, _ := t.Claims["name"].(string)
	picture, _ := t.Claims["picture"].(string)
	if name == "" {
		name = "Anonymous User"
	}
	return users.NewProfile(t.UID, email, name, picture)
}

// extractToken pulls the Bearer token from the Authorization header.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}

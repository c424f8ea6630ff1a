package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eventconnect-app/go-events-backend/internal/users"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxProfile     = "user_profile"
)

// UserUID extracts the signed-in user's Firebase UID from the Gin
// context. Empty when the request is unauthenticated.
func UserUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// CurrentProfile returns the signed-in user's profile, or nil.
// Set by RequireUser.
func CurrentProfile(c *gin.Context) *users.Profile {
	if v, ok := c.Get(CtxProfile); ok {
		if p, ok := v.(*users.Profile); ok {
			return p
		}
	}
	return nil
}

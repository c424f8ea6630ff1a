package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/eventconnect-app/go-events-backend/internal/users"
)

// AccountCreator creates accounts in the identity service.
// *fbauth.Client satisfies it.
type AccountCreator interface {
	CreateUser(ctx context.Context, user *fbauth.UserToCreate) (*fbauth.UserRecord, error)
}

// ProfileCreator writes new profile documents.
type ProfileCreator interface {
	Create(ctx context.Context, p users.Profile) error
}

type Handler struct {
	accounts AccountCreator
	profiles ProfileCreator
}

// Register mounts the session routes. requireUser guards /me; signup is
// open (it is how accounts come to exist).
func Register(rg *gin.RouterGroup, accounts AccountCreator, profiles ProfileCreator, requireUser gin.HandlerFunc) {
	h := &Handler{accounts: accounts, profiles: profiles}

	rg.POST("/signup", h.signup)
	rg.GET("/me", requireUser, h.me)
}

type signupReq struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

func (r *signupReq) validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.DisplayName = strings.TrimSpace(r.DisplayName)

	switch {
	case r.Email == "" || !strings.Contains(r.Email, "@"):
		return errors.New("a valid email is required")
	case len(r.Password) < 6:
		return errors.New("password must be at least 6 characters")
	case r.DisplayName == "":
		return errors.New("display name is required")
	}
	return nil
}

// signup creates the identity-service account and writes the initial
// profile document with default preference fields. Role always starts as
// "user"; promotion happens out-of-band.
func (h *Handler) signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	record, err := h.accounts.CreateUser(c.Request.Context(), (&fbauth.UserToCreate{}).
		Email(req.Email).
		Password(req.Password).
		DisplayName(req.DisplayName))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "sign up failed"})
		return
	}

	profile := users.NewProfile(record.UID, req.Email, req.DisplayName, "")
	if err := h.profiles.Create(c.Request.Context(), profile); err != nil && !errors.Is(err, users.ErrAlreadyExists) {
		// The account exists; the profile will be provisioned on first
		// authenticated request instead.
		c.JSON(http.StatusCreated, gin.H{"ok": true, "uid": record.UID})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "uid": record.UID, "profile": profile})
}

func (h *Handler) me(c *gin.Context) {
	profile := CurrentProfile(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "you must be logged in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": profile, "is_admin": profile.IsAdmin()})
}

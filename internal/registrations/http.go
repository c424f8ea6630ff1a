package registrations

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventconnect-app/go-events-backend/internal/auth"
	"github.com/eventconnect-app/go-events-backend/internal/events"
)

// EventGetter confirms the target event exists and supplies the title
// snapshot. *events.Service satisfies it.
type EventGetter interface {
	Get(ctx context.Context, id string) (*events.Event, error)
}

type Handler struct {
	svc    *Service
	events EventGetter
}

// Register mounts the registration routes. The per-event routes hang off
// the events group; the "my registrations" listing lives at the API root.
// Every route requires a signed-in caller.
func Register(eventsGroup, api *gin.RouterGroup, svc *Service, eventLookup EventGetter, requireUser gin.HandlerFunc) {
	h := &Handler{svc: svc, events: eventLookup}

	eventsGroup.POST("/:id/register", requireUser, h.register)
	eventsGroup.DELETE("/:id/register", requireUser, h.cancel)
	eventsGroup.GET("/:id/registration", requireUser, h.status)
	api.GET("/registrations", requireUser, h.listMine)
}

func (h *Handler) register(c *gin.Context) {
	eventID := c.Param("id")

	event, err := h.events.Get(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to register for event"})
		return
	}

	reg, err := h.svc.Register(c.Request.Context(), auth.CurrentProfile(c), event.ID, event.Title)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "you are already registered for this event"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to register for event"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "registration": reg})
}

func (h *Handler) cancel(c *gin.Context) {
	err := h.svc.Cancel(c.Request.Context(), auth.CurrentProfile(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "no registration found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to cancel registration"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) status(c *gin.Context) {
	registered, err := h.svc.IsRegistered(c.Request.Context(), auth.CurrentProfile(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to check registration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "registered": registered})
}

func (h *Handler) listMine(c *gin.Context) {
	regs, err := h.svc.ListMine(c.Request.Context(), auth.CurrentProfile(c))
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list registrations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "registrations": regs})
}

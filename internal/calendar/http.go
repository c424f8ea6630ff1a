package calendar

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventconnect-app/go-events-backend/internal/events"
)

type EventGetter interface {
	Get(ctx context.Context, id string) (*events.Event, error)
}

type Handler struct {
	events   EventGetter
	inserter *Inserter // nil when the OAuth variant is not configured
}

// Register mounts the export routes on the events group. The deep link is
// public; the OAuth insert needs a signed-in caller.
func Register(eventsGroup *gin.RouterGroup, eventLookup EventGetter, inserter *Inserter, requireUser gin.HandlerFunc) {
	h := &Handler{events: eventLookup, inserter: inserter}

	eventsGroup.GET("/:id/calendar-link", h.deepLink)
	eventsGroup.POST("/:id/calendar", requireUser, h.insert)
}

func (h *Handler) deepLink(c *gin.Context) {
	event, ok := h.lookup(c)
	if !ok {
		return
	}

	link, err := DeepLink(event)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": "event cannot be exported"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "url": link})
}

type insertReq struct {
	AccessToken string `json:"access_token"`
}

func (h *Handler) insert(c *gin.Context) {
	if h.inserter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": ErrNotConfigured.Error()})
		return
	}

	event, ok := h.lookup(c)
	if !ok {
		return
	}

	var req insertReq
	if err := c.ShouldBindJSON(&req); err != nil || req.AccessToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "access_token is required"})
		return
	}

	link, err := h.inserter.Insert(c.Request.Context(), req.AccessToken, event)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "failed to add event to Google Calendar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "html_link": link})
}

func (h *Handler) lookup(c *gin.Context) (*events.Event, bool) {
	event, err := h.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "event not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to fetch events"})
		return nil, false
	}
	return event, true
}

package events

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eventconnect-app/go-events-backend/internal/auth"
)

type Handler struct {
	svc *Service
}

// Register mounts the catalogue routes. adminOnly guards the mutating
// routes; reads are public.
func Register(rg *gin.RouterGroup, svc *Service, adminOnly ...gin.HandlerFunc) {
	h := &Handler{svc: svc}

	rg.GET("", h.list)
	rg.GET("/:id", h.get)

	writes := rg.Group("", adminOnly...)
	writes.POST("", h.create)
	writes.PATCH("/:id", h.update)
	writes.DELETE("/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.svc.Catalogue(c.Request.Context(), Query{
		Search:   c.Query("search"),
		Sort:     ParseSortMode(c.Query("sort")),
		Page:     page,
		PageSize: DefaultPageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"events":     result.Events,
		"page":       result.Page,
		"page_count": result.PageCount,
		"total":      result.Total,
	})
}

func (h *Handler) get(c *gin.Context) {
	e, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "event": e})
}

func (h *Handler) create(c *gin.Context) {
	var draft Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	// The organiser name defaults to the signed-in admin's display name.
	if strings.TrimSpace(draft.CreatedBy) == "" {
		if p := auth.CurrentProfile(c); p != nil {
			draft.CreatedBy = p.DisplayName
		}
	}

	e, err := h.svc.Create(c.Request.Context(), draft)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to add event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "event": e})
}

// updateReq is the wire form of a tagged patch. A missing field keeps the
// stored value; an empty string clears an optional field (and is rejected
// for required ones); price travels as a string so that "" can mean clear.
type updateReq struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Location    *string `json:"location"`
	EventURL    *string `json:"event_url"`
	CreatedBy   *string `json:"created_by"`
	Price       *string `json:"price"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if err := h.svc.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "event not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to update event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Remove(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to delete event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (r updateReq) toPatch() (Patch, error) {
	str := func(v *string) StringUpdate {
		if v == nil {
			return StringUpdate{Op: Keep}
		}
		if strings.TrimSpace(*v) == "" {
			return StringUpdate{Op: Clear}
		}
		return StringUpdate{Op: Set, Value: strings.TrimSpace(*v)}
	}

	p := Patch{
		Title:       str(r.Title),
		Date:        str(r.Date),
		Description: str(r.Description),
		ImageURL:    str(r.ImageURL),
		Location:    str(r.Location),
		EventURL:    str(r.EventURL),
		CreatedBy:   str(r.CreatedBy),
	}

	if r.Price != nil {
		raw := strings.TrimSpace(*r.Price)
		if raw == "" {
			p.Price = FloatUpdate{Op: Clear}
		} else {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return Patch{}, errors.New("price must be a number")
			}
			p.Price = FloatUpdate{Op: Set, Value: v}
		}
	}

	return p, nil
}

package request

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"halalbites/internal/httperr"
)

// --------------------------------------------------
// HTTP Handler
// --------------------------------------------------

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create accepts a restaurant suggestion from an authenticated user.
func (h *Handler) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var sub Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission payload"})
		return
	}

	req, err := h.service.Create(c.Request.Context(), userID, sub)
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, req)
}

func (h *Handler) ListMine(c *gin.Context) {
	userID := c.GetString("userID")

	requests, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// ListByStatus is the admin review queue, defaulting to pending.
func (h *Handler) ListByStatus(c *gin.Context) {
	requests, err := h.service.ListByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (h *Handler) Approve(c *gin.Context) {
	var body struct {
		AdminNotes string `json:"admin_notes"`
	}
	// Notes are optional, so an empty body is fine.
	_ = c.ShouldBindJSON(&body)

	req, err := h.service.Approve(c.Request.Context(), c.Param("id"), body.AdminNotes)
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *Handler) Reject(c *gin.Context) {
	var body struct {
		AdminNotes string `json:"admin_notes"`
	}
	_ = c.ShouldBindJSON(&body)

	if err := h.service.Reject(c.Request.Context(), c.Param("id"), body.AdminNotes); err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "request rejected"})
}

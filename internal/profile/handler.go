package profile

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

// Me returns the authenticated user's own profile.
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString("userID")

	p, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetPublic returns another user's public profile by username.
func (h *Handler) GetPublic(c *gin.Context) {
	p, err := h.service.GetPublic(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdateUsername(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	if err := h.service.UpdateUsername(c.Request.Context(), userID, req.Username); err != nil {
		if errors.Is(err, httperr.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
			return
		}
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "username updated"})
}

func (h *Handler) UploadAvatar(c *gin.Context) {
	userID := c.GetString("userID")

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}

	url, err := h.service.UploadAvatar(c.Request.Context(), userID, file)
	if err != nil {
		if errors.Is(err, ErrUnsafeAvatar) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

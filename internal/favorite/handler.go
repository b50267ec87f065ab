package favorite

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

func (h *Handler) Toggle(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		RestaurantID string `json:"restaurant_id" binding:"required"`
		ListName     string `json:"list_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurant_id is required"})
		return
	}

	favorited, err := h.service.Toggle(c.Request.Context(), userID, req.RestaurantID, req.ListName)
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

func (h *Handler) Move(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		RestaurantID string `json:"restaurant_id" binding:"required"`
		FromList     string `json:"from_list"`
		ToList       string `json:"to_list" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurant_id and to_list are required"})
		return
	}

	if err := h.service.Move(c.Request.Context(), userID, req.RestaurantID, req.FromList, req.ToList); err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favorite moved"})
}

func (h *Handler) Lists(c *gin.Context) {
	userID := c.GetString("userID")

	names, err := h.service.Lists(c.Request.Context(), userID)
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lists": names})
}

func (h *Handler) ListEntries(c *gin.Context) {
	userID := c.GetString("userID")
	listName := c.Query("list")

	entries, err := h.service.ListEntries(c.Request.Context(), userID, listName)
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": entries})
}

func (h *Handler) RenameList(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		From string `json:"from" binding:"required"`
		To   string `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
		return
	}

	if err := h.service.RenameList(c.Request.Context(), userID, req.From, req.To); err != nil {
		if errors.Is(err, ErrDefaultListImmutable) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "list renamed"})
}

func (h *Handler) DeleteList(c *gin.Context) {
	userID := c.GetString("userID")
	name := c.Param("name")

	if err := h.service.DeleteList(c.Request.Context(), userID, name); err != nil {
		if errors.Is(err, ErrDefaultListImmutable) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "list deleted"})
}

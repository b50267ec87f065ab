package review

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"halalbites/internal/httperr"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// --------------------------------------------------
// GET /restaurants/:id/reviews (public)
// --------------------------------------------------
func (h *Handler) ListByRestaurant(c *gin.Context) {
	reviews, err := h.service.ListByRestaurant(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// --------------------------------------------------
// POST /restaurants/:id/reviews
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rev := &Review{
		RestaurantID: c.Param("id"),
		UserID:       c.GetString("userID"),
		Rating:       req.Rating,
		Comment:      req.Comment,
	}

	if err := h.service.Create(c.Request.Context(), rev); err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, rev)
}

// --------------------------------------------------
// PUT /reviews/:id
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rev, err := h.service.Update(
		c.Request.Context(),
		c.Param("id"),
		c.GetString("userID"),
		req.Rating,
		req.Comment,
	)
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rev)
}

// --------------------------------------------------
// DELETE /reviews/:id (author, admin or moderator)
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(
		c.Request.Context(),
		c.Param("id"),
		c.GetString("userID"),
		c.GetString("userRole"),
	)
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

// --------------------------------------------------
// POST /reviews/:id/images
// --------------------------------------------------
func (h *Handler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || form.File["images"] == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "images are required"})
		return
	}

	outcomes, dropped, err := h.service.UploadImages(
		c.Request.Context(),
		c.Param("id"),
		c.GetString("userID"),
		form.File["images"],
	)
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"outcomes": outcomes, "dropped": dropped})
}

package restaurant

import (
	"encoding/json"
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

type restaurantRequest struct {
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	Lat          float64         `json:"lat"`
	Lng          float64         `json:"lng"`
	CuisineType  string          `json:"cuisine_type"`
	HalalStatus  string          `json:"halal_status"`
	PriceRange   string          `json:"price_range"`
	OpeningHours json.RawMessage `json:"opening_hours"`
	Description  string          `json:"description"`
	Phone        string          `json:"phone"`
	Website      string          `json:"website"`
	IsSponsored  bool            `json:"is_sponsored"`
}

func (req *restaurantRequest) toModel() *Restaurant {
	return &Restaurant{
		Name:         req.Name,
		Address:      req.Address,
		Lat:          req.Lat,
		Lng:          req.Lng,
		CuisineType:  req.CuisineType,
		HalalStatus:  req.HalalStatus,
		PriceRange:   req.PriceRange,
		OpeningHours: req.OpeningHours,
		Description:  req.Description,
		Phone:        req.Phone,
		Website:      req.Website,
		IsSponsored:  req.IsSponsored,
	}
}

// --------------------------------------------------
// GET /restaurants (public search/browse)
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	filter := Filter{
		Query:       c.Query("q"),
		CuisineType: c.Query("cuisine"),
		HalalStatus: c.Query("halal_status"),
		PriceRange:  c.Query("price_range"),
		OpenNow:     c.Query("open_now") == "true",
		ForMap:      c.Query("for_map") == "true",
	}

	items, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch restaurants"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// --------------------------------------------------
// GET /restaurants/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// --------------------------------------------------
// GET /restaurants/:id/images
// --------------------------------------------------
func (h *Handler) ListImages(c *gin.Context) {
	images, err := h.service.ListImages(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch images"})
		return
	}

	c.JSON(http.StatusOK, images)
}

// --------------------------------------------------
// ADMIN: POST /admin/restaurants
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.toModel())
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// --------------------------------------------------
// ADMIN: PUT /admin/restaurants/:id
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res := req.toModel()
	res.ID = c.Param("id")

	if err := h.service.Update(c.Request.Context(), res); err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

// --------------------------------------------------
// ADMIN: DELETE /admin/restaurants/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "restaurant deleted"})
}

// --------------------------------------------------
// ADMIN: POST /admin/restaurants/:id/images
// --------------------------------------------------
// Multipart batch under "images", or JSON {"url": ...} for an external link.
func (h *Handler) UploadImages(c *gin.Context) {
	restaurantID := c.Param("id")
	userID := c.GetString("userID")

	if c.ContentType() == "application/json" {
		var req struct {
			URL string `json:"url"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
			return
		}

		img, err := h.service.AddImageByURL(c.Request.Context(), restaurantID, userID, req.URL)
		if err != nil {
			c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, img)
		return
	}

	form, err := c.MultipartForm()
	if err != nil || form.File["images"] == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "images are required"})
		return
	}

	report, err := h.service.UploadImages(
		c.Request.Context(),
		restaurantID,
		userID,
		form.File["images"],
	)
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// --------------------------------------------------
// ADMIN: POST /admin/restaurants/:id/images/:imageID/primary
// --------------------------------------------------
func (h *Handler) SetPrimaryImage(c *gin.Context) {
	err := h.service.SetPrimaryImage(
		c.Request.Context(),
		c.Param("id"),
		c.Param("imageID"),
	)
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "primary image updated"})
}

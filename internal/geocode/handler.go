package geocode

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"halalbites/internal/httperr"
)

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// --------------------------------------------------
// GET /geocode/search?q=<address>
// --------------------------------------------------
func (h *Handler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	lat, lng, found, err := h.client.Search(c.Request.Context(), q)
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lat":   lat,
		"lng":   lng,
		"found": found,
	})
}

// --------------------------------------------------
// GET /geocode/reverse?lat=..&lon=..
// --------------------------------------------------
func (h *Handler) Reverse(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon are required"})
		return
	}

	address, err := h.client.Reverse(c.Request.Context(), lat, lng)
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}

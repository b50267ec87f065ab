package places

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"halalbites/internal/httperr"
)

type Handler struct {
	client   *Client
	importer *Importer
}

func NewHandler(client *Client, importer *Importer) *Handler {
	return &Handler{client: client, importer: importer}
}

// --------------------------------------------------
// GET /places/session
// --------------------------------------------------
// One token per focus session; the client holds it across keystrokes and the
// final details fetch.
func (h *Handler) NewSession(c *gin.Context) {
	if !h.client.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "places integration not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_token": NewSessionToken()})
}

// --------------------------------------------------
// GET /places/autocomplete?input=...&session_token=...
// --------------------------------------------------
func (h *Handler) Autocomplete(c *gin.Context) {
	predictions, err := h.client.Autocomplete(
		c.Request.Context(),
		c.Query("input"),
		c.Query("session_token"),
	)
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"predictions": predictions})
}

// --------------------------------------------------
// ADMIN: POST /admin/restaurants/import
// --------------------------------------------------
func (h *Handler) Import(c *gin.Context) {
	var req struct {
		PlaceID      string `json:"place_id"`
		SessionToken string `json:"session_token"`
		Fallback     struct {
			MainText      string `json:"main_text"`
			SecondaryText string `json:"secondary_text"`
		} `json:"fallback"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.PlaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "place_id is required"})
		return
	}

	created, err := h.importer.Import(
		c.Request.Context(),
		req.PlaceID,
		req.SessionToken,
		Prediction{
			PlaceID:       req.PlaceID,
			MainText:      req.Fallback.MainText,
			SecondaryText: req.Fallback.SecondaryText,
		},
	)
	if err != nil {
		c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

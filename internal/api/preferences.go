package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Preferences are the UI settings the frontend reads at startup
type Preferences struct {
	Theme  string `json:"theme"`
	Glassy bool   `json:"glassy"`
}

type PreferencesHandler struct {
	prefs Preferences
}

func NewPreferencesHandler(prefs Preferences) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs}
}

func (h *PreferencesHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/preferences", h.GetPreferences)
}

func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.prefs)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealbook/backend/internal/model"
	"github.com/pageza/mealbook/backend/internal/service"
)

// MealLogHandler serves the meal log routes
type MealLogHandler struct {
	mealLogService service.IMealLogService
}

func NewMealLogHandler(mealLogService service.IMealLogService) *MealLogHandler {
	return &MealLogHandler{mealLogService: mealLogService}
}

func (h *MealLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	logs := router.Group("/meal-logs")
	{
		logs.GET("", h.ListMealLogs)
		logs.GET("/:id", h.GetMealLog)
		logs.POST("", h.CreateMealLog)
		logs.PATCH("/:id", h.UpdateMealLog)
		logs.PUT("/:id", h.UpdateMealLog)
		logs.DELETE("/:id", h.DeleteMealLog)
	}
}

// CreateMealLogResponse is the body of a successful meal log creation.
// Warning is set when the recipe's lastMade date could not be updated.
type CreateMealLogResponse struct {
	MealLog *model.MealLog `json:"mealLog"`
	Warning string         `json:"warning,omitempty"`
}

func (h *MealLogHandler) ListMealLogs(c *gin.Context) {
	logs, err := h.mealLogService.ListMealLogs(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mealLogs": logs,
	})
}

func (h *MealLogHandler) GetMealLog(c *gin.Context) {
	mealLog, err := h.mealLogService.GetMealLog(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, mealLog)
}

func (h *MealLogHandler) CreateMealLog(c *gin.Context) {
	var in service.MealLogInput
	if !bindJSON(c, &in) {
		return
	}

	created, err := h.mealLogService.CreateMealLog(c.Request.Context(), &in)
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := CreateMealLogResponse{MealLog: created.MealLog}
	if created.Warning != nil {
		resp.Warning = created.Warning.Error()
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MealLogHandler) UpdateMealLog(c *gin.Context) {
	var patch model.MealLogPatch
	if !bindJSON(c, &patch) {
		return
	}

	mealLog, err := h.mealLogService.UpdateMealLog(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, mealLog)
}

func (h *MealLogHandler) DeleteMealLog(c *gin.Context) {
	if err := h.mealLogService.DeleteMealLog(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

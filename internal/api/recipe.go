package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealbook/backend/internal/filter"
	"github.com/pageza/mealbook/backend/internal/model"
	"github.com/pageza/mealbook/backend/internal/service"
)

type RecipeHandler struct {
	recipeService  service.IRecipeService
	mealLogService service.IMealLogService
}

func NewRecipeHandler(recipeService service.IRecipeService, mealLogService service.IMealLogService) *RecipeHandler {
	return &RecipeHandler{
		recipeService:  recipeService,
		mealLogService: mealLogService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PATCH("/:id", h.UpdateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.GET("/:id/meal-logs", h.ListRecipeMealLogs)
	}
}

// ListRecipes returns the catalog narrowed by the q, category, difficulty
// and prepTime query parameters
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	criteria := filter.Criteria{
		Search:     c.Query("q"),
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		PrepTime:   c.Query("prepTime"),
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), criteria)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var recipe model.Recipe
	if !bindJSON(c, &recipe) {
		return
	}

	created, err := h.recipeService.CreateRecipe(c.Request.Context(), &recipe)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateRecipe merges the supplied fields into the stored recipe. PUT and
// PATCH behave the same.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var patch model.RecipePatch
	if !bindJSON(c, &patch) {
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if err := h.recipeService.DeleteRecipe(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListRecipeMealLogs returns the meal logs recorded for one recipe
func (h *RecipeHandler) ListRecipeMealLogs(c *gin.Context) {
	logs, err := h.mealLogService.ListMealLogsForRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mealLogs": logs,
	})
}

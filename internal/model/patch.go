package model

import (
	"fmt"
	"strings"
)

// RecipePatch is a partial recipe update. Nil fields are left unchanged.
// dateAdded is absent on purpose: it is set once by the store.
type RecipePatch struct {
	Name         *string       `json:"name,omitempty"`
	Description  *string       `json:"description,omitempty"`
	Category     *Category     `json:"category,omitempty"`
	Difficulty   *Difficulty   `json:"difficulty,omitempty"`
	PrepTime     *int          `json:"prepTime,omitempty"`
	CookTime     *int          `json:"cookTime,omitempty"`
	Servings     *int          `json:"servings,omitempty"`
	Image        *string       `json:"image,omitempty"`
	Ingredients  *[]Ingredient `json:"ingredients,omitempty"`
	Instructions *[]string     `json:"instructions,omitempty"`
	Tags         *[]string     `json:"tags,omitempty"`
	Source       *string       `json:"source,omitempty"`
	LastMade     *string       `json:"lastMade,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p RecipePatch) Empty() bool {
	return len(p.Updates()) == 0
}

// Validate checks only the fields present in the patch.
func (p RecipePatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return NewValidationError("name", "must not be empty")
	}
	if p.Category != nil && !p.Category.Valid() {
		return NewValidationError("category", fmt.Sprintf("unknown category %q", *p.Category))
	}
	if p.Difficulty != nil && !p.Difficulty.Valid() {
		return NewValidationError("difficulty", fmt.Sprintf("unknown difficulty %q", *p.Difficulty))
	}
	if p.PrepTime != nil && *p.PrepTime < 0 {
		return NewValidationError("prepTime", "must not be negative")
	}
	if p.CookTime != nil && *p.CookTime < 0 {
		return NewValidationError("cookTime", "must not be negative")
	}
	if p.Servings != nil && *p.Servings < 1 {
		return NewValidationError("servings", "must be at least 1")
	}
	if p.LastMade != nil && *p.LastMade != "" && !ValidDate(*p.LastMade) {
		return NewValidationError("lastMade", fmt.Sprintf("must be a %s date", DateLayout))
	}
	return nil
}

// Updates returns the column map for the fields present in the patch.
func (p RecipePatch) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.Difficulty != nil {
		updates["difficulty"] = *p.Difficulty
	}
	if p.PrepTime != nil {
		updates["prep_time"] = *p.PrepTime
	}
	if p.CookTime != nil {
		updates["cook_time"] = *p.CookTime
	}
	if p.Servings != nil {
		updates["servings"] = *p.Servings
	}
	if p.Image != nil {
		updates["image"] = *p.Image
	}
	if p.Ingredients != nil {
		updates["ingredients"] = Ingredients(*p.Ingredients)
	}
	if p.Instructions != nil {
		updates["instructions"] = StringList(*p.Instructions)
	}
	if p.Tags != nil {
		updates["tags"] = NormalizeTags(*p.Tags)
	}
	if p.Source != nil {
		updates["source"] = *p.Source
	}
	if p.LastMade != nil {
		updates["last_made"] = *p.LastMade
	}
	return updates
}

// MealLogPatch is a partial meal log update. Nil fields are left unchanged.
type MealLogPatch struct {
	RecipeID       *string   `json:"recipeId,omitempty"`
	Date           *string   `json:"date,omitempty"`
	Time           *string   `json:"time,omitempty"`
	Photo          *string   `json:"photo,omitempty"`
	Rating         *int      `json:"rating,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	Modifications  *string   `json:"modifications,omitempty"`
	ServingsMade   *int      `json:"servingsMade,omitempty"`
	WhoAte         *[]string `json:"whoAte,omitempty"`
	WouldMakeAgain *bool     `json:"wouldMakeAgain,omitempty"`
}

func (p MealLogPatch) Empty() bool {
	return len(p.Updates()) == 0
}

func (p MealLogPatch) Validate() error {
	if p.RecipeID != nil && *p.RecipeID == "" {
		return NewValidationError("recipeId", "must not be empty")
	}
	if p.Date != nil && !ValidDate(*p.Date) {
		return NewValidationError("date", fmt.Sprintf("must be a %s date", DateLayout))
	}
	if p.Time != nil && *p.Time != "" && !timeOfDayRx.MatchString(*p.Time) {
		return NewValidationError("time", "must be HH:MM")
	}
	if p.Rating != nil {
		if err := validateRating(*p.Rating); err != nil {
			return err
		}
	}
	if p.ServingsMade != nil && *p.ServingsMade < 1 {
		return NewValidationError("servingsMade", "must be at least 1")
	}
	if p.WhoAte != nil {
		return validateDiners(*p.WhoAte)
	}
	return nil
}

func (p MealLogPatch) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.RecipeID != nil {
		updates["recipe_id"] = *p.RecipeID
	}
	if p.Date != nil {
		updates["date"] = *p.Date
	}
	if p.Time != nil {
		updates["time"] = *p.Time
	}
	if p.Photo != nil {
		updates["photo"] = *p.Photo
	}
	if p.Rating != nil {
		updates["rating"] = *p.Rating
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}
	if p.Modifications != nil {
		updates["modifications"] = *p.Modifications
	}
	if p.ServingsMade != nil {
		updates["servings_made"] = *p.ServingsMade
	}
	if p.WhoAte != nil {
		updates["who_ate"] = NormalizeDiners(*p.WhoAte)
	}
	if p.WouldMakeAgain != nil {
		updates["would_make_again"] = *p.WouldMakeAgain
	}
	return updates
}

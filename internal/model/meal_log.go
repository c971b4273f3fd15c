package model

import (
	"fmt"
	"regexp"
	"time"
)

// Diner identifies who ate a logged meal.
type Diner string

const (
	DinerYou     Diner = "you"
	DinerPartner Diner = "partner"
	DinerBoth    Diner = "both"
)

func (d Diner) Valid() bool {
	return d == DinerYou || d == DinerPartner || d == DinerBoth
}

const (
	MinRating = 0
	MaxRating = 5
)

var timeOfDayRx = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// MealLog records that a recipe was cooked on a given date.
type MealLog struct {
	ID             string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	RecipeID       string     `gorm:"type:varchar(36);not null;index" json:"recipeId"`
	Date           string     `gorm:"size:10;not null;index" json:"date"`
	Time           string     `gorm:"size:5" json:"time,omitempty"`
	Photo          string     `gorm:"type:text" json:"photo,omitempty"`
	Rating         int        `json:"rating"`
	Notes          string     `gorm:"type:text" json:"notes"`
	Modifications  string     `gorm:"type:text" json:"modifications"`
	ServingsMade   int        `json:"servingsMade"`
	WhoAte         StringList `gorm:"type:text;not null;default:'[]'" json:"whoAte"`
	WouldMakeAgain bool       `json:"wouldMakeAgain"`
}

// Validate checks a meal log before it is stored.
func (m *MealLog) Validate() error {
	if m.RecipeID == "" {
		return NewValidationError("recipeId", "is required")
	}
	if !ValidDate(m.Date) {
		return NewValidationError("date", fmt.Sprintf("must be a %s date", DateLayout))
	}
	if m.Time != "" && !timeOfDayRx.MatchString(m.Time) {
		return NewValidationError("time", "must be HH:MM")
	}
	if err := validateRating(m.Rating); err != nil {
		return err
	}
	if m.ServingsMade < 1 {
		return NewValidationError("servingsMade", "must be at least 1")
	}
	return validateDiners(m.WhoAte)
}

// NormalizeDiners removes duplicate diners while keeping their order.
func NormalizeDiners(diners []string) StringList {
	out := make(StringList, 0, len(diners))
	seen := make(map[string]struct{}, len(diners))
	for _, d := range diners {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

func validateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return NewValidationError("rating", fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
	}
	return nil
}

func validateDiners(diners []string) error {
	for _, d := range diners {
		if !Diner(d).Valid() {
			return NewValidationError("whoAte", fmt.Sprintf("unknown diner %q", d))
		}
	}
	return nil
}

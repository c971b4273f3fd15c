// Package filter narrows a recipe collection by free text and facet buckets.
package filter

import (
	"strings"

	"github.com/pageza/mealbook/backend/internal/model"
)

// All disables a facet.
const All = "all"

// PrepTimeBucket is a coarse prep-time range.
type PrepTimeBucket string

const (
	PrepAny     PrepTimeBucket = All
	PrepUnder15 PrepTimeBucket = "15"
	Prep15To30  PrepTimeBucket = "30"
	Prep30To60  PrepTimeBucket = "60"
	PrepOver60  PrepTimeBucket = "60+"
)

// Contains reports whether minutes falls in the bucket. Boundaries are
// asymmetric: 15 belongs to "30" (inclusive lower bound) while 30 belongs to
// "30" as well, not "60" (exclusive lower bound).
func (b PrepTimeBucket) Contains(minutes int) bool {
	switch b {
	case PrepUnder15:
		return minutes < 15
	case Prep15To30:
		return minutes >= 15 && minutes <= 30
	case Prep30To60:
		return minutes > 30 && minutes <= 60
	case PrepOver60:
		return minutes > 60
	default:
		return true
	}
}

// Criteria holds the four filter inputs.
type Criteria struct {
	Search     string
	Category   string
	Difficulty string
	PrepTime   string
}

// Normalize maps empty and unrecognized facet values to All.
func (c Criteria) Normalize() Criteria {
	if !model.Category(c.Category).Valid() {
		c.Category = All
	}
	if !model.Difficulty(c.Difficulty).Valid() {
		c.Difficulty = All
	}
	switch PrepTimeBucket(c.PrepTime) {
	case PrepUnder15, Prep15To30, Prep30To60, PrepOver60:
	default:
		c.PrepTime = All
	}
	return c
}

// IsZero reports whether the criteria let every recipe through.
func (c Criteria) IsZero() bool {
	n := c.Normalize()
	return n.Search == "" && n.Category == All && n.Difficulty == All && n.PrepTime == All
}

// Matches reports whether r passes every filter.
func (c Criteria) Matches(r *model.Recipe) bool {
	c = c.Normalize()
	return matchesSearch(r, strings.ToLower(c.Search)) &&
		(c.Category == All || string(r.Category) == c.Category) &&
		(c.Difficulty == All || string(r.Difficulty) == c.Difficulty) &&
		PrepTimeBucket(c.PrepTime).Contains(r.PrepTime)
}

// Apply returns the recipes that match c, in their original order.
// The input slice is not modified.
func Apply(recipes []*model.Recipe, c Criteria) []*model.Recipe {
	c = c.Normalize()
	term := strings.ToLower(c.Search)

	out := make([]*model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r == nil || !matchesSearch(r, term) {
			continue
		}
		if c.Category != All && string(r.Category) != c.Category {
			continue
		}
		if c.Difficulty != All && string(r.Difficulty) != c.Difficulty {
			continue
		}
		if !PrepTimeBucket(c.PrepTime).Contains(r.PrepTime) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// term must already be lower-cased.
func matchesSearch(r *model.Recipe, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Name), term) ||
		strings.Contains(strings.ToLower(r.Description), term) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Ingredient), term) {
			return true
		}
	}
	return false
}

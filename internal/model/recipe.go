package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DateLayout is the calendar date format used for dateAdded, lastMade and meal log dates.
const DateLayout = "2006-01-02"

// Category is the meal slot a recipe belongs to.
type Category string

const (
	CategoryMorning  Category = "morning"
	CategoryLunch    Category = "lunch"
	CategoryEvening  Category = "evening"
	CategorySnacks   Category = "snacks"
	CategoryDesserts Category = "desserts"
	CategoryDrinks   Category = "drinks"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryMorning,
	CategoryLunch,
	CategoryEvening,
	CategorySnacks,
	CategoryDesserts,
	CategoryDrinks,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Difficulty is how demanding a recipe is to cook.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) Valid() bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

// Ingredient is one line of a recipe's ingredient list. Quantity and unit
// stay free text so values like "1/2" survive untouched.
type Ingredient struct {
	Quantity   string `json:"quantity"`
	Unit       string `json:"unit"`
	Ingredient string `json:"ingredient"`
}

// Ingredients is an ordered ingredient list stored as a JSON column.
type Ingredients []Ingredient

// Value implements the driver.Valuer interface
func (a Ingredients) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (a *Ingredients) Scan(value interface{}) error {
	if value == nil {
		*a = Ingredients{}
		return nil
	}
	bytes, err := columnBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, a)
}

// StringList is an ordered list of strings stored as a JSON column. It backs
// instructions, tags and the whoAte set.
type StringList []string

// Value implements the driver.Valuer interface
func (a StringList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (a *StringList) Scan(value interface{}) error {
	if value == nil {
		*a = StringList{}
		return nil
	}
	bytes, err := columnBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, a)
}

func columnBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", value)
	}
}

// Recipe is a stored dish definition.
type Recipe struct {
	ID           string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Category     Category       `gorm:"size:20;index" json:"category"`
	Difficulty   Difficulty     `gorm:"size:20" json:"difficulty"`
	PrepTime     int            `json:"prepTime"`
	CookTime     int            `json:"cookTime"`
	Servings     int            `json:"servings"`
	Image        string         `gorm:"type:text" json:"image,omitempty"`
	Ingredients  Ingredients    `gorm:"type:text;not null;default:'[]'" json:"ingredients"`
	Instructions StringList     `gorm:"type:text;not null;default:'[]'" json:"instructions"`
	Tags         StringList     `gorm:"type:text;not null;default:'[]'" json:"tags"`
	Source       string         `gorm:"size:255" json:"source,omitempty"`
	DateAdded    string         `gorm:"size:10;index" json:"dateAdded"`
	LastMade     string         `gorm:"size:10" json:"lastMade,omitempty"`
}

// Validate checks the fields a caller supplies when creating a recipe.
// Store-assigned fields (ID, DateAdded, LastMade) are not inspected.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return NewValidationError("name", "is required")
	}
	if !r.Category.Valid() {
		return NewValidationError("category", fmt.Sprintf("unknown category %q", r.Category))
	}
	if !r.Difficulty.Valid() {
		return NewValidationError("difficulty", fmt.Sprintf("unknown difficulty %q", r.Difficulty))
	}
	if r.PrepTime < 0 {
		return NewValidationError("prepTime", "must not be negative")
	}
	if r.CookTime < 0 {
		return NewValidationError("cookTime", "must not be negative")
	}
	if r.Servings < 1 {
		return NewValidationError("servings", "must be at least 1")
	}
	return nil
}

// NormalizeTags trims every tag, drops empty ones and removes duplicates,
// keeping the first occurrence so display order follows insertion order.
func NormalizeTags(tags []string) StringList {
	out := make(StringList, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// ValidDate reports whether s is a calendar date in DateLayout.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Today returns the current UTC date in DateLayout.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

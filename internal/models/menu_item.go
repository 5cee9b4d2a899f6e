package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Known menu categories. Stores may also define their own labels, see
// ValidateCategory.
const (
	CategoryFood    = "food"
	CategoryDrink   = "drink"
	CategorySnack   = "snack"
	CategoryDessert = "dessert"
	CategoryOther   = "other"
)

// Presentation thresholds carried over from the storefront: a badge is shown
// once an item collects enough views.
const (
	PopularViewsMin  = 80
	PopularViewsMax  = 150
	TrendingViewsMin = 150
)

var KnownCategories = []string{
	CategoryFood,
	CategoryDrink,
	CategorySnack,
	CategoryDessert,
	CategoryOther,
}

var customCategoryPattern = regexp.MustCompile(`^[a-z0-9 -]{2,20}$`)

type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Price       int64              `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Photo       string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Views       int64              `bson:"views" json:"views"`
	SortOrder   int                `bson:"sortOrder" json:"sortOrder"`
	Badge       string             `bson:"-" json:"badge,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

func IsKnownCategory(name string) bool {
	for _, known := range KnownCategories {
		if name == known {
			return true
		}
	}
	return false
}

// ValidateCategory accepts either a known category or a store-defined label:
// lowercase letters, digits, spaces and hyphens, 2-20 characters.
func ValidateCategory(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("category required")
	}
	if IsKnownCategory(trimmed) {
		return nil
	}
	if !customCategoryPattern.MatchString(trimmed) {
		return fmt.Errorf("invalid category: %s", trimmed)
	}
	return nil
}

// BadgeForViews maps a view count onto the storefront badge shown next to an
// item. Empty string means no badge.
func BadgeForViews(views int64) string {
	switch {
	case views > TrendingViewsMin:
		return "trending"
	case views > PopularViewsMin && views <= PopularViewsMax:
		return "popular"
	default:
		return ""
	}
}

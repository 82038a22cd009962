package entities

import "time"

// Recipe holds the catalog row. AggregatedRating and ReviewCount are derived
// from reviews and are only ever written by the review recompute step, inside
// the same transaction as the review mutation that invalidated them.
// TotalTime is always derived as prep+cook and never settable on its own.
type Recipe struct {
	ID            int64      `gorm:"primaryKey" json:"recipe_id"`
	Name          string     `gorm:"size:255;not null" json:"name"`
	AuthorID      int64      `gorm:"not null;index" json:"author_id"`
	CookTime      *string    `gorm:"size:32" json:"cook_time,omitempty"`
	PrepTime      *string    `gorm:"size:32" json:"prep_time,omitempty"`
	TotalTime     *string    `gorm:"size:32" json:"total_time,omitempty"`
	DatePublished *time.Time `gorm:"index" json:"date_published,omitempty"`
	Description   string     `gorm:"type:text" json:"description"`
	Category      string     `gorm:"size:255;index" json:"recipe_category"`

	AggregatedRating *float64 `json:"aggregated_rating,omitempty"`
	ReviewCount      int      `gorm:"not null;default:0" json:"review_count"`

	Calories            *float64 `json:"calories,omitempty"`
	FatContent          *float64 `json:"fat_content,omitempty"`
	SaturatedFatContent *float64 `json:"saturated_fat_content,omitempty"`
	CholesterolContent  *float64 `json:"cholesterol_content,omitempty"`
	SodiumContent       *float64 `json:"sodium_content,omitempty"`
	CarbohydrateContent *float64 `json:"carbohydrate_content,omitempty"`
	FiberContent        *float64 `json:"fiber_content,omitempty"`
	SugarContent        *float64 `json:"sugar_content,omitempty"`
	ProteinContent      *float64 `json:"protein_content,omitempty"`
	Servings            *int     `json:"recipe_servings,omitempty"`
	Yield               *string  `gorm:"size:255" json:"recipe_yield,omitempty"`
	ImageURL            string   `gorm:"size:512" json:"image_url,omitempty"`

	Author *User `gorm:"foreignKey:AuthorID" json:"-"`
}

// RecipeIngredient stores one ingredient entry of a recipe. The composite
// primary key collapses duplicates per recipe; retrieval always orders by
// lower(ingredient), ingredient.
type RecipeIngredient struct {
	RecipeID   int64  `gorm:"primaryKey" json:"recipe_id"`
	Ingredient string `gorm:"primaryKey;size:512" json:"ingredient"`
}

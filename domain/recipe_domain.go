package domain

import "time"

var (
	MessageSuccessCreateRecipe = "recipe created successfully"
	MessageSuccessGetRecipe    = "success get recipe detail"
	MessageSuccessSearchRecipe = "success search recipes"
	MessageSuccessUpdateTimes  = "recipe times updated successfully"
	MessageSuccessDeleteRecipe = "recipe deleted successfully"
	MessageSuccessUploadImage  = "recipe image uploaded successfully"
	MessageSuccessAnalytics    = "success get analytics result"

	MessageFailedCreateRecipe = "failed to create recipe"
	MessageFailedGetRecipe    = "failed to get recipe detail"
	MessageFailedSearchRecipe = "failed to search recipes"
	MessageFailedUpdateTimes  = "failed to update recipe times"
	MessageFailedDeleteRecipe = "failed to delete recipe"
	MessageFailedUploadImage  = "failed to upload recipe image"
	MessageFailedAnalytics    = "failed to get analytics result"
)

// Sort modes accepted by SearchRecipes. Anything else falls back to
// ascending id order.
const (
	SortRatingDesc  = "rating_desc"
	SortDateDesc    = "date_desc"
	SortCaloriesAsc = "calories_asc"
	SortLikesDesc   = "likes_desc"
	FeedMaxPageSize = 200
	DefaultPageSize = 20
	TopComplexLimit = 3
	MaxRatingValue  = 5
	MinRatingValue  = 1
)

type (
	CreateRecipeRequest struct {
		Name                string   `json:"name" validate:"required"`
		CookTime            *string  `json:"cook_time"`
		PrepTime            *string  `json:"prep_time"`
		Description         string   `json:"description"`
		Category            string   `json:"recipe_category"`
		Ingredients         []string `json:"recipe_ingredient_parts"`
		Calories            *float64 `json:"calories"`
		FatContent          *float64 `json:"fat_content"`
		SaturatedFatContent *float64 `json:"saturated_fat_content"`
		CholesterolContent  *float64 `json:"cholesterol_content"`
		SodiumContent       *float64 `json:"sodium_content"`
		CarbohydrateContent *float64 `json:"carbohydrate_content"`
		FiberContent        *float64 `json:"fiber_content"`
		SugarContent        *float64 `json:"sugar_content"`
		ProteinContent      *float64 `json:"protein_content"`
		Servings            *int     `json:"recipe_servings" validate:"omitempty,gt=0"`
		Yield               *string  `json:"recipe_yield"`
	}

	CreateRecipeResponse struct {
		RecipeID int64 `json:"recipe_id"`
	}

	RecipeDetail struct {
		RecipeID            int64      `json:"recipe_id"`
		Name                string     `json:"name"`
		AuthorID            int64      `json:"author_id"`
		AuthorName          string     `json:"author_name"`
		CookTime            *string    `json:"cook_time"`
		PrepTime            *string    `json:"prep_time"`
		TotalTime           *string    `json:"total_time"`
		DatePublished       *time.Time `json:"date_published"`
		Description         string     `json:"description"`
		Category            string     `json:"recipe_category"`
		Ingredients         []string   `json:"recipe_ingredient_parts"`
		AggregatedRating    *float64   `json:"aggregated_rating"`
		ReviewCount         int        `json:"review_count"`
		Calories            *float64   `json:"calories"`
		FatContent          *float64   `json:"fat_content"`
		SaturatedFatContent *float64   `json:"saturated_fat_content"`
		CholesterolContent  *float64   `json:"cholesterol_content"`
		SodiumContent       *float64   `json:"sodium_content"`
		CarbohydrateContent *float64   `json:"carbohydrate_content"`
		FiberContent        *float64   `json:"fiber_content"`
		SugarContent        *float64   `json:"sugar_content"`
		ProteinContent      *float64   `json:"protein_content"`
		Servings            *int       `json:"recipe_servings"`
		Yield               *string    `json:"recipe_yield"`
		ImageURL            string     `json:"image_url,omitempty"`
	}

	SearchRecipesRequest struct {
		Keyword   string
		Category  string
		MinRating *float64
		Page      int
		Size      int
		Sort      string
	}

	UpdateTimesRequest struct {
		CookTime *string `json:"cook_time"`
		PrepTime *string `json:"prep_time"`
	}

	UploadImageResponse struct {
		ImageURL string `json:"image_url"`
	}

	ClosestCaloriePair struct {
		RecipeA    int64   `json:"recipe_a"`
		RecipeB    int64   `json:"recipe_b"`
		CaloriesA  float64 `json:"calories_a"`
		CaloriesB  float64 `json:"calories_b"`
		Difference float64 `json:"difference"`
	}

	ComplexRecipe struct {
		RecipeID        int64  `json:"recipe_id"`
		Name            string `json:"name"`
		IngredientCount int    `json:"ingredient_count"`
	}
)

package domain

import "time"

var (
	MessageSuccessImport = "data imported successfully"
	MessageFailedImport  = "failed to import data"
)

// Import records mirror the collaborator contract: nested collections are
// embedded and every key conflict on re-import is a no-op.
type (
	UserImportRecord struct {
		AuthorID       int64   `json:"author_id" validate:"required,gt=0"`
		AuthorName     string  `json:"author_name" validate:"required"`
		Gender         string  `json:"gender"`
		Age            int     `json:"age"`
		Password       string  `json:"password"`
		IsDeleted      bool    `json:"is_deleted"`
		FollowerUsers  []int64 `json:"follower_users"`
		FollowingUsers []int64 `json:"following_users"`
	}

	RecipeImportRecord struct {
		RecipeID            int64      `json:"recipe_id" validate:"required,gt=0"`
		Name                string     `json:"name" validate:"required"`
		AuthorID            int64      `json:"author_id" validate:"required,gt=0"`
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
	}

	ReviewImportRecord struct {
		ReviewID      int64      `json:"review_id" validate:"required,gt=0"`
		RecipeID      int64      `json:"recipe_id" validate:"required,gt=0"`
		AuthorID      int64      `json:"author_id" validate:"required,gt=0"`
		Rating        int        `json:"rating"`
		Review        string     `json:"review"`
		DateSubmitted *time.Time `json:"date_submitted"`
		DateModified  *time.Time `json:"date_modified"`
		Likes         []int64    `json:"likes"`
	}

	ImportRequest struct {
		Users   []UserImportRecord   `json:"users" validate:"dive"`
		Recipes []RecipeImportRecord `json:"recipes" validate:"dive"`
		Reviews []ReviewImportRecord `json:"reviews" validate:"dive"`
	}
)

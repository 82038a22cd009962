package domain

import "time"

var (
	MessageSuccessAddReview    = "review added successfully"
	MessageSuccessEditReview   = "review edited successfully"
	MessageSuccessDeleteReview = "review deleted successfully"
	MessageSuccessLikeReview   = "review like state updated"
	MessageSuccessListReviews  = "success list reviews"

	MessageFailedAddReview    = "failed to add review"
	MessageFailedEditReview   = "failed to edit review"
	MessageFailedDeleteReview = "failed to delete review"
	MessageFailedLikeReview   = "failed to update review like state"
	MessageFailedListReviews  = "failed to list reviews"
)

type (
	AddReviewRequest struct {
		RecipeID int64  `json:"recipe_id" validate:"required,gt=0"`
		Rating   int    `json:"rating" validate:"required"`
		Review   string `json:"review"`
	}

	AddReviewResponse struct {
		ReviewID int64 `json:"review_id"`
	}

	EditReviewRequest struct {
		RecipeID int64  `json:"recipe_id" validate:"required,gt=0"`
		ReviewID int64  `json:"review_id" validate:"required,gt=0"`
		Rating   int    `json:"rating" validate:"required"`
		Review   string `json:"review"`
	}

	LikeResponse struct {
		ReviewID  int64 `json:"review_id"`
		LikeCount int64 `json:"like_count"`
	}

	ReviewDetail struct {
		ReviewID      int64     `json:"review_id"`
		RecipeID      int64     `json:"recipe_id"`
		AuthorID      int64     `json:"author_id"`
		AuthorName    string    `json:"author_name"`
		Rating        int       `json:"rating"`
		Review        string    `json:"review"`
		DateSubmitted time.Time `json:"date_submitted"`
		DateModified  time.Time `json:"date_modified"`
		Likes         []int64   `json:"likes"`
		LikeCount     int64     `json:"like_count"`
	}

	ListReviewsRequest struct {
		RecipeID int64
		Page     int
		Size     int
		Sort     string
	}
)

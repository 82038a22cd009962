package domain

import "time"

var (
	MessageSuccessRegister      = "user registered successfully"
	MessageSuccessLogin         = "login successful"
	MessageSuccessGetUser       = "success get user detail"
	MessageSuccessUpdateProfile = "profile updated successfully"
	MessageSuccessDeleteAccount = "account deleted successfully"
	MessageSuccessToggleFollow  = "follow state toggled successfully"
	MessageSuccessGetFeed       = "success get feed"

	MessageFailedRegister      = "failed to register user"
	MessageFailedLogin         = "authentication did not succeed"
	MessageFailedGetUser       = "failed to get user detail"
	MessageFailedUpdateProfile = "failed to update profile"
	MessageFailedDeleteAccount = "failed to delete account"
	MessageFailedToggleFollow  = "failed to toggle follow state"
	MessageFailedGetFeed       = "failed to get feed"
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Password string `json:"password" validate:"required"`
		Gender   string `json:"gender" validate:"required"`
		Birthday string `json:"birthday" validate:"required"`
		Email    string `json:"email" validate:"omitempty,email"`
	}

	RegisterResponse struct {
		AuthorID int64 `json:"author_id"`
	}

	LoginRequest struct {
		AuthorID int64  `json:"author_id" validate:"required,gt=0"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AuthorID int64  `json:"author_id"`
		Token    string `json:"token"`
	}

	// UserDetail carries derived follow information computed from the edge
	// table at read time.
	UserDetail struct {
		AuthorID       int64   `json:"author_id"`
		AuthorName     string  `json:"author_name"`
		Gender         string  `json:"gender"`
		Age            int     `json:"age"`
		Followers      int64   `json:"followers"`
		Following      int64   `json:"following"`
		FollowerUsers  []int64 `json:"follower_users"`
		FollowingUsers []int64 `json:"following_users"`
		IsDeleted      bool    `json:"is_deleted"`
	}

	UpdateProfileRequest struct {
		Gender *string `json:"gender" validate:"omitempty,oneof=Male Female"`
		Age    *int    `json:"age" validate:"omitempty,gt=0"`
	}

	ToggleFollowRequest struct {
		FolloweeID int64 `json:"followee_id" validate:"required,gt=0"`
	}

	ToggleFollowResponse struct {
		Following bool `json:"following"`
	}

	FeedItem struct {
		RecipeID         int64      `json:"recipe_id"`
		Name             string     `json:"name"`
		AuthorID         int64      `json:"author_id"`
		AuthorName       string     `json:"author_name"`
		DatePublished    *time.Time `json:"date_published"`
		AggregatedRating *float64   `json:"aggregated_rating"`
		ReviewCount      int        `json:"review_count"`
	}

	FollowRatioResult struct {
		AuthorID   int64   `json:"author_id"`
		AuthorName string  `json:"author_name"`
		Ratio      float64 `json:"ratio"`
	}
)

package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Specific errors wrap one of the three bases so handlers
// can map them to a status code with errors.Is. ErrLoginFailed is deliberately
// not part of the taxonomy: login collapses every failure cause (unknown id,
// inactive user, wrong password, malformed input) into this one sentinel so
// the response never leaks which check failed.
var (
	ErrAuthFailed      = errors.New("authentication failed")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")

	ErrLoginFailed = errors.New("login failed")

	ErrUserInactive    = fmt.Errorf("%w: user missing or inactive", ErrAuthFailed)
	ErrNotOwner        = fmt.Errorf("%w: operation restricted to the owner", ErrAuthFailed)
	ErrSelfFollow      = fmt.Errorf("%w: cannot follow yourself", ErrAuthFailed)
	ErrSelfLike        = fmt.Errorf("%w: cannot like your own review", ErrAuthFailed)
	ErrNotReviewAuthor = fmt.Errorf("%w: operation restricted to the review author", ErrAuthFailed)

	ErrNameTaken         = fmt.Errorf("%w: author name already taken", ErrInvalidArgument)
	ErrInvalidGender     = fmt.Errorf("%w: gender must be Male or Female", ErrInvalidArgument)
	ErrInvalidAge        = fmt.Errorf("%w: age must be positive", ErrInvalidArgument)
	ErrInvalidBirthday   = fmt.Errorf("%w: malformed birthday", ErrInvalidArgument)
	ErrInvalidDuration   = fmt.Errorf("%w: malformed ISO-8601 duration", ErrInvalidArgument)
	ErrInvalidRating     = fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidArgument)
	ErrInvalidPagination = fmt.Errorf("%w: page must be >= 1 and size must be > 0", ErrInvalidArgument)
	ErrEmptyRecipeName   = fmt.Errorf("%w: recipe name is empty", ErrInvalidArgument)
	ErrReviewMismatch    = fmt.Errorf("%w: review does not belong to the recipe", ErrInvalidArgument)
	ErrUnknownRecipe     = fmt.Errorf("%w: recipe does not exist", ErrInvalidArgument)

	ErrTokenInvalid = fmt.Errorf("%w: invalid token", ErrAuthFailed)
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrAuthFailed)

	ErrUserNotFound   = fmt.Errorf("%w: user", ErrNotFound)
	ErrRecipeNotFound = fmt.Errorf("%w: recipe", ErrNotFound)
	ErrReviewNotFound = fmt.Errorf("%w: review", ErrNotFound)
	ErrNoResult       = fmt.Errorf("%w: no eligible rows", ErrNotFound)
)

var (
	MessageFailedBodyRequest    = "failed to process request body"
	MessageFailedTokenInvalid   = "invalid or missing token"
	MessageFailedProcessRequest = "failed to process request"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// PageResult is the shape of every paginated query response: page and size
// echo the request, total is the full filtered count.
type PageResult[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}

package review

import (
	"context"
	"errors"
	"time"

	"github.com/ucmiku/CS307ProjectII/domain"
	"github.com/ucmiku/CS307ProjectII/entities"
	"github.com/ucmiku/CS307ProjectII/pkg/recipe"
	"github.com/ucmiku/CS307ProjectII/pkg/user"
)

type (
	ReviewService interface {
		Add(ctx context.Context, actorID int64, req domain.AddReviewRequest) (int64, error)
		Edit(ctx context.Context, actorID, reviewID int64, req domain.EditReviewRequest) error
		Delete(ctx context.Context, actorID, recipeID, reviewID int64) error
		Like(ctx context.Context, actorID, reviewID int64) (domain.LikeResponse, error)
		Unlike(ctx context.Context, actorID, reviewID int64) (domain.LikeResponse, error)
		ListByRecipe(ctx context.Context, req domain.ListReviewsRequest) (domain.PageResult[domain.ReviewDetail], error)
		Refresh(ctx context.Context, recipeID int64) (domain.RecipeDetail, error)
	}

	reviewService struct {
		reviewRepository ReviewRepository
		recipeRepository recipe.RecipeRepository
		userRepository   user.UserRepository
	}
)

func NewReviewService(reviewRepository ReviewRepository, recipeRepository recipe.RecipeRepository, userRepository user.UserRepository) ReviewService {
	return &reviewService{
		reviewRepository: reviewRepository,
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
	}
}

func (s *reviewService) Add(ctx context.Context, actorID int64, req domain.AddReviewRequest) (int64, error) {
	if _, err := s.userRepository.GetActive(ctx, actorID); err != nil {
		return 0, err
	}
	if req.Rating < domain.MinRatingValue || req.Rating > domain.MaxRatingValue {
		return 0, domain.ErrInvalidRating
	}
	// Reviewing a recipe that does not exist is malformed input on this
	// mutation path, not a lookup miss.
	if _, err := s.recipeRepository.GetAuthorID(ctx, req.RecipeID); err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return 0, domain.ErrUnknownRecipe
		}
		return 0, err
	}

	now := time.Now().UTC()
	review := &entities.Review{
		RecipeID:      req.RecipeID,
		AuthorID:      actorID,
		Rating:        req.Rating,
		Body:          req.Review,
		DateSubmitted: now,
		DateModified:  now,
	}
	return s.reviewRepository.CreateWithRecompute(ctx, review)
}

// Edit checks the review/recipe pairing before ownership: a mismatched pair
// is a malformed request, not a permission failure.
func (s *reviewService) Edit(ctx context.Context, actorID, reviewID int64, req domain.EditReviewRequest) error {
	if _, err := s.userRepository.GetActive(ctx, actorID); err != nil {
		return err
	}
	if req.Rating < domain.MinRatingValue || req.Rating > domain.MaxRatingValue {
		return domain.ErrInvalidRating
	}

	review, err := s.reviewRepository.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.RecipeID != req.RecipeID {
		return domain.ErrReviewMismatch
	}
	if review.AuthorID != actorID {
		return domain.ErrNotReviewAuthor
	}

	return s.reviewRepository.UpdateWithRecompute(ctx, reviewID, review.RecipeID, req.Rating, req.Review, time.Now().UTC())
}

func (s *reviewService) Delete(ctx context.Context, actorID, recipeID, reviewID int64) error {
	if _, err := s.userRepository.GetActive(ctx, actorID); err != nil {
		return err
	}

	review, err := s.reviewRepository.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.RecipeID != recipeID {
		return domain.ErrReviewMismatch
	}
	if review.AuthorID != actorID {
		return domain.ErrNotReviewAuthor
	}

	return s.reviewRepository.DeleteWithRecompute(ctx, reviewID, review.RecipeID)
}

// Like is idempotent; liking your own review is rejected.
func (s *reviewService) Like(ctx context.Context, actorID, reviewID int64) (domain.LikeResponse, error) {
	review, err := s.likeTarget(ctx, actorID, reviewID)
	if err != nil {
		return domain.LikeResponse{}, err
	}
	if review.AuthorID == actorID {
		return domain.LikeResponse{}, domain.ErrSelfLike
	}

	count, err := s.reviewRepository.Like(ctx, reviewID, actorID)
	if err != nil {
		return domain.LikeResponse{}, err
	}
	return domain.LikeResponse{ReviewID: reviewID, LikeCount: count}, nil
}

// Unlike is idempotent; removing an absent like just reports the current
// count.
func (s *reviewService) Unlike(ctx context.Context, actorID, reviewID int64) (domain.LikeResponse, error) {
	if _, err := s.likeTarget(ctx, actorID, reviewID); err != nil {
		return domain.LikeResponse{}, err
	}

	count, err := s.reviewRepository.Unlike(ctx, reviewID, actorID)
	if err != nil {
		return domain.LikeResponse{}, err
	}
	return domain.LikeResponse{ReviewID: reviewID, LikeCount: count}, nil
}

func (s *reviewService) ListByRecipe(ctx context.Context, req domain.ListReviewsRequest) (domain.PageResult[domain.ReviewDetail], error) {
	if req.Page < 1 || req.Size <= 0 {
		return domain.PageResult[domain.ReviewDetail]{}, domain.ErrInvalidPagination
	}
	if _, err := s.recipeRepository.GetAuthorID(ctx, req.RecipeID); err != nil {
		return domain.PageResult[domain.ReviewDetail]{}, err
	}

	items, total, err := s.reviewRepository.ListByRecipe(ctx, req)
	if err != nil {
		return domain.PageResult[domain.ReviewDetail]{}, err
	}
	if items == nil {
		items = []domain.ReviewDetail{}
	}

	return domain.PageResult[domain.ReviewDetail]{
		Items: items,
		Page:  req.Page,
		Size:  req.Size,
		Total: total,
	}, nil
}

// Refresh recomputes the recipe aggregate on demand and returns the recipe
// with the fresh values.
func (s *reviewService) Refresh(ctx context.Context, recipeID int64) (domain.RecipeDetail, error) {
	if _, err := s.recipeRepository.GetAuthorID(ctx, recipeID); err != nil {
		return domain.RecipeDetail{}, err
	}
	if err := s.reviewRepository.Refresh(ctx, recipeID); err != nil {
		return domain.RecipeDetail{}, err
	}

	detail, err := s.recipeRepository.GetDetail(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	return *detail, nil
}

func (s *reviewService) likeTarget(ctx context.Context, actorID, reviewID int64) (*entities.Review, error) {
	if _, err := s.userRepository.GetActive(ctx, actorID); err != nil {
		return nil, err
	}
	return s.reviewRepository.GetByID(ctx, reviewID)
}

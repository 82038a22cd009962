package review

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ucmiku/CS307ProjectII/domain"
	"github.com/ucmiku/CS307ProjectII/entities"
)

type (
	ReviewRepository interface {
		GetByID(ctx context.Context, reviewID int64) (*entities.Review, error)
		CreateWithRecompute(ctx context.Context, review *entities.Review) (int64, error)
		UpdateWithRecompute(ctx context.Context, reviewID, recipeID int64, rating int, body string, modified time.Time) error
		DeleteWithRecompute(ctx context.Context, reviewID, recipeID int64) error
		Like(ctx context.Context, reviewID, userID int64) (int64, error)
		Unlike(ctx context.Context, reviewID, userID int64) (int64, error)
		ListByRecipe(ctx context.Context, req domain.ListReviewsRequest) ([]domain.ReviewDetail, int64, error)
		Refresh(ctx context.Context, recipeID int64) error
	}

	reviewRepository struct {
		db *gorm.DB
	}
)

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

type reviewRow struct {
	entities.Review
	AuthorName string
	LikeCount  int64
}

func (r *reviewRepository) GetByID(ctx context.Context, reviewID int64) (*entities.Review, error) {
	var review entities.Review
	if err := r.db.WithContext(ctx).Where("id = ?", reviewID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

// CreateWithRecompute inserts the review and refreshes the recipe aggregate
// in one transaction, so no reader ever sees the new row next to a stale
// aggregate.
func (r *reviewRepository) CreateWithRecompute(ctx context.Context, review *entities.Review) (int64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var nextID int64
		if err := tx.Model(&entities.Review{}).
			Select("COALESCE(MAX(id), 0) + 1").
			Scan(&nextID).Error; err != nil {
			return err
		}
		review.ID = nextID

		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return recompute(tx, review.RecipeID)
	})
	if err != nil {
		return 0, err
	}
	return review.ID, nil
}

func (r *reviewRepository) UpdateWithRecompute(ctx context.Context, reviewID, recipeID int64, rating int, body string, modified time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Review{}).
			Where("id = ?", reviewID).
			Updates(map[string]any{
				"rating":        rating,
				"body":          body,
				"date_modified": modified,
			}).Error; err != nil {
			return err
		}
		return recompute(tx, recipeID)
	})
}

func (r *reviewRepository) DeleteWithRecompute(ctx context.Context, reviewID, recipeID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", reviewID).
			Delete(&entities.ReviewLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", reviewID).
			Delete(&entities.Review{}).Error; err != nil {
			return err
		}
		return recompute(tx, recipeID)
	})
}

// Like inserts the (review, user) pair if absent; a repeated like collapses
// on the composite primary key. Returns the post-operation like count.
func (r *reviewRepository) Like(ctx context.Context, reviewID, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := entities.ReviewLike{ReviewID: reviewID, UserID: userID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
			return err
		}
		return tx.Model(&entities.ReviewLike{}).
			Where("review_id = ?", reviewID).
			Count(&count).Error
	})
	return count, err
}

// Unlike removes the pair when present; removing a non-existent like is a
// no-op. Returns the post-operation like count.
func (r *reviewRepository) Unlike(ctx context.Context, reviewID, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).
			Delete(&entities.ReviewLike{}).Error; err != nil {
			return err
		}
		return tx.Model(&entities.ReviewLike{}).
			Where("review_id = ?", reviewID).
			Count(&count).Error
	})
	return count, err
}

func (r *reviewRepository) ListByRecipe(ctx context.Context, req domain.ListReviewsRequest) ([]domain.ReviewDetail, int64, error) {
	base := r.db.WithContext(ctx).Model(&entities.Review{}).
		Where("reviews.recipe_id = ?", req.RecipeID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orderBy string
	switch req.Sort {
	case domain.SortDateDesc:
		orderBy = "reviews.date_modified DESC, reviews.id ASC"
	case domain.SortLikesDesc:
		orderBy = "like_count DESC, reviews.id ASC"
	default:
		orderBy = "reviews.id ASC"
	}

	var rows []reviewRow
	err := base.
		Joins("JOIN users ON users.id = reviews.author_id").
		Select("reviews.*, users.name AS author_name, " +
			"(SELECT COUNT(*) FROM review_likes WHERE review_likes.review_id = reviews.id) AS like_count").
		Order(orderBy).
		Offset((req.Page - 1) * req.Size).
		Limit(req.Size).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	likes, err := r.likesFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	details := make([]domain.ReviewDetail, 0, len(rows))
	for _, row := range rows {
		likers := likes[row.ID]
		if likers == nil {
			likers = []int64{}
		}
		details = append(details, domain.ReviewDetail{
			ReviewID:      row.ID,
			RecipeID:      row.RecipeID,
			AuthorID:      row.AuthorID,
			AuthorName:    row.AuthorName,
			Rating:        row.Rating,
			Review:        row.Body,
			DateSubmitted: row.DateSubmitted.UTC(),
			DateModified:  row.DateModified.UTC(),
			Likes:         likers,
			LikeCount:     row.LikeCount,
		})
	}
	return details, total, nil
}

// Refresh recomputes the aggregate outside of any review mutation, in its
// own transaction.
func (r *reviewRepository) Refresh(ctx context.Context, recipeID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return recompute(tx, recipeID)
	})
}

// recompute is the single source of truth for a recipe's aggregate fields:
// mean rating over the current reviews rounded half-up to two decimals and
// the exact review count, or NULL/0 when no reviews remain. It always runs
// on the transaction of the mutation that invalidated the aggregate.
func recompute(tx *gorm.DB, recipeID int64) error {
	var stats struct {
		Avg *float64
		Cnt int64
	}
	if err := tx.Model(&entities.Review{}).
		Where("recipe_id = ?", recipeID).
		Select("AVG(rating)::float8 AS avg, COUNT(*) AS cnt").
		Scan(&stats).Error; err != nil {
		return err
	}

	var rating *float64
	if stats.Cnt > 0 && stats.Avg != nil {
		rounded := round2(*stats.Avg)
		rating = &rounded
	}
	return tx.Model(&entities.Recipe{}).
		Where("id = ?", recipeID).
		Updates(map[string]any{
			"aggregated_rating": rating,
			"review_count":      stats.Cnt,
		}).Error
}

// round2 rounds half-up to two decimals; ratings are always positive so
// half-away-from-zero and half-up coincide.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (r *reviewRepository) likesFor(ctx context.Context, reviewIDs []int64) (map[int64][]int64, error) {
	grouped := make(map[int64][]int64, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return grouped, nil
	}

	var rows []entities.ReviewLike
	err := r.db.WithContext(ctx).
		Where("review_id IN ?", reviewIDs).
		Order("review_id, user_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		grouped[row.ReviewID] = append(grouped[row.ReviewID], row.UserID)
	}
	return grouped, nil
}

package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ucmiku/CS307ProjectII/domain"
	"github.com/ucmiku/CS307ProjectII/entities"
)

type (
	UserRepository interface {
		GetByID(ctx context.Context, id int64) (*entities.User, error)
		GetActive(ctx context.Context, id int64) (*entities.User, error)
		NameExists(ctx context.Context, name string) (bool, error)
		CreateUser(ctx context.Context, user *entities.User) (int64, error)
		UpdateProfile(ctx context.Context, id int64, gender *string, age *int) error
		SoftDelete(ctx context.Context, id int64) error
		ToggleFollow(ctx context.Context, followerID, followeeID int64) (bool, error)
		FollowCounts(ctx context.Context, id int64) (followers, following int64, err error)
		FollowerIDs(ctx context.Context, id int64) ([]int64, error)
		FollowingIDs(ctx context.Context, id int64) ([]int64, error)
		Feed(ctx context.Context, userID int64, category string, page, size int) ([]domain.FeedItem, int64, error)
		HighestFollowRatio(ctx context.Context) (*domain.FollowRatioResult, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetActive is the identity guard used by every mutating operation: the id
// must resolve to an existing, non-soft-deleted user.
func (r *userRepository) GetActive(ctx context.Context, id int64) (*entities.User, error) {
	if id <= 0 {
		return nil, domain.ErrUserInactive
	}
	user, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserInactive
		}
		return nil, err
	}
	if user.IsDeleted {
		return nil, domain.ErrUserInactive
	}
	return user, nil
}

func (r *userRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.User{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// CreateUser assigns the next identifier and inserts the row in a single
// transaction so concurrent registrations cannot collide on an id.
func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) (int64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var nextID int64
		if err := tx.Model(&entities.User{}).
			Select("COALESCE(MAX(id), 0) + 1").
			Scan(&nextID).Error; err != nil {
			return err
		}
		user.ID = nextID
		return tx.Create(user).Error
	})
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, gender *string, age *int) error {
	updates := map[string]any{}
	if gender != nil {
		updates["gender"] = *gender
	}
	if age != nil {
		updates["age"] = *age
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Updates(updates).Error
}

// SoftDelete marks the user inactive and removes every follow edge touching
// it, both directions, in one transaction. Recipes and reviews authored by
// the user are left in place.
func (r *userRepository) SoftDelete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.User{}).Where("id = ?", id).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Where("follower_id = ? OR followee_id = ?", id, id).
			Delete(&entities.UserFollow{}).Error
	})
}

// ToggleFollow flips the edge by row presence: a delete that removed a row
// means "now not following", otherwise the edge is inserted. Returns the
// resulting following state.
func (r *userRepository) ToggleFollow(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var following bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Delete(&entities.UserFollow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			following = false
			return nil
		}
		following = true
		return tx.Create(&entities.UserFollow{
			FollowerID: followerID,
			FolloweeID: followeeID,
		}).Error
	})
	return following, err
}

func (r *userRepository) FollowCounts(ctx context.Context, id int64) (int64, int64, error) {
	var followers, following int64
	if err := r.db.WithContext(ctx).Model(&entities.UserFollow{}).
		Where("followee_id = ?", id).Count(&followers).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&entities.UserFollow{}).
		Where("follower_id = ?", id).Count(&following).Error; err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}

func (r *userRepository) FollowerIDs(ctx context.Context, id int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&entities.UserFollow{}).
		Where("followee_id = ?", id).
		Order("follower_id").
		Pluck("follower_id", &ids).Error
	return ids, err
}

func (r *userRepository) FollowingIDs(ctx context.Context, id int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&entities.UserFollow{}).
		Where("follower_id = ?", id).
		Order("followee_id").
		Pluck("followee_id", &ids).Error
	return ids, err
}

func (r *userRepository) Feed(ctx context.Context, userID int64, category string, page, size int) ([]domain.FeedItem, int64, error) {
	followed := r.db.Model(&entities.UserFollow{}).
		Select("followee_id").
		Where("follower_id = ?", userID)

	query := r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Where("recipes.author_id IN (?)", followed)
	if category != "" {
		query = query.Where("recipes.category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.FeedItem
	err := query.
		Joins("JOIN users ON users.id = recipes.author_id").
		Select("recipes.id AS recipe_id, recipes.name AS name, recipes.author_id AS author_id, " +
			"users.name AS author_name, recipes.date_published AS date_published, " +
			"recipes.aggregated_rating AS aggregated_rating, recipes.review_count AS review_count").
		Order("recipes.date_published DESC, recipes.id DESC").
		Offset((page - 1) * size).
		Limit(size).
		Scan(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// HighestFollowRatio derives both counts from the edge table; stored
// counters are never consulted. Returns nil when no active user follows
// anyone.
func (r *userRepository) HighestFollowRatio(ctx context.Context) (*domain.FollowRatioResult, error) {
	const query = `
		SELECT u.id   AS author_id,
		       u.name AS author_name,
		       COALESCE(fc.followers, 0)::float8 / fg.following AS ratio
		FROM users u
		JOIN (
			SELECT follower_id AS id, COUNT(*) AS following
			FROM user_follows
			GROUP BY follower_id
		) fg ON fg.id = u.id
		LEFT JOIN (
			SELECT followee_id AS id, COUNT(*) AS followers
			FROM user_follows
			GROUP BY followee_id
		) fc ON fc.id = u.id
		WHERE u.is_deleted = FALSE
		ORDER BY ratio DESC, u.id ASC
		LIMIT 1`

	var result domain.FollowRatioResult
	res := r.db.WithContext(ctx).Raw(query).Scan(&result)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &result, nil
}

package importer

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ucmiku/CS307ProjectII/entities"
)

// importBatchSize bounds the multi-row INSERT statements the bulk load
// generates.
const importBatchSize = 2000

type (
	ImportRepository interface {
		ImportAll(ctx context.Context, data ImportData) error
	}

	// ImportData holds the fully mapped rows in insertion order.
	ImportData struct {
		Users       []entities.User
		Recipes     []entities.Recipe
		Ingredients []entities.RecipeIngredient
		Reviews     []entities.Review
		Likes       []entities.ReviewLike
		Follows     []entities.UserFollow
	}

	importRepository struct {
		db *gorm.DB
	}
)

func NewImportRepository(db *gorm.DB) ImportRepository {
	return &importRepository{db: db}
}

// ImportAll loads every record set in one transaction, in dependency order.
// Each insert is conflict-do-nothing on its natural key, so re-importing the
// same payload is a no-op and the whole load is all-or-nothing.
func (r *importRepository) ImportAll(ctx context.Context, data ImportData) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insert := func(rows any, count int) error {
			if count == 0 {
				return nil
			}
			return tx.Clauses(clause.OnConflict{DoNothing: true}).
				CreateInBatches(rows, importBatchSize).Error
		}

		if err := insert(&data.Users, len(data.Users)); err != nil {
			return err
		}
		if err := insert(&data.Recipes, len(data.Recipes)); err != nil {
			return err
		}
		if err := insert(&data.Ingredients, len(data.Ingredients)); err != nil {
			return err
		}
		if err := insert(&data.Reviews, len(data.Reviews)); err != nil {
			return err
		}
		if err := insert(&data.Likes, len(data.Likes)); err != nil {
			return err
		}
		return insert(&data.Follows, len(data.Follows))
	})
}

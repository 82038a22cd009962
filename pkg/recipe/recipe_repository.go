package recipe

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ucmiku/CS307ProjectII/domain"
	"github.com/ucmiku/CS307ProjectII/entities"
)

type (
	RecipeRepository interface {
		Create(ctx context.Context, recipe *entities.Recipe, ingredients []string) (int64, error)
		GetDetail(ctx context.Context, recipeID int64) (*domain.RecipeDetail, error)
		GetAuthorID(ctx context.Context, recipeID int64) (int64, error)
		GetTimes(ctx context.Context, recipeID int64) (cook, prep *string, err error)
		UpdateTimes(ctx context.Context, recipeID int64, cook, prep, total *string) error
		UpdateImageURL(ctx context.Context, recipeID int64, imageURL string) error
		Delete(ctx context.Context, recipeID int64) error
		Search(ctx context.Context, req domain.SearchRecipesRequest) ([]domain.RecipeDetail, int64, error)
		ClosestCaloriePair(ctx context.Context) (*domain.ClosestCaloriePair, error)
		TopComplexRecipes(ctx context.Context, limit int) ([]domain.ComplexRecipe, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// recipeRow carries one search/detail result before the ingredient lists are
// attached.
type recipeRow struct {
	entities.Recipe
	AuthorName string
}

// Create assigns the next recipe id and inserts the row together with its
// ingredient set in one transaction. Duplicate ingredient entries collapse on
// the composite primary key.
func (r *recipeRepository) Create(ctx context.Context, recipe *entities.Recipe, ingredients []string) (int64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var nextID int64
		if err := tx.Model(&entities.Recipe{}).
			Select("COALESCE(MAX(id), 0) + 1").
			Scan(&nextID).Error; err != nil {
			return err
		}
		recipe.ID = nextID

		if err := tx.Create(recipe).Error; err != nil {
			return err
		}

		if len(ingredients) == 0 {
			return nil
		}
		rows := make([]entities.RecipeIngredient, 0, len(ingredients))
		for _, part := range ingredients {
			rows = append(rows, entities.RecipeIngredient{
				RecipeID:   recipe.ID,
				Ingredient: part,
			})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	})
	if err != nil {
		return 0, err
	}
	return recipe.ID, nil
}

func (r *recipeRepository) GetDetail(ctx context.Context, recipeID int64) (*domain.RecipeDetail, error) {
	var row recipeRow
	res := r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Joins("JOIN users ON users.id = recipes.author_id").
		Select("recipes.*, users.name AS author_name").
		Where("recipes.id = ?", recipeID).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrRecipeNotFound
	}

	ingredients, err := r.ingredientsFor(ctx, []int64{recipeID})
	if err != nil {
		return nil, err
	}

	detail := toRecipeDetail(row, ingredients[recipeID])
	return &detail, nil
}

func (r *recipeRepository) GetAuthorID(ctx context.Context, recipeID int64) (int64, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Select("author_id").
		Where("id = ?", recipeID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrRecipeNotFound
		}
		return 0, err
	}
	return recipe.AuthorID, nil
}

func (r *recipeRepository) GetTimes(ctx context.Context, recipeID int64) (*string, *string, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Select("cook_time", "prep_time").
		Where("id = ?", recipeID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrRecipeNotFound
		}
		return nil, nil, err
	}
	return recipe.CookTime, recipe.PrepTime, nil
}

// UpdateTimes writes all three duration columns at once so a reader never
// sees a total that disagrees with cook+prep.
func (r *recipeRepository) UpdateTimes(ctx context.Context, recipeID int64, cook, prep, total *string) error {
	return r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Where("id = ?", recipeID).
		Updates(map[string]any{
			"cook_time":  cook,
			"prep_time":  prep,
			"total_time": total,
		}).Error
}

func (r *recipeRepository) UpdateImageURL(ctx context.Context, recipeID int64, imageURL string) error {
	return r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Where("id = ?", recipeID).
		Update("image_url", imageURL).Error
}

// Delete cascades in dependency order inside one transaction:
// likes -> reviews -> ingredients -> the recipe row.
func (r *recipeRepository) Delete(ctx context.Context, recipeID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reviewIDs := tx.Model(&entities.Review{}).
			Select("id").
			Where("recipe_id = ?", recipeID)
		if err := tx.Where("review_id IN (?)", reviewIDs).
			Delete(&entities.ReviewLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).
			Delete(&entities.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).
			Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", recipeID).Delete(&entities.Recipe{}).Error
	})
}

func (r *recipeRepository) Search(ctx context.Context, req domain.SearchRecipesRequest) ([]domain.RecipeDetail, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Joins("JOIN users ON users.id = recipes.author_id").
		Where("users.is_deleted = FALSE")

	if keyword := strings.TrimSpace(req.Keyword); keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("recipes.name ILIKE ? OR recipes.description ILIKE ?", pattern, pattern)
	}
	if category := strings.TrimSpace(req.Category); category != "" {
		query = query.Where("recipes.category = ?", category)
	}
	if req.MinRating != nil {
		query = query.Where("recipes.aggregated_rating >= ?", *req.MinRating)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orderBy string
	switch req.Sort {
	case domain.SortRatingDesc:
		orderBy = "recipes.aggregated_rating DESC NULLS LAST, recipes.date_published DESC NULLS LAST, recipes.id ASC"
	case domain.SortDateDesc:
		orderBy = "recipes.date_published DESC NULLS LAST, recipes.id ASC"
	case domain.SortCaloriesAsc:
		orderBy = "recipes.calories ASC NULLS LAST, recipes.id ASC"
	default:
		orderBy = "recipes.id ASC"
	}

	var rows []recipeRow
	if err := query.
		Select("recipes.*, users.name AS author_name").
		Order(orderBy).
		Offset((req.Page - 1) * req.Size).
		Limit(req.Size).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	ingredients, err := r.ingredientsFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	details := make([]domain.RecipeDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, toRecipeDetail(row, ingredients[row.ID]))
	}
	return details, total, nil
}

// ClosestCaloriePair relies on the fact that after sorting by calories the
// minimal-difference pair is adjacent, so a single window scan replaces the
// quadratic comparison.
func (r *recipeRepository) ClosestCaloriePair(ctx context.Context) (*domain.ClosestCaloriePair, error) {
	const query = `
		WITH ordered AS (
			SELECT id,
			       calories::float8 AS cal,
			       LEAD(id) OVER (ORDER BY calories, id) AS next_id,
			       LEAD(calories::float8) OVER (ORDER BY calories, id) AS next_cal
			FROM recipes
			WHERE calories IS NOT NULL
		)
		SELECT LEAST(id, next_id) AS recipe_a,
		       GREATEST(id, next_id) AS recipe_b,
		       CASE WHEN id <= next_id THEN cal ELSE next_cal END AS calories_a,
		       CASE WHEN id <= next_id THEN next_cal ELSE cal END AS calories_b,
		       ABS(next_cal - cal) AS difference
		FROM ordered
		WHERE next_id IS NOT NULL
		ORDER BY difference ASC, recipe_a ASC, recipe_b ASC
		LIMIT 1`

	var pair domain.ClosestCaloriePair
	res := r.db.WithContext(ctx).Raw(query).Scan(&pair)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &pair, nil
}

// TopComplexRecipes counts distinct (recipe, ingredient) rows; recipes
// without ingredient rows never appear.
func (r *recipeRepository) TopComplexRecipes(ctx context.Context, limit int) ([]domain.ComplexRecipe, error) {
	var results []domain.ComplexRecipe
	err := r.db.WithContext(ctx).Model(&entities.RecipeIngredient{}).
		Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id").
		Select("recipes.id AS recipe_id, recipes.name AS name, COUNT(*) AS ingredient_count").
		Group("recipes.id, recipes.name").
		Order("COUNT(*) DESC, recipes.id ASC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

// ingredientsFor returns each recipe's ingredient list in case-insensitive
// lexicographic order.
func (r *recipeRepository) ingredientsFor(ctx context.Context, recipeIDs []int64) (map[int64][]string, error) {
	grouped := make(map[int64][]string, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return grouped, nil
	}

	var rows []entities.RecipeIngredient
	err := r.db.WithContext(ctx).
		Where("recipe_id IN ?", recipeIDs).
		Order("recipe_id, lower(ingredient), ingredient").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		grouped[row.RecipeID] = append(grouped[row.RecipeID], row.Ingredient)
	}
	return grouped, nil
}

func toRecipeDetail(row recipeRow, ingredients []string) domain.RecipeDetail {
	if ingredients == nil {
		ingredients = []string{}
	}
	return domain.RecipeDetail{
		RecipeID:            row.ID,
		Name:                row.Name,
		AuthorID:            row.AuthorID,
		AuthorName:          row.AuthorName,
		CookTime:            row.CookTime,
		PrepTime:            row.PrepTime,
		TotalTime:           row.TotalTime,
		DatePublished:       row.DatePublished,
		Description:         row.Description,
		Category:            row.Category,
		Ingredients:         ingredients,
		AggregatedRating:    row.AggregatedRating,
		ReviewCount:         row.ReviewCount,
		Calories:            row.Calories,
		FatContent:          row.FatContent,
		SaturatedFatContent: row.SaturatedFatContent,
		CholesterolContent:  row.CholesterolContent,
		SodiumContent:       row.SodiumContent,
		CarbohydrateContent: row.CarbohydrateContent,
		FiberContent:        row.FiberContent,
		SugarContent:        row.SugarContent,
		ProteinContent:      row.ProteinContent,
		Servings:            row.Servings,
		Yield:               row.Yield,
		ImageURL:            row.ImageURL,
	}
}

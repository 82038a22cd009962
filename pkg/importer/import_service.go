package importer

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ucmiku/CS307ProjectII/domain"
	"github.com/ucmiku/CS307ProjectII/entities"
)

type (
	ImportService interface {
		Import(ctx context.Context, req domain.ImportRequest) error
	}

	importService struct {
		importRepository ImportRepository
	}
)

func NewImportService(importRepository ImportRepository) ImportService {
	return &importService{importRepository: importRepository}
}

// Import maps the collaborator payload onto entity rows and hands them to the
// repository as one atomic load. Nested follower/ingredient/like lists are
// flattened into their edge tables; both directions of the follow lists feed
// the same table, duplicates collapsing on the composite key.
func (s *importService) Import(ctx context.Context, req domain.ImportRequest) error {
	data := ImportData{
		Users:   make([]entities.User, 0, len(req.Users)),
		Recipes: make([]entities.Recipe, 0, len(req.Recipes)),
		Reviews: make([]entities.Review, 0, len(req.Reviews)),
	}

	for _, rec := range req.Users {
		// MinCost keeps bulk loads tractable; interactive registration
		// still uses the default cost.
		hash, err := bcrypt.GenerateFromPassword([]byte(rec.Password), bcrypt.MinCost)
		if err != nil {
			return err
		}
		data.Users = append(data.Users, entities.User{
			ID:           rec.AuthorID,
			Name:         rec.AuthorName,
			Gender:       rec.Gender,
			Age:          rec.Age,
			PasswordHash: string(hash),
			IsDeleted:    rec.IsDeleted,
		})
		for _, followerID := range rec.FollowerUsers {
			data.Follows = append(data.Follows, entities.UserFollow{
				FollowerID: followerID,
				FolloweeID: rec.AuthorID,
			})
		}
		for _, followeeID := range rec.FollowingUsers {
			data.Follows = append(data.Follows, entities.UserFollow{
				FollowerID: rec.AuthorID,
				FolloweeID: followeeID,
			})
		}
	}

	for _, rec := range req.Recipes {
		data.Recipes = append(data.Recipes, entities.Recipe{
			ID:                  rec.RecipeID,
			Name:                rec.Name,
			AuthorID:            rec.AuthorID,
			CookTime:            rec.CookTime,
			PrepTime:            rec.PrepTime,
			TotalTime:           rec.TotalTime,
			DatePublished:       utcTime(rec.DatePublished),
			Description:         rec.Description,
			Category:            rec.Category,
			AggregatedRating:    rec.AggregatedRating,
			ReviewCount:         rec.ReviewCount,
			Calories:            rec.Calories,
			FatContent:          rec.FatContent,
			SaturatedFatContent: rec.SaturatedFatContent,
			CholesterolContent:  rec.CholesterolContent,
			SodiumContent:       rec.SodiumContent,
			CarbohydrateContent: rec.CarbohydrateContent,
			FiberContent:        rec.FiberContent,
			SugarContent:        rec.SugarContent,
			ProteinContent:      rec.ProteinContent,
			Servings:            rec.Servings,
			Yield:               rec.Yield,
		})
		for _, part := range rec.Ingredients {
			data.Ingredients = append(data.Ingredients, entities.RecipeIngredient{
				RecipeID:   rec.RecipeID,
				Ingredient: part,
			})
		}
	}

	now := time.Now().UTC()
	for _, rec := range req.Reviews {
		submitted := now
		if rec.DateSubmitted != nil {
			submitted = rec.DateSubmitted.UTC()
		}
		modified := submitted
		if rec.DateModified != nil {
			modified = rec.DateModified.UTC()
		}
		data.Reviews = append(data.Reviews, entities.Review{
			ID:            rec.ReviewID,
			RecipeID:      rec.RecipeID,
			AuthorID:      rec.AuthorID,
			Rating:        rec.Rating,
			Body:          rec.Review,
			DateSubmitted: submitted,
			DateModified:  modified,
		})
		for _, userID := range rec.Likes {
			data.Likes = append(data.Likes, entities.ReviewLike{
				ReviewID: rec.ReviewID,
				UserID:   userID,
			})
		}
	}

	return s.importRepository.ImportAll(ctx, data)
}

func utcTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

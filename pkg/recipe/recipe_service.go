package recipe

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"github.com/ucmiku/CS307ProjectII/domain"
	"github.com/ucmiku/CS307ProjectII/entities"
	"github.com/ucmiku/CS307ProjectII/internal/utils"
	"github.com/ucmiku/CS307ProjectII/internal/utils/storage"
	"github.com/ucmiku/CS307ProjectII/pkg/user"
)

type (
	RecipeService interface {
		Create(ctx context.Context, actorID int64, req domain.CreateRecipeRequest) (domain.CreateRecipeResponse, error)
		GetByID(ctx context.Context, recipeID int64) (domain.RecipeDetail, error)
		Search(ctx context.Context, req domain.SearchRecipesRequest) (domain.PageResult[domain.RecipeDetail], error)
		UpdateTimes(ctx context.Context, actorID, recipeID int64, req domain.UpdateTimesRequest) error
		Delete(ctx context.Context, actorID, recipeID int64) error
		UploadImage(ctx context.Context, actorID, recipeID int64, file *multipart.FileHeader) (domain.UploadImageResponse, error)
		ClosestCaloriePair(ctx context.Context) (domain.ClosestCaloriePair, error)
		TopComplexRecipes(ctx context.Context) ([]domain.ComplexRecipe, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		userRepository   user.UserRepository
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, userRepository user.UserRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
		s3:               s3,
	}
}

func (s *recipeService) Create(ctx context.Context, actorID int64, req domain.CreateRecipeRequest) (domain.CreateRecipeResponse, error) {
	if _, err := s.userRepository.GetActive(ctx, actorID); err != nil {
		return domain.CreateRecipeResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.CreateRecipeResponse{}, domain.ErrEmptyRecipeName
	}

	cook, prep, total, err := deriveTimes(req.CookTime, req.PrepTime)
	if err != nil {
		return domain.CreateRecipeResponse{}, err
	}

	now := time.Now().UTC()
	recipe := &entities.Recipe{
		Name:                name,
		AuthorID:            actorID,
		CookTime:            cook,
		PrepTime:            prep,
		TotalTime:           total,
		DatePublished:       &now,
		Description:         req.Description,
		Category:            strings.TrimSpace(req.Category),
		ReviewCount:         0,
		Calories:            req.Calories,
		FatContent:          req.FatContent,
		SaturatedFatContent: req.SaturatedFatContent,
		CholesterolContent:  req.CholesterolContent,
		SodiumContent:       req.SodiumContent,
		CarbohydrateContent: req.CarbohydrateContent,
		FiberContent:        req.FiberContent,
		SugarContent:        req.SugarContent,
		ProteinContent:      req.ProteinContent,
		Servings:            req.Servings,
		Yield:               req.Yield,
	}

	id, err := s.recipeRepository.Create(ctx, recipe, normalizeIngredients(req.Ingredients))
	if err != nil {
		return domain.CreateRecipeResponse{}, err
	}
	return domain.CreateRecipeResponse{RecipeID: id}, nil
}

// GetByID is the read-only lookup path: a non-positive or unknown id yields
// the not-found sentinel instead of a validation failure.
func (s *recipeService) GetByID(ctx context.Context, recipeID int64) (domain.RecipeDetail, error) {
	if recipeID <= 0 {
		return domain.RecipeDetail{}, domain.ErrRecipeNotFound
	}
	detail, err := s.recipeRepository.GetDetail(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	normalizeDetailTime(detail)
	return *detail, nil
}

func (s *recipeService) Search(ctx context.Context, req domain.SearchRecipesRequest) (domain.PageResult[domain.RecipeDetail], error) {
	if req.Page < 1 || req.Size <= 0 {
		return domain.PageResult[domain.RecipeDetail]{}, domain.ErrInvalidPagination
	}

	items, total, err := s.recipeRepository.Search(ctx, req)
	if err != nil {
		return domain.PageResult[domain.RecipeDetail]{}, err
	}
	for i := range items {
		normalizeDetailTime(&items[i])
	}
	if items == nil {
		items = []domain.RecipeDetail{}
	}

	return domain.PageResult[domain.RecipeDetail]{
		Items: items,
		Page:  req.Page,
		Size:  req.Size,
		Total: total,
	}, nil
}

// UpdateTimes validates every duration before any write so an invalid input
// leaves all three stored fields untouched. A nil field keeps its current
// value; the total is always recomputed from the resulting cook+prep.
func (s *recipeService) UpdateTimes(ctx context.Context, actorID, recipeID int64, req domain.UpdateTimesRequest) error {
	if _, err := s.userRepository.GetActive(ctx, actorID); err != nil {
		return err
	}
	if recipeID <= 0 {
		return fmt.Errorf("%w: recipe id must be positive", domain.ErrInvalidArgument)
	}

	authorID, err := s.recipeRepository.GetAuthorID(ctx, recipeID)
	if err != nil {
		return err
	}
	if authorID != actorID {
		return domain.ErrNotOwner
	}

	currentCook, currentPrep, err := s.recipeRepository.GetTimes(ctx, recipeID)
	if err != nil {
		return err
	}

	nextCook := pickTime(req.CookTime, currentCook)
	nextPrep := pickTime(req.PrepTime, currentPrep)

	cookDur, err := parseOptional(nextCook)
	if err != nil {
		return err
	}
	prepDur, err := parseOptional(nextPrep)
	if err != nil {
		return err
	}
	totalDur, err := utils.AddDurations(cookDur, prepDur)
	if err != nil {
		return err
	}

	var total *string
	if nextCook != nil || nextPrep != nil {
		formatted := utils.FormatISODuration(totalDur)
		total = &formatted
	}

	return s.recipeRepository.UpdateTimes(ctx, recipeID, nextCook, nextPrep, total)
}

// Delete is a silent no-op for an unknown id; for an existing recipe only
// the author may delete, and the cascade runs atomically in the repository.
func (s *recipeService) Delete(ctx context.Context, actorID, recipeID int64) error {
	if _, err := s.userRepository.GetActive(ctx, actorID); err != nil {
		return err
	}

	authorID, err := s.recipeRepository.GetAuthorID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return nil
		}
		return err
	}
	if authorID != actorID {
		return domain.ErrNotOwner
	}
	return s.recipeRepository.Delete(ctx, recipeID)
}

func (s *recipeService) UploadImage(ctx context.Context, actorID, recipeID int64, file *multipart.FileHeader) (domain.UploadImageResponse, error) {
	if _, err := s.userRepository.GetActive(ctx, actorID); err != nil {
		return domain.UploadImageResponse{}, err
	}

	authorID, err := s.recipeRepository.GetAuthorID(ctx, recipeID)
	if err != nil {
		return domain.UploadImageResponse{}, err
	}
	if authorID != actorID {
		return domain.UploadImageResponse{}, domain.ErrNotOwner
	}

	objectKey, err := s.s3.UploadFile(ctx, file, "recipes")
	if err != nil {
		return domain.UploadImageResponse{}, err
	}
	imageURL := s.s3.GetPublicLinkKey(objectKey)

	if err := s.recipeRepository.UpdateImageURL(ctx, recipeID, imageURL); err != nil {
		return domain.UploadImageResponse{}, err
	}
	return domain.UploadImageResponse{ImageURL: imageURL}, nil
}

func (s *recipeService) ClosestCaloriePair(ctx context.Context) (domain.ClosestCaloriePair, error) {
	pair, err := s.recipeRepository.ClosestCaloriePair(ctx)
	if err != nil {
		return domain.ClosestCaloriePair{}, err
	}
	if pair == nil {
		return domain.ClosestCaloriePair{}, domain.ErrNoResult
	}
	return *pair, nil
}

func (s *recipeService) TopComplexRecipes(ctx context.Context) ([]domain.ComplexRecipe, error) {
	results, err := s.recipeRepository.TopComplexRecipes(ctx, domain.TopComplexLimit)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []domain.ComplexRecipe{}
	}
	return results, nil
}

// normalizeIngredients trims entries, drops empties, collapses duplicates,
// and sorts case-insensitively so the stored set matches the retrieval
// order.
func normalizeIngredients(parts []string) []string {
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i]), strings.ToLower(out[j])
		if a != b {
			return a < b
		}
		return out[i] < out[j]
	})
	return out
}

// deriveTimes parses the given durations and derives the total. On creation a
// blank value counts as never set, so neither it nor a zero total is stored;
// when both fields are unset all three stay nil.
func deriveTimes(cookISO, prepISO *string) (cook, prep, total *string, err error) {
	cook = presentTime(cookISO)
	prep = presentTime(prepISO)

	cookDur, err := parseOptional(cook)
	if err != nil {
		return nil, nil, nil, err
	}
	prepDur, err := parseOptional(prep)
	if err != nil {
		return nil, nil, nil, err
	}

	if cook != nil || prep != nil {
		totalDur, err := utils.AddDurations(cookDur, prepDur)
		if err != nil {
			return nil, nil, nil, err
		}
		formatted := utils.FormatISODuration(totalDur)
		total = &formatted
	}
	return cook, prep, total, nil
}

// presentTime maps an unset or blank value to nil so nothing downstream can
// persist an empty string.
func presentTime(iso *string) *string {
	if iso == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*iso)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// parseOptional treats an absent duration as zero for arithmetic purposes.
// A present value goes through the strict parser, so a blank string fails
// like any other malformed input.
func parseOptional(iso *string) (time.Duration, error) {
	if iso == nil {
		return 0, nil
	}
	return utils.ParseISODuration(*iso)
}

func pickTime(next, current *string) *string {
	if next != nil {
		trimmed := strings.TrimSpace(*next)
		return &trimmed
	}
	return current
}

func normalizeDetailTime(detail *domain.RecipeDetail) {
	if detail.DatePublished != nil {
		utc := detail.DatePublished.UTC()
		detail.DatePublished = &utc
	}
}

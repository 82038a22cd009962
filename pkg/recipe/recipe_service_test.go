package recipe

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucmiku/CS307ProjectII/domain"
	"github.com/ucmiku/CS307ProjectII/entities"
)

// stubUserRepo satisfies only the activity guard; everything else is unused
// by the recipe service.
type stubUserRepo struct {
	active map[int64]bool
}

func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*entities.User, error) {
	if !s.active[id] {
		return nil, domain.ErrUserNotFound
	}
	return &entities.User{ID: id}, nil
}

func (s *stubUserRepo) GetActive(_ context.Context, id int64) (*entities.User, error) {
	if id <= 0 || !s.active[id] {
		return nil, domain.ErrUserInactive
	}
	return &entities.User{ID: id}, nil
}

func (s *stubUserRepo) NameExists(context.Context, string) (bool, error) { return false, nil }
func (s *stubUserRepo) CreateUser(_ context.Context, u *entities.User) (int64, error) {
	return u.ID, nil
}
func (s *stubUserRepo) UpdateProfile(context.Context, int64, *string, *int) error { return nil }
func (s *stubUserRepo) SoftDelete(context.Context, int64) error                   { return nil }
func (s *stubUserRepo) ToggleFollow(context.Context, int64, int64) (bool, error) {
	return false, nil
}
func (s *stubUserRepo) FollowCounts(context.Context, int64) (int64, int64, error) {
	return 0, 0, nil
}
func (s *stubUserRepo) FollowerIDs(context.Context, int64) ([]int64, error)  { return nil, nil }
func (s *stubUserRepo) FollowingIDs(context.Context, int64) ([]int64, error) { return nil, nil }
func (s *stubUserRepo) Feed(context.Context, int64, string, int, int) ([]domain.FeedItem, int64, error) {
	return nil, 0, nil
}
func (s *stubUserRepo) HighestFollowRatio(context.Context) (*domain.FollowRatioResult, error) {
	return nil, nil
}

type fakeRecipeRepo struct {
	recipes     map[int64]*entities.Recipe
	ingredients map[int64][]string

	timesUpdated bool
	imageURL     string
	pair         *domain.ClosestCaloriePair
	searchReq    domain.SearchRecipesRequest
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{
		recipes:     map[int64]*entities.Recipe{},
		ingredients: map[int64][]string{},
	}
}

func (f *fakeRecipeRepo) Create(_ context.Context, recipe *entities.Recipe, ingredients []string) (int64, error) {
	var maxID int64
	for id := range f.recipes {
		if id > maxID {
			maxID = id
		}
	}
	recipe.ID = maxID + 1
	copied := *recipe
	f.recipes[recipe.ID] = &copied
	f.ingredients[recipe.ID] = ingredients
	return recipe.ID, nil
}

func (f *fakeRecipeRepo) GetDetail(_ context.Context, recipeID int64) (*domain.RecipeDetail, error) {
	r, ok := f.recipes[recipeID]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return &domain.RecipeDetail{
		RecipeID:         r.ID,
		Name:             r.Name,
		AuthorID:         r.AuthorID,
		CookTime:         r.CookTime,
		PrepTime:         r.PrepTime,
		TotalTime:        r.TotalTime,
		DatePublished:    r.DatePublished,
		Ingredients:      f.ingredients[recipeID],
		AggregatedRating: r.AggregatedRating,
		ReviewCount:      r.ReviewCount,
	}, nil
}

func (f *fakeRecipeRepo) GetAuthorID(_ context.Context, recipeID int64) (int64, error) {
	r, ok := f.recipes[recipeID]
	if !ok {
		return 0, domain.ErrRecipeNotFound
	}
	return r.AuthorID, nil
}

func (f *fakeRecipeRepo) GetTimes(_ context.Context, recipeID int64) (*string, *string, error) {
	r, ok := f.recipes[recipeID]
	if !ok {
		return nil, nil, domain.ErrRecipeNotFound
	}
	return r.CookTime, r.PrepTime, nil
}

func (f *fakeRecipeRepo) UpdateTimes(_ context.Context, recipeID int64, cook, prep, total *string) error {
	r := f.recipes[recipeID]
	r.CookTime, r.PrepTime, r.TotalTime = cook, prep, total
	f.timesUpdated = true
	return nil
}

func (f *fakeRecipeRepo) UpdateImageURL(_ context.Context, recipeID int64, imageURL string) error {
	f.imageURL = imageURL
	return nil
}

func (f *fakeRecipeRepo) Delete(_ context.Context, recipeID int64) error {
	delete(f.recipes, recipeID)
	delete(f.ingredients, recipeID)
	return nil
}

func (f *fakeRecipeRepo) Search(_ context.Context, req domain.SearchRecipesRequest) ([]domain.RecipeDetail, int64, error) {
	f.searchReq = req
	return nil, 0, nil
}

func (f *fakeRecipeRepo) ClosestCaloriePair(context.Context) (*domain.ClosestCaloriePair, error) {
	return f.pair, nil
}

func (f *fakeRecipeRepo) TopComplexRecipes(context.Context, int) ([]domain.ComplexRecipe, error) {
	return nil, nil
}

type fakeS3 struct{}

func (fakeS3) UploadFile(_ context.Context, _ *multipart.FileHeader, folder string) (string, error) {
	return folder + "/object-key", nil
}

func (fakeS3) GetPublicLinkKey(key string) string {
	return "https://bucket.example.com/" + key
}

func newTestRecipeService(repo *fakeRecipeRepo, activeUsers ...int64) RecipeService {
	users := &stubUserRepo{active: map[int64]bool{}}
	for _, id := range activeUsers {
		users.active[id] = true
	}
	return NewRecipeService(repo, users, fakeS3{})
}

func strptr(s string) *string { return &s }

func TestCreateRecipe_DerivesTotalTime(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := newTestRecipeService(repo, 1)

	res, err := svc.Create(context.Background(), 1, domain.CreateRecipeRequest{
		Name:     "stew",
		CookTime: strptr("PT1H"),
		PrepTime: strptr("PT30M"),
	})
	require.NoError(t, err)

	stored := repo.recipes[res.RecipeID]
	require.NotNil(t, stored.TotalTime)
	assert.Equal(t, "PT1H30M", *stored.TotalTime)
	assert.NotNil(t, stored.DatePublished)
}

func TestCreateRecipe_NoTimesStaysUnset(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := newTestRecipeService(repo, 1)

	res, err := svc.Create(context.Background(), 1, domain.CreateRecipeRequest{Name: "toast"})
	require.NoError(t, err)

	stored := repo.recipes[res.RecipeID]
	assert.Nil(t, stored.CookTime)
	assert.Nil(t, stored.PrepTime)
	assert.Nil(t, stored.TotalTime)
}

func TestCreateRecipe_OneTimeImpliesTotal(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := newTestRecipeService(repo, 1)

	res, err := svc.Create(context.Background(), 1, domain.CreateRecipeRequest{
		Name:     "salad",
		PrepTime: strptr("PT15M"),
	})
	require.NoError(t, err)

	stored := repo.recipes[res.RecipeID]
	require.NotNil(t, stored.TotalTime)
	assert.Equal(t, "PT15M", *stored.TotalTime)
}

func TestCreateRecipe_BlankTimeIsUnset(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := newTestRecipeService(repo, 1)
	ctx := context.Background()

	res, err := svc.Create(ctx, 1, domain.CreateRecipeRequest{
		Name:     "porridge",
		CookTime: strptr("   "),
	})
	require.NoError(t, err)

	stored := repo.recipes[res.RecipeID]
	assert.Nil(t, stored.CookTime)
	assert.Nil(t, stored.PrepTime)
	assert.Nil(t, stored.TotalTime)

	res, err = svc.Create(ctx, 1, domain.CreateRecipeRequest{
		Name:     "broth",
		CookTime: strptr(""),
		PrepTime: strptr("PT15M"),
	})
	require.NoError(t, err)

	stored = repo.recipes[res.RecipeID]
	assert.Nil(t, stored.CookTime)
	require.NotNil(t, stored.PrepTime)
	assert.Equal(t, "PT15M", *stored.PrepTime)
	require.NotNil(t, stored.TotalTime)
	assert.Equal(t, "PT15M", *stored.TotalTime)
}

func TestCreateRecipe_Validation(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := newTestRecipeService(repo, 1)
	ctx := context.Background()

	_, err := svc.Create(ctx, 99, domain.CreateRecipeRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrUserInactive)

	_, err = svc.Create(ctx, 1, domain.CreateRecipeRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrEmptyRecipeName)

	_, err = svc.Create(ctx, 1, domain.CreateRecipeRequest{Name: "x", CookTime: strptr("20 minutes")})
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	assert.Empty(t, repo.recipes, "nothing may be stored after a validation failure")
}

func TestCreateRecipe_NormalizesIngredients(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := newTestRecipeService(repo, 1)

	res, err := svc.Create(context.Background(), 1, domain.CreateRecipeRequest{
		Name:        "soup",
		Ingredients: []string{" Onion", "carrot", "", "Onion", "Beef stock"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Beef stock", "carrot", "Onion"}, repo.ingredients[res.RecipeID])
}

func TestUpdateTimes_KeepsUnsetField(t *testing.T) {
	repo := newFakeRecipeRepo()
	repo.recipes[1] = &entities.Recipe{ID: 1, AuthorID: 1, CookTime: strptr("PT1H")}
	svc := newTestRecipeService(repo, 1)

	err := svc.UpdateTimes(context.Background(), 1, 1, domain.UpdateTimesRequest{
		PrepTime: strptr("PT30M"),
	})
	require.NoError(t, err)

	stored := repo.recipes[1]
	assert.Equal(t, "PT1H", *stored.CookTime)
	assert.Equal(t, "PT30M", *stored.PrepTime)
	assert.Equal(t, "PT1H30M", *stored.TotalTime)
}

func TestUpdateTimes_InvalidInputWritesNothing(t *testing.T) {
	repo := newFakeRecipeRepo()
	repo.recipes[1] = &entities.Recipe{ID: 1, AuthorID: 1, CookTime: strptr("PT1H"), TotalTime: strptr("PT1H")}
	svc := newTestRecipeService(repo, 1)

	err := svc.UpdateTimes(context.Background(), 1, 1, domain.UpdateTimesRequest{
		PrepTime: strptr("half an hour"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	assert.False(t, repo.timesUpdated, "a failed update must not touch any of the three fields")
	assert.Equal(t, "PT1H", *repo.recipes[1].TotalTime)
}

func TestUpdateTimes_BlankStringRejected(t *testing.T) {
	repo := newFakeRecipeRepo()
	repo.recipes[1] = &entities.Recipe{ID: 1, AuthorID: 1, CookTime: strptr("PT1H"), TotalTime: strptr("PT1H")}
	svc := newTestRecipeService(repo, 1)

	err := svc.UpdateTimes(context.Background(), 1, 1, domain.UpdateTimesRequest{
		CookTime: strptr(""),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	assert.False(t, repo.timesUpdated, "a blank duration must fail before any write")
	assert.Equal(t, "PT1H", *repo.recipes[1].CookTime)
	assert.Equal(t, "PT1H", *repo.recipes[1].TotalTime)
}

func TestUpdateTimes_Authorization(t *testing.T) {
	repo := newFakeRecipeRepo()
	repo.recipes[1] = &entities.Recipe{ID: 1, AuthorID: 1}
	svc := newTestRecipeService(repo, 1, 2)
	ctx := context.Background()

	err := svc.UpdateTimes(ctx, 2, 1, domain.UpdateTimesRequest{CookTime: strptr("PT5M")})
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	err = svc.UpdateTimes(ctx, 1, 42, domain.UpdateTimesRequest{CookTime: strptr("PT5M")})
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	err = svc.UpdateTimes(ctx, 1, 0, domain.UpdateTimesRequest{CookTime: strptr("PT5M")})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteRecipe_UnknownIsSilent(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := newTestRecipeService(repo, 1)

	assert.NoError(t, svc.Delete(context.Background(), 1, 42))
}

func TestDeleteRecipe_OwnerOnly(t *testing.T) {
	repo := newFakeRecipeRepo()
	repo.recipes[1] = &entities.Recipe{ID: 1, AuthorID: 1}
	svc := newTestRecipeService(repo, 1, 2)
	ctx := context.Background()

	err := svc.Delete(ctx, 2, 1)
	assert.ErrorIs(t, err, domain.ErrNotOwner)
	assert.Contains(t, repo.recipes, int64(1))

	require.NoError(t, svc.Delete(ctx, 1, 1))
	assert.NotContains(t, repo.recipes, int64(1))
}

func TestGetByID_NotFound(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := newTestRecipeService(repo, 1)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	_, err = svc.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestSearch_RejectsBadPagination(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := newTestRecipeService(repo, 1)
	ctx := context.Background()

	_, err := svc.Search(ctx, domain.SearchRecipesRequest{Page: 0, Size: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidPagination)

	_, err = svc.Search(ctx, domain.SearchRecipesRequest{Page: 1, Size: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidPagination)

	_, err = svc.Search(ctx, domain.SearchRecipesRequest{Page: 1, Size: -3})
	assert.ErrorIs(t, err, domain.ErrInvalidPagination)
}

func TestSearch_EmptyIsNotNil(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := newTestRecipeService(repo, 1)

	res, err := svc.Search(context.Background(), domain.SearchRecipesRequest{Page: 3, Size: 25, Sort: domain.SortRatingDesc})
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, 3, res.Page)
	assert.Equal(t, 25, res.Size)
	assert.Equal(t, domain.SortRatingDesc, repo.searchReq.Sort)
}

func TestUploadImage(t *testing.T) {
	repo := newFakeRecipeRepo()
	repo.recipes[1] = &entities.Recipe{ID: 1, AuthorID: 1}
	svc := newTestRecipeService(repo, 1, 2)
	ctx := context.Background()

	_, err := svc.UploadImage(ctx, 2, 1, &multipart.FileHeader{Filename: "a.png"})
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	res, err := svc.UploadImage(ctx, 1, 1, &multipart.FileHeader{Filename: "a.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example.com/recipes/object-key", res.ImageURL)
	assert.Equal(t, res.ImageURL, repo.imageURL)
}

func TestClosestCaloriePair(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := newTestRecipeService(repo, 1)
	ctx := context.Background()

	_, err := svc.ClosestCaloriePair(ctx)
	assert.ErrorIs(t, err, domain.ErrNoResult)

	repo.pair = &domain.ClosestCaloriePair{RecipeA: 1, RecipeB: 2, CaloriesA: 100, CaloriesB: 101, Difference: 1}
	res, err := svc.ClosestCaloriePair(ctx)
	require.NoError(t, err)
	assert.Equal(t, *repo.pair, res)
}

func TestTopComplexRecipes_EmptyIsNotNil(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc := newTestRecipeService(repo, 1)

	res, err := svc.TopComplexRecipes(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

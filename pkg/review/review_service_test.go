package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucmiku/CS307ProjectII/domain"
	"github.com/ucmiku/CS307ProjectII/entities"
)

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

type stubRecipeRepo struct {
	authors map[int64]int64
}

func (s *stubRecipeRepo) Create(_ context.Context, r *entities.Recipe, _ []string) (int64, error) {
	return r.ID, nil
}

func (s *stubRecipeRepo) GetDetail(_ context.Context, recipeID int64) (*domain.RecipeDetail, error) {
	author, ok := s.authors[recipeID]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return &domain.RecipeDetail{RecipeID: recipeID, AuthorID: author}, nil
}

func (s *stubRecipeRepo) GetAuthorID(_ context.Context, recipeID int64) (int64, error) {
	author, ok := s.authors[recipeID]
	if !ok {
		return 0, domain.ErrRecipeNotFound
	}
	return author, nil
}

func (s *stubRecipeRepo) GetTimes(context.Context, int64) (*string, *string, error) {
	return nil, nil, nil
}
func (s *stubRecipeRepo) UpdateTimes(context.Context, int64, *string, *string, *string) error {
	return nil
}
func (s *stubRecipeRepo) UpdateImageURL(context.Context, int64, string) error { return nil }
func (s *stubRecipeRepo) Delete(context.Context, int64) error                 { return nil }
func (s *stubRecipeRepo) Search(context.Context, domain.SearchRecipesRequest) ([]domain.RecipeDetail, int64, error) {
	return nil, 0, nil
}
func (s *stubRecipeRepo) ClosestCaloriePair(context.Context) (*domain.ClosestCaloriePair, error) {
	return nil, nil
}
func (s *stubRecipeRepo) TopComplexRecipes(context.Context, int) ([]domain.ComplexRecipe, error) {
	return nil, nil
}

type fakeReviewRepo struct {
	reviews map[int64]*entities.Review
	likes   map[[2]int64]bool

	recomputed []int64
	listReq    domain.ListReviewsRequest
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{
		reviews: map[int64]*entities.Review{},
		likes:   map[[2]int64]bool{},
	}
}

func (f *fakeReviewRepo) GetByID(_ context.Context, reviewID int64) (*entities.Review, error) {
	r, ok := f.reviews[reviewID]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReviewRepo) CreateWithRecompute(_ context.Context, review *entities.Review) (int64, error) {
	var maxID int64
	for id := range f.reviews {
		if id > maxID {
			maxID = id
		}
	}
	review.ID = maxID + 1
	copied := *review
	f.reviews[review.ID] = &copied
	f.recomputed = append(f.recomputed, review.RecipeID)
	return review.ID, nil
}

func (f *fakeReviewRepo) UpdateWithRecompute(_ context.Context, reviewID, recipeID int64, rating int, body string, modified time.Time) error {
	r := f.reviews[reviewID]
	r.Rating = rating
	r.Body = body
	r.DateModified = modified
	f.recomputed = append(f.recomputed, recipeID)
	return nil
}

func (f *fakeReviewRepo) DeleteWithRecompute(_ context.Context, reviewID, recipeID int64) error {
	delete(f.reviews, reviewID)
	for edge := range f.likes {
		if edge[0] == reviewID {
			delete(f.likes, edge)
		}
	}
	f.recomputed = append(f.recomputed, recipeID)
	return nil
}

func (f *fakeReviewRepo) Like(_ context.Context, reviewID, userID int64) (int64, error) {
	f.likes[[2]int64{reviewID, userID}] = true
	return f.countLikes(reviewID), nil
}

func (f *fakeReviewRepo) Unlike(_ context.Context, reviewID, userID int64) (int64, error) {
	delete(f.likes, [2]int64{reviewID, userID})
	return f.countLikes(reviewID), nil
}

func (f *fakeReviewRepo) countLikes(reviewID int64) int64 {
	var n int64
	for edge := range f.likes {
		if edge[0] == reviewID {
			n++
		}
	}
	return n
}

func (f *fakeReviewRepo) ListByRecipe(_ context.Context, req domain.ListReviewsRequest) ([]domain.ReviewDetail, int64, error) {
	f.listReq = req
	return nil, 0, nil
}

func (f *fakeReviewRepo) Refresh(_ context.Context, recipeID int64) error {
	f.recomputed = append(f.recomputed, recipeID)
	return nil
}

func newTestReviewService(reviews *fakeReviewRepo, recipes *stubRecipeRepo, activeUsers ...int64) ReviewService {
	users := &stubUserRepo{active: map[int64]bool{}}
	for _, id := range activeUsers {
		users.active[id] = true
	}
	return NewReviewService(reviews, recipes, users)
}

func TestAddReview(t *testing.T) {
	reviews := newFakeReviewRepo()
	recipes := &stubRecipeRepo{authors: map[int64]int64{10: 2}}
	svc := newTestReviewService(reviews, recipes, 1)
	ctx := context.Background()

	id, err := svc.Add(ctx, 1, domain.AddReviewRequest{RecipeID: 10, Rating: 4, Review: "solid"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	stored := reviews.reviews[id]
	assert.Equal(t, int64(10), stored.RecipeID)
	assert.Equal(t, int64(1), stored.AuthorID)
	assert.Equal(t, stored.DateSubmitted, stored.DateModified, "both timestamps start equal")
	assert.Equal(t, []int64{10}, reviews.recomputed, "the recipe aggregate must be recomputed")
}

func TestAddReview_Validation(t *testing.T) {
	reviews := newFakeReviewRepo()
	recipes := &stubRecipeRepo{authors: map[int64]int64{10: 2}}
	svc := newTestReviewService(reviews, recipes, 1)
	ctx := context.Background()

	_, err := svc.Add(ctx, 99, domain.AddReviewRequest{RecipeID: 10, Rating: 4})
	assert.ErrorIs(t, err, domain.ErrUserInactive)

	_, err = svc.Add(ctx, 1, domain.AddReviewRequest{RecipeID: 10, Rating: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidRating)

	_, err = svc.Add(ctx, 1, domain.AddReviewRequest{RecipeID: 10, Rating: 6})
	assert.ErrorIs(t, err, domain.ErrInvalidRating)

	// A review targeting a nonexistent recipe is a malformed request on the
	// write path, never a lookup miss.
	_, err = svc.Add(ctx, 1, domain.AddReviewRequest{RecipeID: 42, Rating: 4})
	assert.ErrorIs(t, err, domain.ErrUnknownRecipe)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, reviews.recomputed, "failed adds must not touch the aggregate")
}

func TestEditReview(t *testing.T) {
	reviews := newFakeReviewRepo()
	reviews.reviews[1] = &entities.Review{ID: 1, RecipeID: 10, AuthorID: 1, Rating: 3}
	recipes := &stubRecipeRepo{authors: map[int64]int64{10: 2}}
	svc := newTestReviewService(reviews, recipes, 1, 2)
	ctx := context.Background()

	err := svc.Edit(ctx, 1, 1, domain.EditReviewRequest{RecipeID: 11, ReviewID: 1, Rating: 5})
	assert.ErrorIs(t, err, domain.ErrReviewMismatch)

	err = svc.Edit(ctx, 2, 1, domain.EditReviewRequest{RecipeID: 10, ReviewID: 1, Rating: 5})
	assert.ErrorIs(t, err, domain.ErrNotReviewAuthor)

	err = svc.Edit(ctx, 1, 1, domain.EditReviewRequest{RecipeID: 10, ReviewID: 1, Rating: 9})
	assert.ErrorIs(t, err, domain.ErrInvalidRating)

	err = svc.Edit(ctx, 1, 1, domain.EditReviewRequest{RecipeID: 10, ReviewID: 1, Rating: 5, Review: "better"})
	require.NoError(t, err)
	assert.Equal(t, 5, reviews.reviews[1].Rating)
	assert.Equal(t, []int64{10}, reviews.recomputed)
}

func TestDeleteReview(t *testing.T) {
	reviews := newFakeReviewRepo()
	reviews.reviews[1] = &entities.Review{ID: 1, RecipeID: 10, AuthorID: 1}
	recipes := &stubRecipeRepo{authors: map[int64]int64{10: 2}}
	svc := newTestReviewService(reviews, recipes, 1, 2)
	ctx := context.Background()

	err := svc.Delete(ctx, 1, 11, 1)
	assert.ErrorIs(t, err, domain.ErrReviewMismatch)

	err = svc.Delete(ctx, 2, 10, 1)
	assert.ErrorIs(t, err, domain.ErrNotReviewAuthor)

	err = svc.Delete(ctx, 1, 10, 42)
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)

	require.NoError(t, svc.Delete(ctx, 1, 10, 1))
	assert.NotContains(t, reviews.reviews, int64(1))
	assert.Equal(t, []int64{10}, reviews.recomputed)
}

func TestLikeReview(t *testing.T) {
	reviews := newFakeReviewRepo()
	reviews.reviews[1] = &entities.Review{ID: 1, RecipeID: 10, AuthorID: 2}
	recipes := &stubRecipeRepo{authors: map[int64]int64{10: 2}}
	svc := newTestReviewService(reviews, recipes, 1, 2)
	ctx := context.Background()

	_, err := svc.Like(ctx, 2, 1)
	assert.ErrorIs(t, err, domain.ErrSelfLike)

	_, err = svc.Like(ctx, 1, 42)
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)

	res, err := svc.Like(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.LikeCount)

	// Liking again changes nothing.
	res, err = svc.Like(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.LikeCount)
}

func TestUnlikeReview(t *testing.T) {
	reviews := newFakeReviewRepo()
	reviews.reviews[1] = &entities.Review{ID: 1, RecipeID: 10, AuthorID: 2}
	reviews.likes[[2]int64{1, 1}] = true
	reviews.likes[[2]int64{1, 3}] = true
	recipes := &stubRecipeRepo{authors: map[int64]int64{10: 2}}
	svc := newTestReviewService(reviews, recipes, 1)
	ctx := context.Background()

	res, err := svc.Unlike(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.LikeCount)

	// Removing an absent like is a no-op.
	res, err = svc.Unlike(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.LikeCount)
}

func TestListByRecipe(t *testing.T) {
	reviews := newFakeReviewRepo()
	recipes := &stubRecipeRepo{authors: map[int64]int64{10: 2}}
	svc := newTestReviewService(reviews, recipes, 1)
	ctx := context.Background()

	_, err := svc.ListByRecipe(ctx, domain.ListReviewsRequest{RecipeID: 10, Page: 0, Size: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidPagination)

	_, err = svc.ListByRecipe(ctx, domain.ListReviewsRequest{RecipeID: 42, Page: 1, Size: 10})
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	res, err := svc.ListByRecipe(ctx, domain.ListReviewsRequest{RecipeID: 10, Page: 1, Size: 10, Sort: domain.SortLikesDesc})
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, domain.SortLikesDesc, reviews.listReq.Sort)
}

func TestRefresh(t *testing.T) {
	reviews := newFakeReviewRepo()
	recipes := &stubRecipeRepo{authors: map[int64]int64{10: 2}}
	svc := newTestReviewService(reviews, recipes, 1)
	ctx := context.Background()

	_, err := svc.Refresh(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	res, err := svc.Refresh(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.RecipeID)
	assert.Equal(t, []int64{10}, reviews.recomputed)
}

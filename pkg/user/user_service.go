package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/ucmiku/CS307ProjectII/domain"
	"github.com/ucmiku/CS307ProjectII/entities"
	"github.com/ucmiku/CS307ProjectII/internal/utils/mailing"
	"github.com/ucmiku/CS307ProjectII/pkg/jwt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		GetByID(ctx context.Context, userID int64) (domain.UserDetail, error)
		UpdateProfile(ctx context.Context, actorID int64, req domain.UpdateProfileRequest) error
		DeleteAccount(ctx context.Context, actorID, targetID int64) error
		ToggleFollow(ctx context.Context, actorID, followeeID int64) (domain.ToggleFollowResponse, error)
		Feed(ctx context.Context, actorID int64, page, size int, category string) (domain.PageResult[domain.FeedItem], error)
		HighestFollowRatio(ctx context.Context) (domain.FollowRatioResult, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.RegisterResponse{}, fmt.Errorf("%w: name is empty", domain.ErrInvalidArgument)
	}
	if req.Gender != domain.GenderMale && req.Gender != domain.GenderFemale {
		return domain.RegisterResponse{}, domain.ErrInvalidGender
	}

	birthday, err := time.Parse("2006-01-02", req.Birthday)
	if err != nil {
		return domain.RegisterResponse{}, domain.ErrInvalidBirthday
	}
	age := ageAt(birthday, time.Now().UTC())
	if age <= 0 {
		return domain.RegisterResponse{}, domain.ErrInvalidAge
	}

	taken, err := s.userRepository.NameExists(ctx, name)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if taken {
		return domain.RegisterResponse{}, domain.ErrNameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user := &entities.User{
		Name:         name,
		Gender:       req.Gender,
		Age:          age,
		PasswordHash: string(hash),
	}
	if req.Email != "" {
		email := req.Email
		user.Email = &email
	}

	id, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	if user.Email != nil {
		go func(to, name string) {
			body := fmt.Sprintf("<p>Welcome to RecipeHub, %s!</p>", name)
			if err := mailing.SendMail(to, "Welcome to RecipeHub", body); err != nil {
				log.Warnf("welcome mail to %s failed: %v", to, err)
			}
		}(*user.Email, name)
	}

	return domain.RegisterResponse{AuthorID: id}, nil
}

// Login is the one credential-checked operation. Every failure mode (unknown
// id, inactive user, wrong password) collapses into domain.ErrLoginFailed so
// the caller cannot tell which check failed.
func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	if req.AuthorID <= 0 || req.Password == "" {
		return domain.LoginResponse{}, domain.ErrLoginFailed
	}

	user, err := s.userRepository.GetByID(ctx, req.AuthorID)
	if err != nil || user.IsDeleted {
		return domain.LoginResponse{}, domain.ErrLoginFailed
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return domain.LoginResponse{}, domain.ErrLoginFailed
	}

	return domain.LoginResponse{
		AuthorID: user.ID,
		Token:    s.jwtService.GenerateTokenUser(user.ID),
	}, nil
}

// GetByID also resolves soft-deleted users; follower and following data are
// derived from the edge table on every call.
func (s *userService) GetByID(ctx context.Context, userID int64) (domain.UserDetail, error) {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return domain.UserDetail{}, err
	}

	followers, following, err := s.userRepository.FollowCounts(ctx, userID)
	if err != nil {
		return domain.UserDetail{}, err
	}
	followerIDs, err := s.userRepository.FollowerIDs(ctx, userID)
	if err != nil {
		return domain.UserDetail{}, err
	}
	followingIDs, err := s.userRepository.FollowingIDs(ctx, userID)
	if err != nil {
		return domain.UserDetail{}, err
	}

	return domain.UserDetail{
		AuthorID:       user.ID,
		AuthorName:     user.Name,
		Gender:         user.Gender,
		Age:            user.Age,
		Followers:      followers,
		Following:      following,
		FollowerUsers:  followerIDs,
		FollowingUsers: followingIDs,
		IsDeleted:      user.IsDeleted,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, actorID int64, req domain.UpdateProfileRequest) error {
	if _, err := s.userRepository.GetActive(ctx, actorID); err != nil {
		return err
	}
	if req.Gender != nil && *req.Gender != domain.GenderMale && *req.Gender != domain.GenderFemale {
		return domain.ErrInvalidGender
	}
	if req.Age != nil && *req.Age <= 0 {
		return domain.ErrInvalidAge
	}
	return s.userRepository.UpdateProfile(ctx, actorID, req.Gender, req.Age)
}

func (s *userService) DeleteAccount(ctx context.Context, actorID, targetID int64) error {
	if actorID != targetID {
		return domain.ErrNotOwner
	}
	if _, err := s.userRepository.GetActive(ctx, actorID); err != nil {
		return err
	}
	return s.userRepository.SoftDelete(ctx, targetID)
}

func (s *userService) ToggleFollow(ctx context.Context, actorID, followeeID int64) (domain.ToggleFollowResponse, error) {
	if actorID == followeeID {
		return domain.ToggleFollowResponse{}, domain.ErrSelfFollow
	}
	if _, err := s.userRepository.GetActive(ctx, actorID); err != nil {
		return domain.ToggleFollowResponse{}, err
	}
	if _, err := s.userRepository.GetActive(ctx, followeeID); err != nil {
		return domain.ToggleFollowResponse{}, err
	}

	following, err := s.userRepository.ToggleFollow(ctx, actorID, followeeID)
	if err != nil {
		return domain.ToggleFollowResponse{}, err
	}
	return domain.ToggleFollowResponse{Following: following}, nil
}

// Feed clamps rather than rejects pagination: page >= 1, size within
// [1, 200]. An empty follow set yields an empty page with total 0.
func (s *userService) Feed(ctx context.Context, actorID int64, page, size int, category string) (domain.PageResult[domain.FeedItem], error) {
	if _, err := s.userRepository.GetActive(ctx, actorID); err != nil {
		return domain.PageResult[domain.FeedItem]{}, err
	}

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	} else if size > domain.FeedMaxPageSize {
		size = domain.FeedMaxPageSize
	}

	items, total, err := s.userRepository.Feed(ctx, actorID, strings.TrimSpace(category), page, size)
	if err != nil {
		return domain.PageResult[domain.FeedItem]{}, err
	}

	for i := range items {
		if items[i].DatePublished != nil {
			utc := items[i].DatePublished.UTC()
			items[i].DatePublished = &utc
		}
	}
	if items == nil {
		items = []domain.FeedItem{}
	}

	return domain.PageResult[domain.FeedItem]{
		Items: items,
		Page:  page,
		Size:  size,
		Total: total,
	}, nil
}

func (s *userService) HighestFollowRatio(ctx context.Context) (domain.FollowRatioResult, error) {
	result, err := s.userRepository.HighestFollowRatio(ctx)
	if err != nil {
		return domain.FollowRatioResult{}, err
	}
	if result == nil {
		return domain.FollowRatioResult{}, domain.ErrNoResult
	}
	return *result, nil
}

func ageAt(birthday, now time.Time) int {
	years := now.Year() - birthday.Year()
	anniversary := birthday.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

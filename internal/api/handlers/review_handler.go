package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ucmiku/CS307ProjectII/domain"
	"github.com/ucmiku/CS307ProjectII/internal/api/presenters"
	"github.com/ucmiku/CS307ProjectII/pkg/review"
)

type (
	ReviewHandler interface {
		AddReview(c *fiber.Ctx) error
		EditReview(c *fiber.Ctx) error
		DeleteReview(c *fiber.Ctx) error
		LikeReview(c *fiber.Ctx) error
		UnlikeReview(c *fiber.Ctx) error
		ListReviews(c *fiber.Ctx) error
		RefreshRating(c *fiber.Ctx) error
	}

	reviewHandler struct {
		reviewService review.ReviewService
		validator     *validator.Validate
	}
)

func NewReviewHandler(reviewService review.ReviewService, validator *validator.Validate) ReviewHandler {
	return &reviewHandler{
		reviewService: reviewService,
		validator:     validator,
	}
}

func (h *reviewHandler) AddReview(c *fiber.Ctx) error {
	actorID := c.Locals("user_id").(int64)
	req := new(domain.AddReviewRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddReview, err)
	}

	reviewID, err := h.reviewService.Add(c.Context(), actorID, *req)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedAddReview, err)
	}

	return presenters.SuccessResponse(c, domain.AddReviewResponse{ReviewID: reviewID}, fiber.StatusCreated, domain.MessageSuccessAddReview)
}

func (h *reviewHandler) EditReview(c *fiber.Ctx) error {
	actorID := c.Locals("user_id").(int64)
	reviewID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEditReview, err)
	}

	req := new(domain.EditReviewRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.ReviewID = reviewID
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEditReview, err)
	}

	if err := h.reviewService.Edit(c.Context(), actorID, reviewID, *req); err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedEditReview, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessEditReview)
}

func (h *reviewHandler) DeleteReview(c *fiber.Ctx) error {
	actorID := c.Locals("user_id").(int64)
	recipeID, err := parseID(c, "recipeId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteReview, err)
	}
	reviewID, err := parseID(c, "reviewId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteReview, err)
	}

	if err := h.reviewService.Delete(c.Context(), actorID, recipeID, reviewID); err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedDeleteReview, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteReview)
}

func (h *reviewHandler) LikeReview(c *fiber.Ctx) error {
	actorID := c.Locals("user_id").(int64)
	reviewID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLikeReview, err)
	}

	res, err := h.reviewService.Like(c.Context(), actorID, reviewID)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedLikeReview, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLikeReview)
}

func (h *reviewHandler) UnlikeReview(c *fiber.Ctx) error {
	actorID := c.Locals("user_id").(int64)
	reviewID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLikeReview, err)
	}

	res, err := h.reviewService.Unlike(c.Context(), actorID, reviewID)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedLikeReview, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLikeReview)
}

func (h *reviewHandler) ListReviews(c *fiber.Ctx) error {
	recipeID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedListReviews, err)
	}

	req := domain.ListReviewsRequest{
		RecipeID: recipeID,
		Page:     c.QueryInt("page", 1),
		Size:     c.QueryInt("size", domain.DefaultPageSize),
		Sort:     c.Query("sort", ""),
	}

	res, err := h.reviewService.ListByRecipe(c.Context(), req)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedListReviews, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessListReviews)
}

func (h *reviewHandler) RefreshRating(c *fiber.Ctx) error {
	recipeID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipe, err)
	}

	res, err := h.reviewService.Refresh(c.Context(), recipeID)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipe)
}

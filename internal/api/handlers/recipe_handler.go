package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ucmiku/CS307ProjectII/domain"
	"github.com/ucmiku/CS307ProjectII/internal/api/presenters"
	"github.com/ucmiku/CS307ProjectII/pkg/recipe"
)

type (
	RecipeHandler interface {
		CreateRecipe(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		SearchRecipes(c *fiber.Ctx) error
		UpdateTimes(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		UploadImage(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	actorID := c.Locals("user_id").(int64)
	req := new(domain.CreateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.Create(c.Context(), actorID, *req)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	recipeID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipe, err)
	}

	res, err := h.recipeService.GetByID(c.Context(), recipeID)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipe)
}

func (h *recipeHandler) SearchRecipes(c *fiber.Ctx) error {
	req := domain.SearchRecipesRequest{
		Keyword:  c.Query("keyword", ""),
		Category: c.Query("category", ""),
		Page:     c.QueryInt("page", 1),
		Size:     c.QueryInt("size", domain.DefaultPageSize),
		Sort:     c.Query("sort", ""),
	}
	if raw := c.QueryFloat("min_rating", -1); raw >= 0 {
		req.MinRating = &raw
	}

	res, err := h.recipeService.Search(c.Context(), req)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedSearchRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSearchRecipe)
}

func (h *recipeHandler) UpdateTimes(c *fiber.Ctx) error {
	actorID := c.Locals("user_id").(int64)
	recipeID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTimes, err)
	}

	req := new(domain.UpdateTimesRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.recipeService.UpdateTimes(c.Context(), actorID, recipeID, *req); err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedUpdateTimes, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateTimes)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	actorID := c.Locals("user_id").(int64)
	recipeID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteRecipe, err)
	}

	if err := h.recipeService.Delete(c.Context(), actorID, recipeID); err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) UploadImage(c *fiber.Ctx) error {
	actorID := c.Locals("user_id").(int64)
	recipeID, err := parseID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	res, err := h.recipeService.UploadImage(c.Context(), actorID, recipeID, file)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

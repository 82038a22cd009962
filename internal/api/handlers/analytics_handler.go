package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ucmiku/CS307ProjectII/domain"
	"github.com/ucmiku/CS307ProjectII/internal/api/presenters"
	"github.com/ucmiku/CS307ProjectII/pkg/recipe"
	"github.com/ucmiku/CS307ProjectII/pkg/user"
)

type (
	AnalyticsHandler interface {
		ClosestCaloriePair(c *fiber.Ctx) error
		TopComplexRecipes(c *fiber.Ctx) error
		HighestFollowRatio(c *fiber.Ctx) error
	}

	analyticsHandler struct {
		recipeService recipe.RecipeService
		userService   user.UserService
	}
)

func NewAnalyticsHandler(recipeService recipe.RecipeService, userService user.UserService) AnalyticsHandler {
	return &analyticsHandler{
		recipeService: recipeService,
		userService:   userService,
	}
}

func (h *analyticsHandler) ClosestCaloriePair(c *fiber.Ctx) error {
	res, err := h.recipeService.ClosestCaloriePair(c.Context())
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedAnalytics, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAnalytics)
}

func (h *analyticsHandler) TopComplexRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.TopComplexRecipes(c.Context())
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedAnalytics, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAnalytics)
}

func (h *analyticsHandler) HighestFollowRatio(c *fiber.Ctx) error {
	res, err := h.userService.HighestFollowRatio(c.Context())
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedAnalytics, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAnalytics)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ucmiku/CS307ProjectII/internal/api/handlers"
	"github.com/ucmiku/CS307ProjectII/internal/middleware"
	"github.com/ucmiku/CS307ProjectII/pkg/jwt"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	RecipeHandler    handlers.RecipeHandler
	ReviewHandler    handlers.ReviewHandler
	AnalyticsHandler handlers.AnalyticsHandler
	ImportHandler    handlers.ImportHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Users()
	c.Recipes()
	c.Reviews()
	c.Analytics()
	c.GuestRoute()
}

func (c *Config) Users() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	users := c.App.Group("/api/v1/users")
	{
		users.Post("/register", c.UserHandler.Register)
		users.Post("/login", c.UserHandler.Login)
		users.Get("/feed", auth, c.UserHandler.GetFeed)
		users.Get("/:id", c.UserHandler.GetUser)
		users.Patch("/update", auth, c.UserHandler.UpdateProfile)
		users.Delete("/:id", auth, c.UserHandler.DeleteAccount)
		users.Post("/follow", auth, c.UserHandler.ToggleFollow)
	}
}

func (c *Config) Recipes() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	recipes := c.App.Group("/api/v1/recipes")
	{
		recipes.Post("", auth, c.RecipeHandler.CreateRecipe)
		recipes.Get("", c.RecipeHandler.SearchRecipes)
		recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
		recipes.Patch("/:id/times", auth, c.RecipeHandler.UpdateTimes)
		recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)
		recipes.Post("/:id/image", auth, c.RecipeHandler.UploadImage)
		recipes.Get("/:id/reviews", c.ReviewHandler.ListReviews)
		recipes.Post("/:id/rating/refresh", c.ReviewHandler.RefreshRating)
		recipes.Delete("/:recipeId/reviews/:reviewId", auth, c.ReviewHandler.DeleteReview)
	}
}

func (c *Config) Reviews() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	reviews := c.App.Group("/api/v1/reviews", auth)
	{
		reviews.Post("", c.ReviewHandler.AddReview)
		reviews.Put("/:id", c.ReviewHandler.EditReview)
		reviews.Post("/:id/like", c.ReviewHandler.LikeReview)
		reviews.Delete("/:id/like", c.ReviewHandler.UnlikeReview)
	}
}

func (c *Config) Analytics() {
	analytics := c.App.Group("/api/v1/analytics")
	{
		analytics.Get("/closest-calories", c.AnalyticsHandler.ClosestCaloriePair)
		analytics.Get("/top-complex", c.AnalyticsHandler.TopComplexRecipes)
		analytics.Get("/follow-ratio", c.AnalyticsHandler.HighestFollowRatio)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/api/v1/import", c.ImportHandler.ImportData)
}

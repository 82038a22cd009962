package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"github.com/ucmiku/CS307ProjectII/internal/api/handlers"
	"github.com/ucmiku/CS307ProjectII/internal/api/routes"
	"github.com/ucmiku/CS307ProjectII/internal/middleware"
	"github.com/ucmiku/CS307ProjectII/internal/utils"
	"github.com/ucmiku/CS307ProjectII/internal/utils/storage"
	"github.com/ucmiku/CS307ProjectII/pkg/importer"
	"github.com/ucmiku/CS307ProjectII/pkg/jwt"
	"github.com/ucmiku/CS307ProjectII/pkg/recipe"
	"github.com/ucmiku/CS307ProjectII/pkg/review"
	"github.com/ucmiku/CS307ProjectII/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	reviewRepository := review.NewReviewRepository(db)
	importRepository := importer.NewImportRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	recipeService := recipe.NewRecipeService(recipeRepository, userRepository, s3)
	reviewService := review.NewReviewService(reviewRepository, recipeRepository, userRepository)
	importService := importer.NewImportService(importRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	reviewHandler := handlers.NewReviewHandler(reviewService, validator)
	analyticsHandler := handlers.NewAnalyticsHandler(recipeService, userService)
	importHandler := handlers.NewImportHandler(importService, validator)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		RecipeHandler:    recipeHandler,
		ReviewHandler:    reviewHandler,
		AnalyticsHandler: analyticsHandler,
		ImportHandler:    importHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

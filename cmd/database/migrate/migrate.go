package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/ucmiku/CS307ProjectII/entities"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user table: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.UserFollow{}); err != nil {
		log.Fatalf("Error migrating user follow table: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		log.Fatalf("Error migrating recipe table: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RecipeIngredient{}); err != nil {
		log.Fatalf("Error migrating recipe ingredient table: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Review{}); err != nil {
		log.Fatalf("Error migrating review table: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ReviewLike{}); err != nil {
		log.Fatalf("Error migrating review like table: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}

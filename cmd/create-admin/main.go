// cmd/create-admin bootstraps an admin account.
//
// Usage:
//
//	DATABASE_URL=postgres://... go run ./cmd/create-admin <username> <password>
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Gojer16/Elevare-sub001/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <username> <password>\n", os.Args[0])
		os.Exit(1)
	}

	username := os.Args[1]
	password := os.Args[2]

	if len(password) < 12 {
		log.Fatal("Admin password must be at least 12 characters")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL must be set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to migrate users table: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		if err := db.Model(&existing).Updates(map[string]interface{}{
			"password": string(hashed),
			"is_admin": true,
		}).Error; err != nil {
			log.Fatalf("Failed to update existing user: %v", err)
		}
		fmt.Printf("Promoted existing user %q to admin\n", username)
		return
	}

	user := models.User{
		Username: username,
		Password: string(hashed),
		IsAdmin:  true,
		Plan:     models.PlanPremium,
	}

	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Printf("Created admin user %q (id=%d)\n", username, user.ID)
}

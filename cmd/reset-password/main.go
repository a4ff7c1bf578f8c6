package main

import (
	"log"
	"os"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Find Account
	email := os.Getenv("DEFAULT_ACCOUNT_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	var account model.Account
	if err := db.Where("email = ?", email).First(&account).Error; err != nil {
		log.Fatalf("❌ Account %s not found in database: %v", email, err)
	}

	// 4. Hash new password
	newPassword := os.Getenv("DEFAULT_ACCOUNT_PASSWORD")
	if newPassword == "" {
		newPassword = "admin123"
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// 5. Update
	if err := db.Model(&account).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("❌ Failed to update password in DB: %v", err)
	}

	log.Printf("✅ Success! Password for %s has been reset", email)
}

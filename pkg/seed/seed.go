package seed

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agiliza_backend/internal/model"
)

// SeedAdminUser makes sure the operator account from the environment
// exists. Idempotent; never overwrites an existing password.
func SeedAdminUser(db *gorm.DB, email, password string) {
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping operator seed")
		return
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Could not hash admin password: %v", err)
		return
	}

	user := model.User{
		Email:    email,
		Password: string(hashed),
	}

	if err := db.Create(&user).Error; err != nil {
		log.Printf("Error creating admin user %s: %v", email, err)
		return
	}

	log.Printf("Admin user %s seeded successfully!", email)
}

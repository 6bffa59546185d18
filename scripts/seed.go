package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"lms/config"
	"lms/database"
	"lms/models"
)

// Seeds an admin account and a small sample catalog for local development.
// Run with: go run ./scripts
func main() {
	config.LoadConfig()
	db := database.Connect()

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin12345"), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := models.User{
		Name:     "Platform Admin",
		Email:    "admin@example.com",
		Password: string(hashed),
		Role:     "ADMIN",
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	log.Printf("Admin user ready: %s", admin.Email)

	courses := []models.Course{
		{
			Title:          "Go for Backend Developers",
			Description:    "HTTP services, persistence and testing in Go.",
			Category:       "Programming",
			Level:          "INTERMEDIATE",
			Price:          49.99,
			InstructorName: "A. Instructor",
			ModulesCount:   12,
			Status:         "ACTIVE",
		},
		{
			Title:          "SQL Fundamentals",
			Description:    "Schemas, joins and aggregation from scratch.",
			Category:       "Databases",
			Level:          "BEGINNER",
			Price:          0,
			InstructorName: "B. Instructor",
			ModulesCount:   8,
			Status:         "ACTIVE",
		},
		{
			Title:          "Distributed Systems Design",
			Description:    "Consistency, replication and failure handling.",
			Category:       "Architecture",
			Level:          "ADVANCED",
			Price:          89.99,
			InstructorName: "C. Instructor",
			ModulesCount:   15,
			Status:         "ACTIVE",
		},
	}

	for i := range courses {
		if err := db.Where("title = ?", courses[i].Title).FirstOrCreate(&courses[i]).Error; err != nil {
			log.Fatalf("Failed to seed course %q: %v", courses[i].Title, err)
		}
	}
	log.Printf("Seeded %d courses", len(courses))
}

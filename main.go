package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"lms/config"
	"lms/database"
	adminRoutes "lms/routers/adminRoutes"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	enrollmentRoutes "lms/routers/enrollmentRoutes"
	noteRoutes "lms/routers/noteRoutes"
	reviewRoutes "lms/routers/reviewRoutes"
	userRoutes "lms/routers/userRoutes"
	"lms/utils"
)

func main() {
	config.LoadConfig()
	db := database.Connect()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded avatars and other static assets
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app, db)
	userRoutes.SetupUserRoutes(app, db)
	courseRoutes.SetupCourseRoutes(app, db)
	enrollmentRoutes.SetupEnrollmentRoutes(app, db)
	reviewRoutes.SetupReviewRoutes(app, db)
	noteRoutes.SetupNoteRoutes(app, db)
	adminRoutes.SetupAdminRoutes(app, db)

	utils.InitializeReminderScheduler(db)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}

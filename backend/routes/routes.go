package routes

import (
	"medicgrow/backend/ai"
	"medicgrow/backend/config"
	"medicgrow/backend/controllers"
	"medicgrow/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	gemini := ai.NewGeminiClient(ai.KeyPool(cfg), cfg.GeminiModel)
	mistral := ai.NewMistralClient(cfg.MistralAPIKey, cfg.MistralModel)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// Quiz routes
	quizController := controllers.NewQuizController(db, cfg, mistral)
	quiz := app.Group("/api/quiz", authMiddleware)
	quiz.Get("/generate/:exam", quizController.Generate)
	quiz.Get("/generate-ai/:exam", quizController.GenerateAI)
	quiz.Post("/generate-ai/remaining", quizController.GenerateAIRemaining)
	quiz.Post("/submit", quizController.Submit)
	quiz.Get("/history", quizController.History)
	quiz.Get("/report", quizController.Report)

	// AI tutor routes
	aiController := controllers.NewAIController(db, cfg, gemini)
	aiGroup := app.Group("/api/ai", authMiddleware)
	aiGroup.Post("/chat", aiController.Chat)
	aiGroup.Get("/history", aiController.History)
	aiGroup.Post("/career-insight", aiController.CareerInsight)

	// Clinical simulation routes
	gameController := controllers.NewGameController(db, cfg, gemini)
	game := app.Group("/api/game", authMiddleware)
	game.Post("/start", gameController.Start)
	game.Post("/action", gameController.Action)

	// Admin routes
	adminController := controllers.NewAdminController(db, cfg)
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)
	admin.Get("/students", adminController.Students)
	admin.Post("/students", adminController.AddStudent)
	admin.Delete("/students/:id", adminController.DeleteStudent)
	admin.Get("/students/:id/report", adminController.StudentReport)
	admin.Get("/students/:id/report/download", adminController.DownloadStudentReport)
	admin.Get("/analytics", adminController.Analytics)
	admin.Get("/stats", adminController.Stats)
	admin.Get("/users", adminController.Users)
	admin.Get("/questions", adminController.Questions)
	admin.Post("/questions", adminController.CreateQuestion)
	admin.Get("/attempts", adminController.Attempts)
	admin.Get("/activities", adminController.Activities)
}

package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hirebridge/config"
	"hirebridge/database"
	"hirebridge/handlers"
	"hirebridge/middleware"
	"hirebridge/models"
	"hirebridge/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := config.GetAppConfig()

	db, err := database.Connect(cfg.Database.Host, fmt.Sprint(cfg.Database.Port),
		cfg.Database.User, cfg.Database.Password, cfg.Database.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}

	users := models.NewUserModel(db)
	candidates := models.NewCandidateModel(db)
	companies := models.NewCompanyModel(db)

	notifier := services.NewEmailNotificationService()
	approvals := services.NewApprovalService(candidates, companies, notifier)

	limiters := middleware.CreateRateLimiters()

	r := gin.Default()
	r.Use(cors.Default())
	r.Use(middleware.MaxRequestSize(1 << 20))
	r.Use(middleware.SanitizeInput())

	auth := r.Group("/api/auth")
	auth.Use(limiters["auth"].Limit(), middleware.ValidateJSON())
	auth.POST("/register", handlers.Register(users, candidates, companies))
	auth.POST("/login", handlers.Login(users))
	auth.GET("/me", handlers.AuthMiddleware(), handlers.GetProfile(users))

	admin := r.Group("/api/admin")
	admin.Use(limiters["admin"].Limit(), handlers.AuthMiddleware(), handlers.RequireRole(models.RoleMIS))
	admin.POST("/candidates/approval", handlers.CandidateApproval(approvals))
	admin.GET("/candidates/approval", handlers.CandidateApprovalStatus(approvals))
	admin.POST("/companies/approval", handlers.CompanyApproval(approvals))
	admin.GET("/companies/approval", handlers.CompanyApprovalStatus(approvals))

	r.Run(":" + cfg.Port)
}

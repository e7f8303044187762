package app

import (
	"database/sql"
	"fmt"
	"log"

	"otprental/internal/config"
	"otprental/internal/handlers"
	"otprental/internal/middleware"
	"otprental/internal/pdf"
	"otprental/internal/repositories"
	"otprental/internal/routes"
	"otprental/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "otprental/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()
	if err := db.Ping(); err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	if err := repositories.ApplyMigrations(db); err != nil {
		log.Fatal("failed to apply migrations: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	walletRepo := repositories.NewWalletRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.JWT.Secret, cfg.JWT.TTL)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.DryRun,
	)
	userService := services.NewUserService(userRepo, walletRepo, emailService, authService)
	resetService := services.NewPasswordResetService(userRepo, emailService, authService, cfg.OTP.TTL)
	walletService := services.NewWalletService(walletRepo, pdf.NewStatementGenerator())

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService)
	resetHandler := handlers.NewPasswordResetHandler(resetService)
	walletHandler := handlers.NewWalletHandler(walletService, userService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, authHandler, resetHandler, walletHandler, authService)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

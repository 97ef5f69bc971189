package app

import (
	"database/sql"
	"fmt"
	"log"

	"freetrack/internal/config"
	"freetrack/internal/handlers"
	"freetrack/internal/middleware"
	"freetrack/internal/pdf"
	"freetrack/internal/repositories"
	"freetrack/internal/routes"
	"freetrack/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "freetrack/docs"
)

func Run() {
	cfg := config.LoadConfig()
	middleware.SetJWTKey(cfg.Auth.JWTSecret)

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("database connection failed: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("database close: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	sourceRepo := repositories.NewSourceRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	stepRepo := repositories.NewStepRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	userService := services.NewUserService(userRepo, emailService, authService)
	clientService := services.NewClientService(clientRepo)
	contactService := services.NewContactService(contactRepo, clientRepo)
	sourceService := services.NewSourceService(sourceRepo)
	projectService := services.NewProjectService(projectRepo, stepRepo, clientRepo, sourceRepo)

	stepService := services.NewStepService(projectRepo, stepRepo, clientRepo, userRepo)
	stepService.Email = emailService

	// Telegram is optional: without a token the notifier stays nil and
	// outcomes simply are not pushed.
	telegram, err := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		log.Printf("telegram integration disabled: %v", err)
	}
	stepService.Telegram = telegram

	pdfGen := pdf.NewDocumentGenerator(cfg.Files.RootDir, cfg.Files.FontPath)
	reportService := services.NewReportService(projectRepo, stepRepo, clientRepo, pdfGen)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService)
	clientHandler := handlers.NewClientHandler(clientService)
	contactHandler := handlers.NewContactHandler(contactService)
	sourceHandler := handlers.NewSourceHandler(sourceService)
	projectHandler := handlers.NewProjectHandler(projectService, stepService)
	boardHandler := handlers.NewBoardHandler(stepService)
	stepHandler := handlers.NewStepHandler(stepService)
	reportHandler := handlers.NewReportHandler(reportService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		clientHandler,
		contactHandler,
		sourceHandler,
		projectHandler,
		boardHandler,
		stepHandler,
		reportHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

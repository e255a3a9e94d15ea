package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/tmihalic/workboard-api/internal/config"
	"github.com/tmihalic/workboard-api/internal/database"
	"github.com/tmihalic/workboard-api/internal/handlers"
	"github.com/tmihalic/workboard-api/internal/logging"
	"github.com/tmihalic/workboard-api/internal/middleware"
	"github.com/tmihalic/workboard-api/internal/repository"
	"github.com/tmihalic/workboard-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Initialize structured logging
	logging.Init(cfg.LogFile, cfg.GinMode != "release")
	log := logging.Logger

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	db := database.GetDB()
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(db); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions("workboard_session", store))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		log.Warn("OPENAI_API_KEY is not set, task generation is disabled")
	}

	// Initialize services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	teamService := services.NewTeamService(teamRepo, userRepo)
	projectService := services.NewProjectService(projectRepo, teamRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, aiService)
	commentService := services.NewCommentService(commentRepo, taskRepo)
	attachmentService := services.NewAttachmentService(attachmentRepo, taskRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	commentHandler := handlers.NewCommentHandler(commentService)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService)

	requireAuth := middleware.RequireAuth(authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Workboard API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public except /me)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", userHandler.ListUsers)
			users.PUT("/me", userHandler.UpdateProfile)
			users.GET("/:id", userHandler.GetUser)
		}

		// Team routes (protected)
		teams := api.Group("/teams")
		teams.Use(requireAuth)
		{
			teams.POST("", teamHandler.CreateTeam)
			teams.GET("", teamHandler.ListTeams)
			teams.GET("/my", teamHandler.ListMyTeams)
			teams.GET("/:id", teamHandler.GetTeam)
			teams.PUT("/:id", teamHandler.UpdateTeam)
			teams.DELETE("/:id", teamHandler.DeleteTeam)
			teams.POST("/:id/members/:user_id", teamHandler.AddMember)
			teams.DELETE("/:id/members/:user_id", teamHandler.RemoveMember)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/team/:team_id", projectHandler.ListProjectsByTeam)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/my", taskHandler.ListMyTasks)
			tasks.POST("/generate", taskHandler.GenerateTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.PATCH("/:id/assign/:assignee_id", taskHandler.AssignTask)
			tasks.PATCH("/:id/complete", taskHandler.CompleteTask)
			tasks.POST("/:id/comments", commentHandler.AddComment)
			tasks.GET("/:id/comments", commentHandler.ListComments)
			tasks.POST("/:id/attachments", attachmentHandler.AddAttachment)
			tasks.GET("/:id/attachments", attachmentHandler.ListAttachments)
		}

		// Comment routes (protected)
		comments := api.Group("/comments")
		comments.Use(requireAuth)
		{
			comments.DELETE("/:id", commentHandler.DeleteComment)
		}

		// Attachment routes (protected)
		attachments := api.Group("/attachments")
		attachments.Use(requireAuth)
		{
			attachments.DELETE("/:id", attachmentHandler.DeleteAttachment)
		}
	}

	// Start server
	log.Info("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

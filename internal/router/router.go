package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/handlers"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	TaskService    *services.TaskService
	CommentService *services.CommentService
	AuthService    *services.AuthService
	UserRepo       repository.UserRepository
	Tokens         middleware.TokenVerifier
	AllowedOrigins []string
}

// New builds the gin engine with every API route registered.
func New(deps Dependencies) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(deps.AllowedOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	taskHandler := handlers.NewTaskHandler(deps.TaskService)
	commentHandler := handlers.NewCommentHandler(deps.CommentService)
	userHandler := handlers.NewUserHandler(deps.AuthService)

	requireAuth := middleware.RequireAuth(deps.Tokens, deps.UserRepo)
	requireID := middleware.RequireIDParam()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Tracker API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public except /me)
		auth := api.Group("/auth")
		{
			auth.POST("/register/", authHandler.Register)
			auth.POST("/token/", authHandler.ObtainToken)
			auth.POST("/token/refresh/", authHandler.RefreshToken)
			auth.GET("/me/", requireAuth, authHandler.GetCurrentUser)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("/", taskHandler.ListTasks)
			tasks.POST("/", taskHandler.CreateTask)
			tasks.POST("/suggest/", taskHandler.SuggestTasks)
			tasks.GET("/:id/", requireID, taskHandler.GetTask)
			tasks.PATCH("/:id/", requireID, taskHandler.UpdateTask)
			tasks.DELETE("/:id/", requireID, taskHandler.DeleteTask)
			tasks.POST("/:id/complete/", requireID, taskHandler.CompleteTask)
			tasks.POST("/:id/assign/", requireID, taskHandler.AssignTask)
		}

		comments := api.Group("/comments")
		comments.Use(requireAuth)
		{
			comments.GET("/", commentHandler.ListComments)
			comments.POST("/", commentHandler.CreateComment)
			comments.GET("/:id/", requireID, commentHandler.GetComment)
			comments.DELETE("/:id/", requireID, commentHandler.DeleteComment)
		}

		users := api.Group("/users")
		users.Use(requireAuth, middleware.RequireStaff())
		{
			users.DELETE("/:id/", requireID, userHandler.DeleteUser)
		}
	}

	return r
}

package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/neer47/task-manager/internal/handlers"
	"github.com/neer47/task-manager/internal/middleware"
	"github.com/neer47/task-manager/internal/types"
)

func NewRouter(taskHandler *handlers.TaskHandler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Task Management API",
			"documentation": gin.H{
				"users": gin.H{
					"register": "POST /api/users/register",
					"login":    "POST /api/users/login",
					"profile":  "GET /api/users/profile",
				},
				"tasks": gin.H{
					"getAllTasks":   "GET /api/tasks",
					"createTask":    "POST /api/tasks",
					"getTaskById":   "GET /api/tasks/:id",
					"updateTask":    "PUT /api/tasks/:id",
					"deleteTask":    "DELETE /api/tasks/:id",
					"summarizeTask": "POST /api/tasks/:id/summarize",
				},
			},
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		users := api.Group("/users")
		{
			users.POST("/register", handlers.RegisterUser)
			users.POST("/login", handlers.LoginUser)
			users.GET("/profile", middleware.AuthMiddleware(), handlers.GetUserProfile)
		}

		tasks := api.Group("/tasks", middleware.AuthMiddleware())
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTaskByID)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/summarize", taskHandler.SummarizeTask)
		}
	}

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Not Found - " + ctx.Request.URL.Path})
	})

	return r
}

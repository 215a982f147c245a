package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tasklist-be/internal/controllers"
	"tasklist-be/internal/middleware"
)

// Options holds everything the HTTP surface is built from.
type Options struct {
	AuthController     *controllers.AuthController
	TaskController     *controllers.TaskController
	TokenVerifier      middleware.TokenVerifier
	CORSAllowedOrigins []string
}

// New builds the gin engine with middleware and all API routes registered.
func New(opts Options) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID(), gin.Logger(), gin.Recovery())

	if len(opts.CORSAllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = opts.CORSAllowedOrigins
		corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
		corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
		router.Use(cors.New(corsConfig))
	}

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok": true,
		})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", opts.AuthController.Register)
			auth.POST("/login", opts.AuthController.Login)
		}

		// Protected routes - require a bearer token
		todos := api.Group("/todos")
		todos.Use(middleware.AuthMiddleware(opts.TokenVerifier))
		{
			todos.GET("", opts.TaskController.ListTasks)
			todos.POST("", opts.TaskController.CreateTask)
			todos.PATCH("/:id", opts.TaskController.UpdateTask)
			todos.DELETE("/:id", opts.TaskController.DeleteTask)
		}
	}

	return router
}

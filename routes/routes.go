package routes

import (
	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/controllers"
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware goes in before any route is registered so every
	// handler actually runs behind it.
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	// Cookie session for the support chat
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		MaxAge:   60 * 60 * 24,
		Path:     "/",
		Secure:   cfg.Env == "production",
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("qrmenu", store))

	// OAuth entry points live outside the versioned API
	auth := router.Group("/auth")
	{
		auth.GET("/google/login", controllers.GoogleLogin)
		auth.GET("/google/callback", controllers.GoogleCallback)
	}

	api := router.Group("/v1")
	{
		initPublicRoutes(api)
		initOwnerRoutes(api)
		initAdminRoutes(api)
	}

	return router
}

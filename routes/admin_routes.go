package routes

import (
	"github.com/emirhan-dev/QRMenu/controllers"
	"github.com/emirhan-dev/QRMenu/middleware"
	"github.com/gin-gonic/gin"
)

func initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.POST("/login", controllers.AdminLogin)

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		protected.GET("/dashboard", controllers.AdminDashboard)
		protected.GET("/tenants", controllers.AdminListTenants)
		protected.PUT("/tenants/:id/block", controllers.AdminBlockTenant)
		protected.GET("/transactions", controllers.AdminListTransactions)
		protected.GET("/transactions/export", controllers.AdminExportTransactions)
		protected.GET("/settings", controllers.AdminListSettings)
		protected.PUT("/settings", controllers.AdminUpdateSettings)
		protected.GET("/rates", controllers.ListExchangeRates)
	}
}

package routes

import (
	"github.com/emirhan-dev/QRMenu/controllers"
	"github.com/emirhan-dev/QRMenu/middleware"
	"github.com/gin-gonic/gin"
)

func initOwnerRoutes(api *gin.RouterGroup) {
	owner := api.Group("/owner")
	owner.Use(middleware.TenantAuthMiddleware())
	{
		owner.GET("/profile", controllers.GetTenantProfile)
		owner.PUT("/profile", controllers.UpdateTenantProfile)
		owner.GET("/settings", controllers.GetTenantSettings)
		owner.PUT("/settings", controllers.UpdateTenantSettings)

		owner.GET("/categories", controllers.ListCategories)
		owner.POST("/categories", controllers.CreateCategory)
		owner.PUT("/categories/:id", controllers.UpdateCategory)
		owner.DELETE("/categories/:id", controllers.DeleteCategory)

		owner.GET("/products", controllers.ListProducts)
		owner.POST("/products", controllers.CreateProduct)
		owner.PUT("/products/:id", controllers.UpdateProduct)
		owner.DELETE("/products/:id", controllers.DeleteProduct)

		owner.GET("/orders", controllers.ListOrders)
		owner.PUT("/orders/:id/status", controllers.UpdateOrderStatus)
		owner.GET("/orders/:id/receipt", controllers.DownloadOrderReceipt)

		owner.GET("/feedback", controllers.ListFeedback)
		owner.GET("/transactions", controllers.ListTenantTransactions)
	}
}

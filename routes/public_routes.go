package routes

import (
	"github.com/emirhan-dev/QRMenu/controllers"
	"github.com/gin-gonic/gin"
)

func initPublicRoutes(api *gin.RouterGroup) {
	api.POST("/auth/register", controllers.RegisterTenant)
	api.POST("/auth/login", controllers.LoginTenant)

	api.GET("/menu/:slug", controllers.GetMenu)
	api.GET("/menu/:slug/display", controllers.GetMenuDisplay)
	api.POST("/menu/:slug/orders", controllers.PlaceOrder)
	api.POST("/menu/:slug/feedback", controllers.SubmitFeedback)

	api.GET("/plans", controllers.ListPlans)
	api.GET("/rates", controllers.ListExchangeRates)

	api.POST("/chat", controllers.SupportChat)

	// Payment lifecycle. The callback is called by the provider, not by
	// browsers; it authenticates by signature alone.
	payment := api.Group("/payment")
	{
		payment.POST("/initiate", controllers.InitiatePayment)
		payment.POST("/callback", controllers.PaymentCallback)
		payment.POST("/activate", controllers.ActivateSubscription)
	}
}

package main

import (
	"context"
	"log"

	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/controllers"
	"github.com/emirhan-dev/QRMenu/routes"
	"github.com/emirhan-dev/QRMenu/services"
	"github.com/emirhan-dev/QRMenu/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Seed platform admin
	if err := controllers.CreateSampleAdmin(); err != nil {
		utils.LogError("Failed to seed platform admin: %v", err)
		log.Fatal("Failed to seed platform admin:", err)
	}

	// Initialize Google OAuth
	config.InitGoogleOAuth()

	// Wire payment components with their secrets
	paytr := services.NewPayTRService(services.PayTRConfig{
		MerchantID:   cfg.PayTRMerchantID,
		MerchantKey:  cfg.PayTRMerchantKey,
		MerchantSalt: cfg.PayTRSalt,
		TokenURL:     cfg.PayTRTokenURL,
		OkURL:        cfg.PayTROkURL,
		FailURL:      cfg.PayTRFailURL,
		TestMode:     cfg.Env != "production",
	})
	subscriptions := services.NewSubscriptionService(config.DB)
	controllers.InitPaymentServices(paytr, &services.EmailNotifier{}, subscriptions, cfg.MerchantOidPrefix)

	// Background exchange rate refresh
	exchange := services.NewExchangeService(config.DB, cfg.ExchangeRateURL, cfg.ExchangeRateInterval)
	exchange.Start(context.Background())

	// Set up router
	router := routes.SetupRouter(cfg)

	utils.LogInfo("Server starting on port %s", cfg.Port)
	// Start server
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}

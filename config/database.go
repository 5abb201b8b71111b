package config

import (
	"fmt"

	"github.com/emirhan-dev/QRMenu/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection and migrates the schema
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	if err := MigrateSchema(DB); err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}

// MigrateSchema runs AutoMigrate for every model. Shared with the test
// harness so tests migrate the exact production schema.
func MigrateSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Tenant{},
		&models.Admin{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Feedback{},
		&models.PaymentTransaction{},
		&models.PlatformSetting{},
		&models.ExchangeRate{},
		&models.ChatSession{},
		&models.ChatMessage{},
	)
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Tenant represents a restaurant account in the system
type Tenant struct {
	gorm.Model
	Name            string `json:"name"`
	Slug            string `gorm:"uniqueIndex;not null" json:"slug"`
	Email           string `gorm:"uniqueIndex;not null" json:"email"`
	Password        string `json:"-"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	LogoURL         string `json:"logo_url"`
	GoogleID        string `gorm:"default:null" json:"google_id"`
	Currency        string `gorm:"default:'TRY'" json:"currency"`
	DefaultLanguage string `gorm:"default:'tr'" json:"default_language"`
	// Seconds each category stays on screen in TV display mode
	DisplayInterval     int        `gorm:"default:10" json:"display_interval"`
	SubscriptionPlan    string     `gorm:"default:'free'" json:"subscription_plan"`
	SubscriptionStatus  string     `gorm:"default:'inactive'" json:"subscription_status"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date"`
	IsBlocked           bool       `gorm:"default:false" json:"is_blocked"`
	LastLoginAt         time.Time  `json:"last_login_at"`

	Categories []Category `json:"categories,omitempty" gorm:"foreignKey:TenantID"`
}

// Admin represents a platform administrator
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}

// Category represents a menu section belonging to one tenant
type Category struct {
	gorm.Model
	TenantID  uint      `gorm:"index;not null" json:"tenant_id"`
	Name      string    `gorm:"not null" json:"name"`
	NameEn    string    `json:"name_en"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	Products  []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

// Product represents a single menu item
type Product struct {
	gorm.Model
	TenantID      uint     `gorm:"index;not null" json:"tenant_id"`
	CategoryID    uint     `gorm:"index;not null" json:"category_id"`
	Category      Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Name          string   `gorm:"not null" json:"name"`
	NameEn        string   `json:"name_en"`
	Description   string   `json:"description"`
	DescriptionEn string   `json:"description_en"`
	Price         float64  `json:"price"`
	ImageURL      string   `json:"image_url"`
	IsAvailable   bool     `gorm:"default:true" json:"is_available"`
	SortOrder     int      `gorm:"default:0" json:"sort_order"`
}

// Feedback represents a customer comment left on a tenant's menu page
type Feedback struct {
	gorm.Model
	TenantID uint   `gorm:"index;not null" json:"tenant_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Rating   int    `json:"rating" gorm:"check:rating >= 1 AND rating <= 5"`
	Comment  string `json:"comment"`
}

// PlatformSetting is a key/value pair managed from the admin panel
type PlatformSetting struct {
	gorm.Model
	Key   string `gorm:"uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

// ExchangeRate holds the last fetched rate for one currency against the base
type ExchangeRate struct {
	gorm.Model
	Code      string    `gorm:"uniqueIndex;not null" json:"code"`
	Rate      float64   `json:"rate"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ChatSession groups support-chat messages for one browser session
type ChatSession struct {
	gorm.Model
	SessionID string        `gorm:"uniqueIndex;not null" json:"session_id"`
	TenantID  *uint         `json:"tenant_id"`
	Messages  []ChatMessage `json:"messages,omitempty" gorm:"foreignKey:ChatSessionID"`
}

// ChatMessage is a single turn in a support-chat session
type ChatMessage struct {
	gorm.Model
	ChatSessionID uint   `gorm:"index;not null" json:"chat_session_id"`
	Role          string `json:"role"` // user or assistant
	Content       string `gorm:"type:text" json:"content"`
}

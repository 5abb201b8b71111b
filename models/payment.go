package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment transaction statuses. A row is created as pending and moves
// exactly once to success or failed when the provider callback arrives.
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// PaymentTransaction records one checkout attempt against the payment
// provider. MerchantOid is the idempotency key for the whole flow: it is
// minted at token-creation time and the callback updates the row by it.
type PaymentTransaction struct {
	gorm.Model
	MerchantOid   string          `gorm:"uniqueIndex;not null" json:"merchant_oid"`
	TenantID      uint            `gorm:"index;not null" json:"tenant_id"`
	Tenant        Tenant          `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	PaymentAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"payment_amount"`
	Currency      string          `gorm:"default:'TL'" json:"currency"`
	PaymentStatus string          `gorm:"default:'pending'" json:"payment_status"`
	// Opaque token returned by the provider, embedded in the checkout iframe URL
	PaytrToken  string `json:"paytr_token"`
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`
	UserPhone   string `json:"user_phone"`
	UserAddress string `json:"user_address"`
	PlanType    string `json:"plan_type"`
	PlanName    string `json:"plan_name"`
	// Human-readable description of what was purchased, informational only
	OrderDetails string `gorm:"type:text" json:"order_details"`
	// Raw callback payload, kept verbatim for audit, never parsed again
	CallbackData       string     `gorm:"type:text" json:"callback_data"`
	FailReason         string     `json:"fail_reason"`
	CallbackReceivedAt *time.Time `json:"callback_received_at"`
}

package services

import (
	"errors"
	"time"

	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/utils"
	"gorm.io/gorm"
)

// SubscriptionService activates tenant subscriptions after verified payments
type SubscriptionService struct {
	db *gorm.DB
}

// NewSubscriptionService creates the activation service
func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// Activate extends the tenant's subscription after checking that a
// successful transaction exists for the tenant/order pair. The check is the
// whole point: activation must not be triggerable without a verified
// payment. The new end date counts from now, not from the current expiry.
func (s *SubscriptionService) Activate(tenantID uint, merchantOid string) (*models.Tenant, error) {
	var txn models.PaymentTransaction
	err := s.db.Where("merchant_oid = ? AND tenant_id = ? AND payment_status = ?",
		merchantOid, tenantID, models.PaymentStatusSuccess).First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("no successful payment found for this order")
		}
		return nil, utils.PersistenceError("failed to look up payment transaction", err)
	}

	var tenant models.Tenant
	if err := s.db.First(&tenant, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("tenant not found")
		}
		return nil, utils.PersistenceError("failed to look up tenant", err)
	}

	days := 30
	plan := models.FindPlan(txn.PlanType)
	planName := "premium"
	if plan != nil {
		days = plan.Days
		planName = plan.Type
	}

	endDate := time.Now().Add(time.Duration(days) * 24 * time.Hour)
	updates := map[string]interface{}{
		"subscription_plan":     planName,
		"subscription_status":   "active",
		"subscription_end_date": endDate,
	}
	if err := s.db.Model(&tenant).Updates(updates).Error; err != nil {
		return nil, utils.PersistenceError("failed to update tenant subscription", err)
	}

	tenant.SubscriptionPlan = planName
	tenant.SubscriptionStatus = "active"
	tenant.SubscriptionEndDate = &endDate
	return &tenant, nil
}

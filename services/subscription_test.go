package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Tenant{}, &models.PaymentTransaction{}))
	return db
}

func seedTenantWithTxn(t *testing.T, db *gorm.DB, status string) (*models.Tenant, *models.PaymentTransaction) {
	t.Helper()
	tenant := models.Tenant{Name: "Test Lokanta", Slug: "test-lokanta", Email: "owner@test.dev"}
	require.NoError(t, db.Create(&tenant).Error)

	txn := models.PaymentTransaction{
		MerchantOid:   utils.GenerateMerchantOid("QRM"),
		TenantID:      tenant.ID,
		PaymentAmount: decimal.NewFromFloat(299.00),
		PaymentStatus: status,
		PlanType:      "monthly",
		PlanName:      "Premium Monthly",
	}
	require.NoError(t, db.Create(&txn).Error)
	return &tenant, &txn
}

func TestActivateExtendsSubscription(t *testing.T) {
	db := newTestDB(t)
	tenant, txn := seedTenantWithTxn(t, db, models.PaymentStatusSuccess)
	svc := NewSubscriptionService(db)

	before := time.Now()
	updated, err := svc.Activate(tenant.ID, txn.MerchantOid)
	require.NoError(t, err)

	assert.Equal(t, "active", updated.SubscriptionStatus)
	assert.Equal(t, "monthly", updated.SubscriptionPlan)
	require.NotNil(t, updated.SubscriptionEndDate)

	// 30 days from the call time, not from the previous expiry
	expected := before.Add(30 * 24 * time.Hour)
	assert.WithinDuration(t, expected, *updated.SubscriptionEndDate, time.Minute)

	var persisted models.Tenant
	require.NoError(t, db.First(&persisted, tenant.ID).Error)
	assert.Equal(t, "active", persisted.SubscriptionStatus)
}

func TestActivateCountsFromNowNotExpiry(t *testing.T) {
	db := newTestDB(t)
	tenant, txn := seedTenantWithTxn(t, db, models.PaymentStatusSuccess)

	// Tenant still has two weeks left; re-activation does not stack them
	existing := time.Now().Add(14 * 24 * time.Hour)
	require.NoError(t, db.Model(tenant).Update("subscription_end_date", existing).Error)

	updated, err := NewSubscriptionService(db).Activate(tenant.ID, txn.MerchantOid)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), *updated.SubscriptionEndDate, time.Minute)
}

func TestActivateRequiresSuccessfulTransaction(t *testing.T) {
	for _, status := range []string{models.PaymentStatusPending, models.PaymentStatusFailed} {
		t.Run(status, func(t *testing.T) {
			db := newTestDB(t)
			tenant, txn := seedTenantWithTxn(t, db, status)

			_, err := NewSubscriptionService(db).Activate(tenant.ID, txn.MerchantOid)
			require.Error(t, err)
			assert.True(t, utils.IsNotFoundError(err))

			var persisted models.Tenant
			require.NoError(t, db.First(&persisted, tenant.ID).Error)
			assert.Equal(t, "inactive", persisted.SubscriptionStatus)
		})
	}
}

func TestActivateRejectsWrongTenant(t *testing.T) {
	db := newTestDB(t)
	_, txn := seedTenantWithTxn(t, db, models.PaymentStatusSuccess)

	other := models.Tenant{Name: "Other", Slug: "other", Email: "other@test.dev"}
	require.NoError(t, db.Create(&other).Error)

	_, err := NewSubscriptionService(db).Activate(other.ID, txn.MerchantOid)
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
}

func TestActivateUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	tenant, _ := seedTenantWithTxn(t, db, models.PaymentStatusSuccess)

	_, err := NewSubscriptionService(db).Activate(tenant.ID, "QRM-0-nosuch00")
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
}

package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingNotifier struct {
	events chan services.PaymentEvent
}

func (n *recordingNotifier) Notify(event services.PaymentEvent) error {
	n.events <- event
	return nil
}

type paymentHarness struct {
	router   *gin.Engine
	service  *services.PayTRService
	notifier *recordingNotifier
	tenant   *models.Tenant
}

// newPaymentHarness wires the full payment stack against an in-memory
// database and a fake provider token endpoint, with fixture secrets.
func newPaymentHarness(t *testing.T) *paymentHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, config.MigrateSchema(db))
	config.DB = db

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "success", "token": "tok-test-123"})
	}))
	t.Cleanup(provider.Close)

	svc := services.NewPayTRService(services.PayTRConfig{
		MerchantID:   "123456",
		MerchantKey:  "test-merchant-key",
		MerchantSalt: "test-merchant-salt",
		TokenURL:     provider.URL,
	})
	notifier := &recordingNotifier{events: make(chan services.PaymentEvent, 8)}
	InitPaymentServices(svc, notifier, services.NewSubscriptionService(db), "QRM")

	router := gin.New()
	router.POST("/v1/payment/initiate", InitiatePayment)
	router.POST("/v1/payment/callback", PaymentCallback)
	router.POST("/v1/payment/activate", ActivateSubscription)

	tenant := models.Tenant{Name: "Deniz Balik", Slug: "deniz-balik", Email: "deniz@test.dev"}
	require.NoError(t, db.Create(&tenant).Error)

	return &paymentHarness{router: router, service: svc, notifier: notifier, tenant: &tenant}
}

func (h *paymentHarness) postJSON(t *testing.T, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *paymentHarness) postCallback(t *testing.T, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/payment/callback", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *paymentHarness) initiate(t *testing.T) string {
	t.Helper()
	w := h.postJSON(t, "/v1/payment/initiate", gin.H{
		"tenant_id":    h.tenant.ID,
		"user_name":    "Deniz Kaya",
		"user_email":   "deniz@test.dev",
		"user_phone":   "+905551112233",
		"user_address": "Izmir",
		"amount":       299.00,
		"plan_type":    "monthly",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			IframeToken string `json:"iframe_token"`
			MerchantOid string `json:"merchant_oid"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.MerchantOid)
	return resp.Data.MerchantOid
}

func (h *paymentHarness) signedCallback(merchantOid, status, totalAmount string) url.Values {
	form := url.Values{}
	form.Set("merchant_oid", merchantOid)
	form.Set("status", status)
	form.Set("total_amount", totalAmount)
	form.Set("hash", h.service.CallbackHash(merchantOid, status, totalAmount))
	return form
}

func TestPaymentEndToEnd(t *testing.T) {
	h := newPaymentHarness(t)

	// Token creation leaves a pending record behind
	merchantOid := h.initiate(t)
	assert.Regexp(t, regexp.MustCompile(`^QRM-\d+-[a-zA-Z0-9]+$`), merchantOid)

	var txn models.PaymentTransaction
	require.NoError(t, config.DB.Where("merchant_oid = ?", merchantOid).First(&txn).Error)
	assert.Equal(t, models.PaymentStatusPending, txn.PaymentStatus)
	assert.True(t, txn.PaymentAmount.Equal(decimal.NewFromFloat(299.00)))
	assert.Equal(t, "tok-test-123", txn.PaytrToken)
	assert.Nil(t, txn.CallbackReceivedAt)

	// Correctly signed success callback
	w := h.postCallback(t, h.signedCallback(merchantOid, "success", "29900"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	require.NoError(t, config.DB.Where("merchant_oid = ?", merchantOid).First(&txn).Error)
	assert.Equal(t, models.PaymentStatusSuccess, txn.PaymentStatus)
	require.NotNil(t, txn.CallbackReceivedAt)
	assert.NotEmpty(t, txn.CallbackData)

	select {
	case event := <-h.notifier.events:
		assert.Equal(t, merchantOid, event.MerchantOid)
		assert.Equal(t, h.tenant.ID, event.TenantID)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a payment notification")
	}

	// Activation extends the subscription from now
	w2 := h.postJSON(t, "/v1/payment/activate", gin.H{
		"tenant_id":    h.tenant.ID,
		"merchant_oid": merchantOid,
	})
	assert.Equal(t, http.StatusOK, w2.Code, w2.Body.String())

	var tenant models.Tenant
	require.NoError(t, config.DB.First(&tenant, h.tenant.ID).Error)
	assert.Equal(t, "active", tenant.SubscriptionStatus)
	require.NotNil(t, tenant.SubscriptionEndDate)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), *tenant.SubscriptionEndDate, time.Minute)
}

func TestCallbackIdempotent(t *testing.T) {
	h := newPaymentHarness(t)
	merchantOid := h.initiate(t)

	form := h.signedCallback(merchantOid, "success", "29900")
	first := h.postCallback(t, form)
	require.Equal(t, "OK", first.Body.String())

	var afterFirst models.PaymentTransaction
	require.NoError(t, config.DB.Where("merchant_oid = ?", merchantOid).First(&afterFirst).Error)
	require.NotNil(t, afterFirst.CallbackReceivedAt)

	// Provider retries with identical payload; same response, same state
	second := h.postCallback(t, form)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "OK", second.Body.String())

	var afterSecond models.PaymentTransaction
	require.NoError(t, config.DB.Where("merchant_oid = ?", merchantOid).First(&afterSecond).Error)
	assert.Equal(t, models.PaymentStatusSuccess, afterSecond.PaymentStatus)
	assert.True(t, afterFirst.CallbackReceivedAt.Equal(*afterSecond.CallbackReceivedAt),
		"callback_received_at must keep the first delivery time")

	// Only the first delivery notifies
	<-h.notifier.events
	select {
	case <-h.notifier.events:
		t.Fatal("replayed callback must not re-notify")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCallbackRejectsBadSignature(t *testing.T) {
	h := newPaymentHarness(t)
	merchantOid := h.initiate(t)

	form := h.signedCallback(merchantOid, "success", "29900")
	form.Set("hash", "bm90LXRoZS1yZWFsLWhhc2g=")

	w := h.postCallback(t, form)
	assert.NotEqual(t, http.StatusOK, w.Code)
	assert.Equal(t, "FAIL", w.Body.String())

	// Nothing changed
	var txn models.PaymentTransaction
	require.NoError(t, config.DB.Where("merchant_oid = ?", merchantOid).First(&txn).Error)
	assert.Equal(t, models.PaymentStatusPending, txn.PaymentStatus)
	assert.Nil(t, txn.CallbackReceivedAt)

	var tenant models.Tenant
	require.NoError(t, config.DB.First(&tenant, h.tenant.ID).Error)
	assert.Equal(t, "inactive", tenant.SubscriptionStatus)
}

func TestCallbackUnknownStatusMapsToFailed(t *testing.T) {
	h := newPaymentHarness(t)
	merchantOid := h.initiate(t)

	// Valid signature, but not the literal success marker
	w := h.postCallback(t, h.signedCallback(merchantOid, "waiting", "29900"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	var txn models.PaymentTransaction
	require.NoError(t, config.DB.Where("merchant_oid = ?", merchantOid).First(&txn).Error)
	assert.Equal(t, models.PaymentStatusFailed, txn.PaymentStatus)
}

func TestCallbackUnknownOrderFailsLoudly(t *testing.T) {
	h := newPaymentHarness(t)

	w := h.postCallback(t, h.signedCallback("QRM-0-missing0", "success", "29900"))
	assert.NotEqual(t, http.StatusOK, w.Code)
	assert.Equal(t, "FAIL", w.Body.String())

	// No row gets fabricated for an unknown order id
	var count int64
	config.DB.Model(&models.PaymentTransaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCallbackMissingFields(t *testing.T) {
	h := newPaymentHarness(t)

	form := url.Values{}
	form.Set("merchant_oid", "QRM-1-abcdefgh")
	w := h.postCallback(t, form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "FAIL", w.Body.String())
}

func TestActivationRequiresSuccessfulPayment(t *testing.T) {
	h := newPaymentHarness(t)
	merchantOid := h.initiate(t)

	// Still pending: activation must refuse
	w := h.postJSON(t, "/v1/payment/activate", gin.H{
		"tenant_id":    h.tenant.ID,
		"merchant_oid": merchantOid,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Failed: still refused
	h.postCallback(t, h.signedCallback(merchantOid, "failed", "29900"))
	w = h.postJSON(t, "/v1/payment/activate", gin.H{
		"tenant_id":    h.tenant.ID,
		"merchant_oid": merchantOid,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var tenant models.Tenant
	require.NoError(t, config.DB.First(&tenant, h.tenant.ID).Error)
	assert.Equal(t, "inactive", tenant.SubscriptionStatus)
}

func TestInitiateValidation(t *testing.T) {
	h := newPaymentHarness(t)

	w := h.postJSON(t, "/v1/payment/initiate", gin.H{
		"tenant_id":  h.tenant.ID,
		"user_name":  "Deniz Kaya",
		"user_phone": "+905551112233",
		"amount":     299.00,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.postJSON(t, "/v1/payment/initiate", gin.H{
		"tenant_id":  h.tenant.ID,
		"user_name":  "Deniz Kaya",
		"user_email": "deniz@test.dev",
		"user_phone": "+905551112233",
		"amount":     -5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.postJSON(t, "/v1/payment/initiate", gin.H{
		"tenant_id":  h.tenant.ID,
		"user_name":  "Deniz Kaya",
		"user_email": "deniz@test.dev",
		"user_phone": "not-a-number",
		"amount":     299.00,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// No record may exist for a rejected request
	var count int64
	config.DB.Model(&models.PaymentTransaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestInitiateUnknownTenant(t *testing.T) {
	h := newPaymentHarness(t)

	w := h.postJSON(t, "/v1/payment/initiate", gin.H{
		"tenant_id":  99999,
		"user_name":  "Deniz Kaya",
		"user_email": "deniz@test.dev",
		"user_phone": "+905551112233",
		"amount":     299.00,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInitiateProviderRejectionLeavesNoRecord(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, config.MigrateSchema(db))
	config.DB = db

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "failed", "reason": "card country blocked"})
	}))
	defer provider.Close()

	svc := services.NewPayTRService(services.PayTRConfig{
		MerchantID:   "123456",
		MerchantKey:  "test-merchant-key",
		MerchantSalt: "test-merchant-salt",
		TokenURL:     provider.URL,
	})
	InitPaymentServices(svc, nil, services.NewSubscriptionService(db), "QRM")

	router := gin.New()
	router.POST("/v1/payment/initiate", InitiatePayment)

	tenant := models.Tenant{Name: "Deniz Balik", Slug: "deniz-balik", Email: "deniz@test.dev"}
	require.NoError(t, db.Create(&tenant).Error)

	payload, _ := json.Marshal(gin.H{
		"tenant_id":  tenant.ID,
		"user_name":  "Deniz Kaya",
		"user_email": "deniz@test.dev",
		"user_phone": "+905551112233",
		"amount":     299.00,
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/payment/initiate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// The gateway's refusal reason must reach the checkout caller
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "card country blocked")

	var count int64
	db.Model(&models.PaymentTransaction{}).Count(&count)
	assert.Equal(t, int64(0), count, "a rejected token request must not write a transaction")
}

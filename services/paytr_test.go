package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = PayTRConfig{
	MerchantID:   "123456",
	MerchantKey:  "test-merchant-key",
	MerchantSalt: "test-merchant-salt",
	OkURL:        "https://example.com/ok",
	FailURL:      "https://example.com/fail",
}

func signWithKey(key, data string) string {
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func sampleRequest() TokenRequest {
	return TokenRequest{
		MerchantOid: "QRM-1693412345-a1b2c3d4",
		UserIP:      "203.0.113.10",
		UserName:    "Ayşe Yılmaz",
		Email:       "ayse@example.com",
		UserPhone:   "+905551112233",
		UserAddress: "Istanbul",
		Amount:      decimal.NewFromFloat(299.00),
		BasketName:  "Premium Monthly",
		Currency:    "TL",
	}
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, "29900", MinorUnits(decimal.NewFromFloat(299.00)))
	assert.Equal(t, "50", MinorUnits(decimal.NewFromFloat(0.50)))
	// Truncated, not rounded
	assert.Equal(t, "1099", MinorUnits(decimal.NewFromFloat(10.999)))
}

func TestBasketEncoding(t *testing.T) {
	raw, err := base64.StdEncoding.DecodeString(Basket("Premium Monthly", decimal.NewFromFloat(299.00)))
	require.NoError(t, err)

	var basket [][]interface{}
	require.NoError(t, json.Unmarshal(raw, &basket))
	require.Len(t, basket, 1)
	assert.Equal(t, "Premium Monthly", basket[0][0])
	assert.Equal(t, "299.00", basket[0][1])
	assert.Equal(t, float64(1), basket[0][2])
}

func TestTokenHashMatchesDocumentedOrder(t *testing.T) {
	svc := NewPayTRService(testCfg)
	req := sampleRequest()
	basket := Basket(req.BasketName, req.Amount)

	// merchant id, email, order id, minor-unit amount, basket, installment
	// flags, decimal amount, currency, then the salt appended.
	expected := signWithKey(testCfg.MerchantKey,
		"123456"+"ayse@example.com"+"QRM-1693412345-a1b2c3d4"+"29900"+basket+"0"+"0"+"299.00"+"TL"+"test-merchant-salt")

	assert.Equal(t, expected, svc.TokenHash(req, basket, "0", "0"))
}

func TestGetTokenSuccess(t *testing.T) {
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "success", "token": "tok-abc123"})
	}))
	defer server.Close()

	cfg := testCfg
	cfg.TokenURL = server.URL
	svc := NewPayTRService(cfg)

	token, err := svc.GetToken(sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "tok-abc123", token)

	assert.Equal(t, "123456", gotForm["merchant_id"])
	assert.Equal(t, "QRM-1693412345-a1b2c3d4", gotForm["merchant_oid"])
	assert.Equal(t, "29900", gotForm["payment_amount"])
	assert.Equal(t, "TL", gotForm["currency"])
	assert.NotEmpty(t, gotForm["user_basket"])

	// The wire hash must verify against the documented concatenation
	req := sampleRequest()
	expected := NewPayTRService(cfg).TokenHash(req, gotForm["user_basket"], "0", "0")
	assert.Equal(t, expected, gotForm["paytr_token"])
}

func TestGetTokenProviderRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "failed", "reason": "invalid merchant"})
	}))
	defer server.Close()

	cfg := testCfg
	cfg.TokenURL = server.URL
	svc := NewPayTRService(cfg)

	token, err := svc.GetToken(sampleRequest())
	require.Error(t, err)
	assert.Empty(t, token)
	assert.Contains(t, err.Error(), "invalid merchant")
	assert.True(t, utils.IsAppError(err))
}

func TestGetTokenProviderUnreachable(t *testing.T) {
	cfg := testCfg
	cfg.TokenURL = "http://127.0.0.1:1/get-token"
	svc := NewPayTRService(cfg)

	_, err := svc.GetToken(sampleRequest())
	require.Error(t, err)
	assert.True(t, utils.IsAppError(err))
}

func TestGetTokenValidation(t *testing.T) {
	svc := NewPayTRService(testCfg)

	req := sampleRequest()
	req.Email = ""
	_, err := svc.GetToken(req)
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))

	req = sampleRequest()
	req.Amount = decimal.Zero
	_, err = svc.GetToken(req)
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
}

func TestCallbackSignatureSymmetric(t *testing.T) {
	svc := NewPayTRService(testCfg)

	hash := svc.CallbackHash("QRM-1-abc", "success", "29900")
	assert.True(t, svc.VerifyCallbackSignature("QRM-1-abc", "success", "29900", hash))

	// The salt is signed data, not the key
	expected := signWithKey(testCfg.MerchantKey, "QRM-1-abc"+testCfg.MerchantSalt+"success"+"29900")
	assert.Equal(t, expected, hash)
}

func TestCallbackSignatureRejectsTampering(t *testing.T) {
	svc := NewPayTRService(testCfg)
	hash := svc.CallbackHash("QRM-1-abc", "success", "29900")

	// Flipping any field invalidates the signature
	assert.False(t, svc.VerifyCallbackSignature("QRM-1-abd", "success", "29900", hash))
	assert.False(t, svc.VerifyCallbackSignature("QRM-1-abc", "failed", "29900", hash))
	assert.False(t, svc.VerifyCallbackSignature("QRM-1-abc", "success", "29901", hash))

	// Flipping a byte of the hash itself
	tampered := []byte(hash)
	tampered[0] ^= 0x01
	assert.False(t, svc.VerifyCallbackSignature("QRM-1-abc", "success", "29900", string(tampered)))

	// A hash minted with a different key never verifies
	otherCfg := testCfg
	otherCfg.MerchantKey = "some-other-key"
	other := NewPayTRService(otherCfg)
	assert.False(t, svc.VerifyCallbackSignature("QRM-1-abc", "success", "29900",
		other.CallbackHash("QRM-1-abc", "success", "29900")))
}

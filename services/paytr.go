package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/shopspring/decimal"
)

const defaultTokenURL = "https://www.paytr.com/odeme/api/get-token"

// PayTRConfig carries the merchant credentials and endpoints. The key and
// salt are injected here once at construction; nothing below reads the
// environment.
type PayTRConfig struct {
	MerchantID   string
	MerchantKey  string
	MerchantSalt string
	TokenURL     string
	OkURL        string
	FailURL      string
	Timeout      time.Duration
	TestMode     bool
}

// PayTRService builds signed token requests for the hosted checkout iframe
// and verifies callback signatures.
type PayTRService struct {
	cfg    PayTRConfig
	client *http.Client
}

// NewPayTRService creates a provider client. A zero Timeout defaults to 30s;
// a slow provider response fails the whole call rather than hanging it.
func NewPayTRService(cfg PayTRConfig) *PayTRService {
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &PayTRService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// TokenRequest is one checkout attempt. Amount is in major display-currency
// units (e.g. 299.00).
type TokenRequest struct {
	MerchantOid string
	UserIP      string
	UserName    string
	Email       string
	UserPhone   string
	UserAddress string
	Amount      decimal.Decimal
	BasketName  string
	Currency    string
}

type tokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	Reason string `json:"reason"`
}

// MinorUnits renders the amount the way the provider wants it on the wire:
// multiplied by 100 and truncated to an integer string.
func MinorUnits(amount decimal.Decimal) string {
	return amount.Mul(decimal.NewFromInt(100)).Truncate(0).String()
}

func (s *PayTRService) sign(data string) string {
	h := hmac.New(sha256.New, []byte(s.cfg.MerchantKey))
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Basket encodes the single-line basket: product name, unit price fixed to
// two decimals, quantity 1.
func Basket(name string, amount decimal.Decimal) string {
	b, _ := json.Marshal([][]interface{}{{name, amount.StringFixed(2), 1}})
	return base64.StdEncoding.EncodeToString(b)
}

// TokenHash reproduces the provider's documented concatenation order
// byte-for-byte. Reordering any field invalidates the signature, so this
// list is a wire contract, not a style choice.
func (s *PayTRService) TokenHash(r TokenRequest, basket, noInstallment, maxInstallment string) string {
	hashStr := s.cfg.MerchantID +
		r.Email +
		r.MerchantOid +
		MinorUnits(r.Amount) +
		basket +
		noInstallment +
		maxInstallment +
		r.Amount.StringFixed(2) +
		r.Currency
	return s.sign(hashStr + s.cfg.MerchantSalt)
}

// GetToken validates the request, signs it, and exchanges it for an opaque
// iframe token at the provider's token endpoint. It persists nothing; the
// caller records the transaction only after the provider accepts.
func (s *PayTRService) GetToken(r TokenRequest) (string, error) {
	if r.MerchantOid == "" || r.Email == "" || r.UserName == "" || r.UserPhone == "" {
		return "", utils.ValidationError("missing buyer details for payment request", nil)
	}
	if !r.Amount.IsPositive() {
		return "", utils.ValidationError("payment amount must be positive", nil)
	}
	if r.Currency == "" {
		r.Currency = "TL"
	}

	basket := Basket(r.BasketName, r.Amount)
	noInstallment, maxInstallment := "0", "0"
	testMode := "0"
	if s.cfg.TestMode {
		testMode = "1"
	}

	form := url.Values{}
	form.Set("merchant_id", s.cfg.MerchantID)
	form.Set("user_ip", r.UserIP)
	form.Set("merchant_oid", r.MerchantOid)
	form.Set("email", r.Email)
	form.Set("payment_amount", MinorUnits(r.Amount))
	form.Set("paytr_token", s.TokenHash(r, basket, noInstallment, maxInstallment))
	form.Set("user_basket", basket)
	form.Set("no_installment", noInstallment)
	form.Set("max_installment", maxInstallment)
	form.Set("user_name", r.UserName)
	form.Set("user_address", r.UserAddress)
	form.Set("user_phone", r.UserPhone)
	form.Set("merchant_ok_url", s.cfg.OkURL)
	form.Set("merchant_fail_url", s.cfg.FailURL)
	form.Set("timeout_limit", "30")
	form.Set("currency", r.Currency)
	form.Set("test_mode", testMode)
	form.Set("debug_on", "0")

	resp, err := s.client.PostForm(s.cfg.TokenURL, form)
	if err != nil {
		return "", utils.PaymentProviderError("payment provider request failed", err)
	}
	defer resp.Body.Close()

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", utils.PaymentProviderError("payment provider returned an unreadable response", err)
	}

	if tr.Status != "success" {
		msg := "payment provider rejected the request"
		if tr.Reason != "" {
			msg = fmt.Sprintf("%s: %s", msg, tr.Reason)
		}
		return "", utils.PaymentProviderError(msg, nil)
	}

	return tr.Token, nil
}

// CallbackHash computes the expected callback signature:
// merchant_oid + salt + status + total_amount, HMAC'd with the merchant key.
// Note the salt is concatenated data here, not the signing key.
func (s *PayTRService) CallbackHash(merchantOid, status, totalAmount string) string {
	return s.sign(merchantOid + s.cfg.MerchantSalt + status + totalAmount)
}

// VerifyCallbackSignature checks a delivered callback hash in constant time
func (s *PayTRService) VerifyCallbackSignature(merchantOid, status, totalAmount, receivedHash string) bool {
	expected := s.CallbackHash(merchantOid, status, totalAmount)
	return hmac.Equal([]byte(expected), []byte(receivedHash))
}

// IframeURL builds the hosted checkout page URL for a token
func IframeURL(token string) string {
	return "https://www.paytr.com/odeme/guvenli/" + token
}

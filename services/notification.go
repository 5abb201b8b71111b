package services

import (
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/shopspring/decimal"
)

// PaymentEvent describes a finalized payment for downstream side effects
type PaymentEvent struct {
	MerchantOid string
	TenantID    uint
	UserName    string
	UserEmail   string
	PlanName    string
	Amount      decimal.Decimal
	Currency    string
}

// Notifier receives payment events. Implementations must be safe to fail:
// the callback handler dispatches asynchronously and only logs errors, so a
// broken notifier can never flip a successful payment into a reported
// failure.
type Notifier interface {
	Notify(event PaymentEvent) error
}

// EmailNotifier sends the buyer a receipt email
type EmailNotifier struct{}

// Notify implements Notifier
func (n *EmailNotifier) Notify(event PaymentEvent) error {
	amount := event.Amount.StringFixed(2) + " " + event.Currency
	return utils.SendPaymentReceiptEmail(event.UserEmail, event.UserName, event.PlanName, amount, event.MerchantOid)
}

// Dispatch runs the notifier in the background, logging any failure
func Dispatch(n Notifier, event PaymentEvent) {
	if n == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				utils.LogError("Notification dispatch panicked for %s: %v", event.MerchantOid, r)
			}
		}()
		if err := n.Notify(event); err != nil {
			utils.LogError("Notification failed for %s: %v", event.MerchantOid, err)
		}
	}()
}

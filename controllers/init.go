package controllers

import (
	"github.com/emirhan-dev/QRMenu/services"
)

var (
	paymentService      *services.PayTRService
	paymentNotifier     services.Notifier
	subscriptionService *services.SubscriptionService
	merchantOidPrefix   = "QRM"
)

// InitPaymentServices wires the payment components. Secrets live inside the
// provider service, injected once at startup; controllers never touch them.
func InitPaymentServices(paytr *services.PayTRService, notifier services.Notifier, subs *services.SubscriptionService, oidPrefix string) {
	paymentService = paytr
	paymentNotifier = notifier
	subscriptionService = subs
	if oidPrefix != "" {
		merchantOidPrefix = oidPrefix
	}
}

package models

import "github.com/shopspring/decimal"

// SubscriptionPlan describes a purchasable premium plan. Plans are fixed
// platform-wide; the amount is what gets charged at checkout.
type SubscriptionPlan struct {
	Type   string          `json:"type"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Days   int             `json:"days"`
}

// SubscriptionPlans is the catalogue shown on the pricing page
var SubscriptionPlans = []SubscriptionPlan{
	{Type: "monthly", Name: "Premium Monthly", Amount: decimal.NewFromFloat(299.00), Days: 30},
	{Type: "yearly", Name: "Premium Yearly", Amount: decimal.NewFromFloat(2990.00), Days: 365},
}

// FindPlan returns the plan for the given type, or nil if unknown
func FindPlan(planType string) *SubscriptionPlan {
	for i := range SubscriptionPlans {
		if SubscriptionPlans[i].Type == planType {
			return &SubscriptionPlans[i]
		}
	}
	return nil
}

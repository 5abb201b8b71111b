package controllers

import (
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/gin-gonic/gin"
)

// POST /v1/payment/activate
func ActivateSubscription(c *gin.Context) {
	utils.LogInfo("ActivateSubscription called")

	var req struct {
		TenantID    uint   `json:"tenant_id"`
		MerchantOid string `json:"merchant_oid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if req.TenantID == 0 || req.MerchantOid == "" {
		utils.ValidationFailed(c, "tenant_id and merchant_oid are required", nil)
		return
	}

	tenant, err := subscriptionService.Activate(req.TenantID, req.MerchantOid)
	if err != nil {
		utils.LogError("Activation failed for tenant ID: %d, merchant_oid: %s: %v", req.TenantID, req.MerchantOid, err)
		utils.HandleAppError(c, err)
		return
	}

	utils.LogInfo("Subscription activated for tenant ID: %d until %v", tenant.ID, tenant.SubscriptionEndDate)
	utils.Success(c, "Subscription activated successfully", gin.H{
		"tenant": gin.H{
			"id":                    tenant.ID,
			"slug":                  tenant.Slug,
			"subscription_plan":     tenant.SubscriptionPlan,
			"subscription_status":   tenant.SubscriptionStatus,
			"subscription_end_date": tenant.SubscriptionEndDate,
		},
	})
}

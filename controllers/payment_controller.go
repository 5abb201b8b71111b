package controllers

import (
	"fmt"

	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/services"
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// POST /v1/payment/initiate
func InitiatePayment(c *gin.Context) {
	utils.LogInfo("InitiatePayment called")

	var req struct {
		TenantID    uint    `json:"tenant_id"`
		UserName    string  `json:"user_name"`
		UserEmail   string  `json:"user_email"`
		UserPhone   string  `json:"user_phone"`
		UserAddress string  `json:"user_address"`
		Amount      float64 `json:"amount"`
		PlanType    string  `json:"plan_type"`
		PlanName    string  `json:"plan_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid payment initiation request: %v", err)
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	if req.TenantID == 0 || req.UserName == "" || req.UserEmail == "" || req.UserPhone == "" || req.Amount <= 0 {
		utils.LogError("Missing required payment fields for tenant ID: %d", req.TenantID)
		utils.ValidationFailed(c, "tenant_id, user_name, user_email, user_phone and a positive amount are required", nil)
		return
	}
	if !utils.ValidateEmail(req.UserEmail) {
		utils.ValidationFailed(c, "user_email is not a valid email address", nil)
		return
	}
	if !utils.ValidatePhone(req.UserPhone) {
		utils.ValidationFailed(c, "user_phone is not a valid phone number", nil)
		return
	}

	db := config.DB
	var tenant models.Tenant
	if err := db.First(&tenant, req.TenantID).Error; err != nil {
		utils.LogError("Tenant not found for payment initiation: %d", req.TenantID)
		utils.NotFound(c, "Tenant not found")
		return
	}

	amount := decimal.NewFromFloat(req.Amount).Round(2)
	planName := req.PlanName
	if planName == "" {
		if plan := models.FindPlan(req.PlanType); plan != nil {
			planName = plan.Name
		} else {
			planName = "Premium Subscription"
		}
	}

	merchantOid := utils.GenerateMerchantOid(merchantOidPrefix)
	utils.LogInfo("Requesting payment token for tenant ID: %d, merchant_oid: %s", tenant.ID, merchantOid)

	token, err := paymentService.GetToken(services.TokenRequest{
		MerchantOid: merchantOid,
		UserIP:      c.ClientIP(),
		UserName:    req.UserName,
		Email:       req.UserEmail,
		UserPhone:   req.UserPhone,
		UserAddress: req.UserAddress,
		Amount:      amount,
		BasketName:  planName,
		Currency:    "TL",
	})
	if err != nil {
		utils.LogError("Payment token request failed for tenant ID: %d: %v", tenant.ID, err)
		utils.HandleAppError(c, err)
		return
	}

	// The pending row must exist before the token leaves this handler;
	// without it the callback would have nothing to reconcile against.
	txn := models.PaymentTransaction{
		MerchantOid:   merchantOid,
		TenantID:      tenant.ID,
		PaymentAmount: amount,
		Currency:      "TL",
		PaymentStatus: models.PaymentStatusPending,
		PaytrToken:    token,
		UserName:      req.UserName,
		UserEmail:     req.UserEmail,
		UserPhone:     req.UserPhone,
		UserAddress:   req.UserAddress,
		PlanType:      req.PlanType,
		PlanName:      planName,
		OrderDetails:  fmt.Sprintf("%s (%s) - %s TL", planName, req.PlanType, amount.StringFixed(2)),
	}
	if err := db.Create(&txn).Error; err != nil {
		utils.LogError("Failed to persist payment transaction %s: %v", merchantOid, err)
		utils.InternalServerError(c, "Failed to record payment transaction", nil)
		return
	}

	utils.LogInfo("Payment token issued for merchant_oid: %s", merchantOid)
	utils.Success(c, "Payment initiated successfully", gin.H{
		"iframe_token": token,
		"iframe_url":   services.IframeURL(token),
		"merchant_oid": merchantOid,
		"amount":       amount.StringFixed(2),
	})
}

// GET /v1/plans
func ListPlans(c *gin.Context) {
	utils.Success(c, "Plans retrieved successfully", gin.H{
		"plans": models.SubscriptionPlans,
	})
}

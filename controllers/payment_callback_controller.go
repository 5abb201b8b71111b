package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/services"
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /v1/payment/callback
//
// The provider delivers this webhook asynchronously and retries until it
// gets a 200 "OK" body back. "OK" acknowledges receipt, not business
// success: a failed payment still gets "OK". "FAIL" is reserved for
// deliveries we refuse to accept (bad signature, unknown transaction,
// storage failure) so the provider retries them.
func PaymentCallback(c *gin.Context) {
	merchantOid := c.PostForm("merchant_oid")
	status := c.PostForm("status")
	totalAmount := c.PostForm("total_amount")
	hash := c.PostForm("hash")

	if merchantOid == "" || status == "" || totalAmount == "" || hash == "" {
		utils.LogError("Payment callback missing required fields")
		c.String(http.StatusBadRequest, "FAIL")
		return
	}

	if !paymentService.VerifyCallbackSignature(merchantOid, status, totalAmount, hash) {
		// Sole tamper defense on this endpoint. Full detail stays in the
		// server log; the response reveals nothing about the mismatch.
		utils.LogSecurity("Payment callback signature mismatch for merchant_oid: %s from %s", merchantOid, c.ClientIP())
		c.String(http.StatusBadRequest, "FAIL")
		return
	}

	// Only the provider's literal success marker counts; anything else,
	// including unknown statuses, is a failure.
	newStatus := models.PaymentStatusFailed
	if status == "success" {
		newStatus = models.PaymentStatusSuccess
	}

	db := config.DB
	var txn models.PaymentTransaction
	if err := db.Where("merchant_oid = ?", merchantOid).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A valid signature with no matching row means state we never
			// created. Never fabricate a transaction for it.
			utils.LogError("Payment callback for unknown merchant_oid: %s", merchantOid)
			c.String(http.StatusNotFound, "FAIL")
			return
		}
		utils.LogError("Failed to load transaction %s: %v", merchantOid, err)
		c.String(http.StatusInternalServerError, "FAIL")
		return
	}

	firstDelivery := txn.CallbackReceivedAt == nil

	updates := map[string]interface{}{
		"payment_status": newStatus,
		"callback_data":  c.Request.PostForm.Encode(),
	}
	if reason := c.PostForm("failed_reason_msg"); reason != "" {
		updates["fail_reason"] = reason
	}
	if firstDelivery {
		updates["callback_received_at"] = time.Now()
	}

	if err := db.Model(&txn).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update transaction %s: %v", merchantOid, err)
		c.String(http.StatusInternalServerError, "FAIL")
		return
	}

	utils.LogInfo("Payment callback processed for merchant_oid: %s, status: %s", merchantOid, newStatus)

	if newStatus == models.PaymentStatusSuccess && firstDelivery {
		services.Dispatch(paymentNotifier, services.PaymentEvent{
			MerchantOid: txn.MerchantOid,
			TenantID:    txn.TenantID,
			UserName:    txn.UserName,
			UserEmail:   txn.UserEmail,
			PlanName:    txn.PlanName,
			Amount:      txn.PaymentAmount,
			Currency:    txn.Currency,
		})
	}

	c.String(http.StatusOK, "OK")
}

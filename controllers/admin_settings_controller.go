package controllers

import (
	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// GET /v1/admin/settings
func AdminListSettings(c *gin.Context) {
	var settings []models.PlatformSetting
	if err := config.DB.Order("key asc").Find(&settings).Error; err != nil {
		utils.LogError("Failed to load platform settings: %v", err)
		utils.InternalServerError(c, "Failed to load settings", nil)
		return
	}
	utils.Success(c, "Settings retrieved successfully", gin.H{"settings": settings})
}

// PUT /v1/admin/settings
func AdminUpdateSettings(c *gin.Context) {
	var req struct {
		Settings map[string]string `json:"settings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Settings) == 0 {
		utils.BadRequest(c, "settings map is required", nil)
		return
	}

	for key, value := range req.Settings {
		row := models.PlatformSetting{Key: key, Value: value}
		err := config.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&row).Error
		if err != nil {
			utils.LogError("Failed to store platform setting %s: %v", key, err)
			utils.InternalServerError(c, "Failed to update settings", nil)
			return
		}
	}

	utils.LogInfo("Platform settings updated: %d keys", len(req.Settings))
	utils.Success(c, "Settings updated successfully", nil)
}

// GET /v1/admin/dashboard
func AdminDashboard(c *gin.Context) {
	db := config.DB

	var tenantCount, activeSubs, txnCount, successCount int64
	db.Model(&models.Tenant{}).Count(&tenantCount)
	db.Model(&models.Tenant{}).Where("subscription_status = ?", "active").Count(&activeSubs)
	db.Model(&models.PaymentTransaction{}).Count(&txnCount)
	db.Model(&models.PaymentTransaction{}).Where("payment_status = ?", models.PaymentStatusSuccess).Count(&successCount)

	var revenue float64
	db.Model(&models.PaymentTransaction{}).
		Where("payment_status = ?", models.PaymentStatusSuccess).
		Select("COALESCE(SUM(payment_amount), 0)").
		Scan(&revenue)

	var orderCount, feedbackCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.Feedback{}).Count(&feedbackCount)

	utils.Success(c, "Dashboard retrieved successfully", gin.H{
		"tenants":              tenantCount,
		"active_subscriptions": activeSubs,
		"transactions":         txnCount,
		"successful_payments":  successCount,
		"total_revenue":        revenue,
		"orders":               orderCount,
		"feedback":             feedbackCount,
	})
}

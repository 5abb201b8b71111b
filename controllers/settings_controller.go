package controllers

import (
	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/gin-gonic/gin"
)

// GET /v1/owner/profile
func GetTenantProfile(c *gin.Context) {
	tenant, ok := tenantFromContext(c)
	if !ok {
		return
	}

	utils.Success(c, "Profile retrieved successfully", gin.H{
		"tenant": gin.H{
			"id":                    tenant.ID,
			"name":                  tenant.Name,
			"slug":                  tenant.Slug,
			"email":                 tenant.Email,
			"phone":                 tenant.Phone,
			"address":               tenant.Address,
			"logo_url":              tenant.LogoURL,
			"subscription_plan":     tenant.SubscriptionPlan,
			"subscription_status":   tenant.SubscriptionStatus,
			"subscription_end_date": tenant.SubscriptionEndDate,
		},
	})
}

// PUT /v1/owner/profile
func UpdateTenantProfile(c *gin.Context) {
	tenant, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
		LogoURL *string `json:"logo_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := utils.SanitizeString(*req.Name)
		if name == "" {
			utils.ValidationFailed(c, "name cannot be empty", nil)
			return
		}
		updates["name"] = name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = utils.SanitizeString(*req.Address)
	}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}

	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update", nil)
		return
	}

	if err := config.DB.Model(&tenant).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update profile for tenant %d: %v", tenant.ID, err)
		utils.InternalServerError(c, "Failed to update profile", nil)
		return
	}

	utils.Success(c, "Profile updated successfully", nil)
}

var supportedCurrencies = map[string]bool{"TRY": true, "USD": true, "EUR": true, "GBP": true}
var supportedLanguages = map[string]bool{"tr": true, "en": true}

// GET /v1/owner/settings
func GetTenantSettings(c *gin.Context) {
	tenant, ok := tenantFromContext(c)
	if !ok {
		return
	}

	utils.Success(c, "Settings retrieved successfully", gin.H{
		"settings": gin.H{
			"currency":         tenant.Currency,
			"default_language": tenant.DefaultLanguage,
			"display_interval": tenant.DisplayInterval,
		},
	})
}

// PUT /v1/owner/settings
func UpdateTenantSettings(c *gin.Context) {
	tenant, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Currency        *string `json:"currency"`
		DefaultLanguage *string `json:"default_language"`
		DisplayInterval *int    `json:"display_interval"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Currency != nil {
		if !supportedCurrencies[*req.Currency] {
			utils.ValidationFailed(c, "unsupported currency", nil)
			return
		}
		updates["currency"] = *req.Currency
	}
	if req.DefaultLanguage != nil {
		if !supportedLanguages[*req.DefaultLanguage] {
			utils.ValidationFailed(c, "unsupported language", nil)
			return
		}
		updates["default_language"] = *req.DefaultLanguage
	}
	if req.DisplayInterval != nil {
		if *req.DisplayInterval < 3 || *req.DisplayInterval > 120 {
			utils.ValidationFailed(c, "display_interval must be between 3 and 120 seconds", nil)
			return
		}
		updates["display_interval"] = *req.DisplayInterval
	}

	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update", nil)
		return
	}

	if err := config.DB.Model(&tenant).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update settings for tenant %d: %v", tenant.ID, err)
		utils.InternalServerError(c, "Failed to update settings", nil)
		return
	}

	utils.Success(c, "Settings updated successfully", nil)
}

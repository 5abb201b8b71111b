package controllers

import (
	"strconv"

	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/gin-gonic/gin"
)

// GET /v1/admin/tenants
func AdminListTenants(c *gin.Context) {
	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Tenant{})

	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ? OR slug ILIKE ? OR email ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}
	if status := c.Query("subscription_status"); status != "" {
		query = query.Where("subscription_status = ?", status)
	}

	var total int64
	query.Count(&total)
	pagination.SetTotal(total)

	var tenants []models.Tenant
	err := query.Order("created_at desc").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&tenants).Error
	if err != nil {
		utils.LogError("Failed to list tenants: %v", err)
		utils.InternalServerError(c, "Failed to load tenants", nil)
		return
	}

	utils.SuccessWithPagination(c, "Tenants retrieved successfully", gin.H{"tenants": tenants},
		total, pagination.Page, pagination.Limit)
}

// PUT /v1/admin/tenants/:id/block
func AdminBlockTenant(c *gin.Context) {
	tenantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid tenant ID", nil)
		return
	}

	var req struct {
		Blocked *bool `json:"blocked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Blocked == nil {
		utils.BadRequest(c, "blocked flag is required", nil)
		return
	}

	var tenant models.Tenant
	if err := config.DB.First(&tenant, tenantID).Error; err != nil {
		utils.NotFound(c, "Tenant not found")
		return
	}

	if err := config.DB.Model(&tenant).Update("is_blocked", *req.Blocked).Error; err != nil {
		utils.LogError("Failed to update block state for tenant %d: %v", tenant.ID, err)
		utils.InternalServerError(c, "Failed to update tenant", nil)
		return
	}

	utils.LogInfo("Tenant %d block state set to %v", tenant.ID, *req.Blocked)
	utils.Success(c, "Tenant updated successfully", gin.H{
		"tenant": gin.H{"id": tenant.ID, "is_blocked": *req.Blocked},
	})
}

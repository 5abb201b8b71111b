package controllers

import (
	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/gin-gonic/gin"
)

// POST /v1/menu/:slug/feedback
func SubmitFeedback(c *gin.Context) {
	tenant, ok := findTenantBySlug(c)
	if !ok {
		return
	}

	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		utils.ValidationFailed(c, "rating must be between 1 and 5", nil)
		return
	}
	if req.Email != "" && !utils.ValidateEmail(req.Email) {
		utils.ValidationFailed(c, "email is not valid", nil)
		return
	}

	feedback := models.Feedback{
		TenantID: tenant.ID,
		Name:     utils.SanitizeString(req.Name),
		Email:    req.Email,
		Rating:   req.Rating,
		Comment:  utils.SanitizeString(req.Comment),
	}
	if err := config.DB.Create(&feedback).Error; err != nil {
		utils.LogError("Failed to save feedback for tenant %d: %v", tenant.ID, err)
		utils.InternalServerError(c, "Failed to submit feedback", nil)
		return
	}

	utils.Created(c, "Feedback submitted successfully", nil)
}

// GET /v1/owner/feedback
func ListFeedback(c *gin.Context) {
	tenant, ok := tenantFromContext(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Feedback{}).Where("tenant_id = ?", tenant.ID)

	var total int64
	query.Count(&total)
	pagination.SetTotal(total)

	var feedback []models.Feedback
	err := query.Order("created_at desc").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&feedback).Error
	if err != nil {
		utils.LogError("Failed to list feedback for tenant %d: %v", tenant.ID, err)
		utils.InternalServerError(c, "Failed to load feedback", nil)
		return
	}

	utils.SuccessWithPagination(c, "Feedback retrieved successfully", gin.H{"feedback": feedback},
		total, pagination.Page, pagination.Limit)
}

package controllers

import (
	"strconv"

	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/gin-gonic/gin"
)

func tenantFromContext(c *gin.Context) (models.Tenant, bool) {
	val, exists := c.Get("tenant")
	if !exists {
		utils.Unauthorized(c, "Tenant not found")
		return models.Tenant{}, false
	}
	tenant, ok := val.(models.Tenant)
	if !ok {
		utils.InternalServerError(c, "Invalid tenant in context", nil)
		return models.Tenant{}, false
	}
	return tenant, true
}

// GET /v1/owner/categories
func ListCategories(c *gin.Context) {
	tenant, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var categories []models.Category
	err := config.DB.
		Where("tenant_id = ?", tenant.ID).
		Order("sort_order asc, id asc").
		Preload("Products").
		Find(&categories).Error
	if err != nil {
		utils.LogError("Failed to list categories for tenant %d: %v", tenant.ID, err)
		utils.InternalServerError(c, "Failed to load categories", nil)
		return
	}

	utils.Success(c, "Categories retrieved successfully", gin.H{"categories": categories})
}

// POST /v1/owner/categories
func CreateCategory(c *gin.Context) {
	tenant, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Name      string `json:"name"`
		NameEn    string `json:"name_en"`
		SortOrder int    `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	req.Name = utils.SanitizeString(req.Name)
	if req.Name == "" {
		utils.ValidationFailed(c, "name is required", nil)
		return
	}

	category := models.Category{
		TenantID:  tenant.ID,
		Name:      req.Name,
		NameEn:    utils.SanitizeString(req.NameEn),
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category for tenant %d: %v", tenant.ID, err)
		utils.InternalServerError(c, "Failed to create category", nil)
		return
	}

	utils.Created(c, "Category created successfully", gin.H{"category": category})
}

func loadOwnedCategory(c *gin.Context, tenantID uint) (*models.Category, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", nil)
		return nil, false
	}

	var category models.Category
	if err := config.DB.Where("id = ? AND tenant_id = ?", id, tenantID).First(&category).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return nil, false
	}
	return &category, true
}

// PUT /v1/owner/categories/:id
func UpdateCategory(c *gin.Context) {
	tenant, ok := tenantFromContext(c)
	if !ok {
		return
	}
	category, ok := loadOwnedCategory(c, tenant.ID)
	if !ok {
		return
	}

	var req struct {
		Name      *string `json:"name"`
		NameEn    *string `json:"name_en"`
		SortOrder *int    `json:"sort_order"`
		IsActive  *bool   `json:"is_active"`
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
	if req.NameEn != nil {
		updates["name_en"] = utils.SanitizeString(*req.NameEn)
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update", nil)
		return
	}

	if err := config.DB.Model(category).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to update category", nil)
		return
	}

	utils.Success(c, "Category updated successfully", gin.H{"category": category})
}

// DELETE /v1/owner/categories/:id
func DeleteCategory(c *gin.Context) {
	tenant, ok := tenantFromContext(c)
	if !ok {
		return
	}
	category, ok := loadOwnedCategory(c, tenant.ID)
	if !ok {
		return
	}

	var productCount int64
	config.DB.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&productCount)
	if productCount > 0 {
		utils.Conflict(c, "Category still has products; move or delete them first", nil)
		return
	}

	if err := config.DB.Delete(category).Error; err != nil {
		utils.LogError("Failed to delete category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to delete category", nil)
		return
	}

	utils.Success(c, "Category deleted successfully", nil)
}

package controllers

import (
	"strconv"

	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/gin-gonic/gin"
)

// GET /v1/owner/products
func ListProducts(c *gin.Context) {
	tenant, ok := tenantFromContext(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Product{}).Where("tenant_id = ?", tenant.ID)

	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	query.Count(&total)
	pagination.SetTotal(total)

	var products []models.Product
	err := query.Order("sort_order asc, id asc").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&products).Error
	if err != nil {
		utils.LogError("Failed to list products for tenant %d: %v", tenant.ID, err)
		utils.InternalServerError(c, "Failed to load products", nil)
		return
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", gin.H{"products": products},
		total, pagination.Page, pagination.Limit)
}

// POST /v1/owner/products
func CreateProduct(c *gin.Context) {
	tenant, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req struct {
		CategoryID    uint    `json:"category_id"`
		Name          string  `json:"name"`
		NameEn        string  `json:"name_en"`
		Description   string  `json:"description"`
		DescriptionEn string  `json:"description_en"`
		Price         float64 `json:"price"`
		ImageURL      string  `json:"image_url"`
		SortOrder     int     `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	req.Name = utils.SanitizeString(req.Name)
	if req.Name == "" || req.CategoryID == 0 {
		utils.ValidationFailed(c, "name and category_id are required", nil)
		return
	}
	if req.Price < 0 {
		utils.ValidationFailed(c, "price cannot be negative", nil)
		return
	}

	// Category must belong to the same tenant
	var category models.Category
	if err := config.DB.Where("id = ? AND tenant_id = ?", req.CategoryID, tenant.ID).First(&category).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	product := models.Product{
		TenantID:      tenant.ID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		NameEn:        utils.SanitizeString(req.NameEn),
		Description:   utils.SanitizeString(req.Description),
		DescriptionEn: utils.SanitizeString(req.DescriptionEn),
		Price:         req.Price,
		ImageURL:      req.ImageURL,
		IsAvailable:   true,
		SortOrder:     req.SortOrder,
	}
	if err := config.DB.Create(&product).Error; err != nil {
		utils.LogError("Failed to create product for tenant %d: %v", tenant.ID, err)
		utils.InternalServerError(c, "Failed to create product", nil)
		return
	}

	utils.Created(c, "Product created successfully", gin.H{"product": product})
}

func loadOwnedProduct(c *gin.Context, tenantID uint) (*models.Product, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return nil, false
	}

	var product models.Product
	if err := config.DB.Where("id = ? AND tenant_id = ?", id, tenantID).First(&product).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return nil, false
	}
	return &product, true
}

// PUT /v1/owner/products/:id
func UpdateProduct(c *gin.Context) {
	tenant, ok := tenantFromContext(c)
	if !ok {
		return
	}
	product, ok := loadOwnedProduct(c, tenant.ID)
	if !ok {
		return
	}

	var req struct {
		CategoryID    *uint    `json:"category_id"`
		Name          *string  `json:"name"`
		NameEn        *string  `json:"name_en"`
		Description   *string  `json:"description"`
		DescriptionEn *string  `json:"description_en"`
		Price         *float64 `json:"price"`
		ImageURL      *string  `json:"image_url"`
		IsAvailable   *bool    `json:"is_available"`
		SortOrder     *int     `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.Where("id = ? AND tenant_id = ?", *req.CategoryID, tenant.ID).First(&category).Error; err != nil {
			utils.NotFound(c, "Category not found")
			return
		}
		updates["category_id"] = *req.CategoryID
	}
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
	if req.Description != nil {
		updates["description"] = utils.SanitizeString(*req.Description)
	}
	if req.DescriptionEn != nil {
		updates["description_en"] = utils.SanitizeString(*req.DescriptionEn)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			utils.ValidationFailed(c, "price cannot be negative", nil)
			return
		}
		updates["price"] = *req.Price
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}

	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update", nil)
		return
	}

	if err := config.DB.Model(product).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update product", nil)
		return
	}

	utils.Success(c, "Product updated successfully", gin.H{"product": product})
}

// DELETE /v1/owner/products/:id
func DeleteProduct(c *gin.Context) {
	tenant, ok := tenantFromContext(c)
	if !ok {
		return
	}
	product, ok := loadOwnedProduct(c, tenant.ID)
	if !ok {
		return
	}

	if err := config.DB.Delete(product).Error; err != nil {
		utils.LogError("Failed to delete product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to delete product", nil)
		return
	}

	utils.Success(c, "Product deleted successfully", nil)
}

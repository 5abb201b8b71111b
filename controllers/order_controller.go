package controllers

import (
	"strconv"

	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/gin-gonic/gin"
)

// POST /v1/menu/:slug/orders
func PlaceOrder(c *gin.Context) {
	tenant, ok := findTenantBySlug(c)
	if !ok {
		return
	}

	var req struct {
		TableNo      string `json:"table_no"`
		CustomerName string `json:"customer_name"`
		Note         string `json:"note"`
		Items        []struct {
			ProductID uint `json:"product_id"`
			Quantity  int  `json:"quantity"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	if req.TableNo == "" || len(req.Items) == 0 {
		utils.ValidationFailed(c, "table_no and at least one item are required", nil)
		return
	}

	db := config.DB
	order := models.Order{
		TenantID:     tenant.ID,
		TableNo:      utils.SanitizeString(req.TableNo),
		CustomerName: utils.SanitizeString(req.CustomerName),
		Note:         utils.SanitizeString(req.Note),
		Status:       models.OrderStatusReceived,
		Currency:     tenant.Currency,
	}

	// Prices come from the menu rows, never from the client
	var total float64
	for _, item := range req.Items {
		if item.Quantity < 1 {
			utils.ValidationFailed(c, "item quantity must be at least 1", nil)
			return
		}
		var product models.Product
		if err := db.Where("id = ? AND tenant_id = ? AND is_available = ?",
			item.ProductID, tenant.ID, true).First(&product).Error; err != nil {
			utils.NotFound(c, "Product not found or unavailable")
			return
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
		total += product.Price * float64(item.Quantity)
	}
	order.Total = total

	if err := db.Create(&order).Error; err != nil {
		utils.LogError("Failed to create order for tenant %d: %v", tenant.ID, err)
		utils.InternalServerError(c, "Failed to place order", nil)
		return
	}

	utils.LogInfo("Order %d placed for tenant %d, table %s", order.ID, tenant.ID, order.TableNo)
	utils.Created(c, "Order placed successfully", gin.H{
		"order": gin.H{
			"id":       order.ID,
			"table_no": order.TableNo,
			"status":   order.Status,
			"total":    order.Total,
			"currency": order.Currency,
		},
	})
}

// GET /v1/owner/orders
func ListOrders(c *gin.Context) {
	tenant, ok := tenantFromContext(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Order{}).Where("tenant_id = ?", tenant.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)
	pagination.SetTotal(total)

	var orders []models.Order
	err := query.Order("created_at desc").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Preload("Items").
		Find(&orders).Error
	if err != nil {
		utils.LogError("Failed to list orders for tenant %d: %v", tenant.ID, err)
		utils.InternalServerError(c, "Failed to load orders", nil)
		return
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", gin.H{"orders": orders},
		total, pagination.Page, pagination.Limit)
}

var validOrderStatuses = map[string]bool{
	models.OrderStatusReceived:  true,
	models.OrderStatusPreparing: true,
	models.OrderStatusServed:    true,
	models.OrderStatusCancelled: true,
}

// PUT /v1/owner/orders/:id/status
func UpdateOrderStatus(c *gin.Context) {
	tenant, ok := tenantFromContext(c)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if !validOrderStatuses[req.Status] {
		utils.ValidationFailed(c, "status must be one of received, preparing, served, cancelled", nil)
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND tenant_id = ?", orderID, tenant.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if err := config.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		utils.LogError("Failed to update order %d status: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order", nil)
		return
	}

	utils.Success(c, "Order status updated successfully", gin.H{
		"order": gin.H{"id": order.ID, "status": req.Status},
	})
}

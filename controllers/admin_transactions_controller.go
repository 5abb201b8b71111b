package controllers

import (
	"fmt"
	"time"

	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

func transactionQuery(c *gin.Context) *gorm.DB {
	query := config.DB.Model(&models.PaymentTransaction{})

	if status := c.Query("status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("created_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("created_at < ?", t.Add(24*time.Hour))
		}
	}
	return query
}

// GET /v1/owner/transactions
func ListTenantTransactions(c *gin.Context) {
	tenant, ok := tenantFromContext(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.PaymentTransaction{}).Where("tenant_id = ?", tenant.ID)

	var total int64
	query.Count(&total)
	pagination.SetTotal(total)

	var transactions []models.PaymentTransaction
	err := query.Order("created_at desc").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Find(&transactions).Error
	if err != nil {
		utils.LogError("Failed to list transactions for tenant %d: %v", tenant.ID, err)
		utils.InternalServerError(c, "Failed to load transactions", nil)
		return
	}

	utils.SuccessWithPagination(c, "Transactions retrieved successfully", gin.H{"transactions": transactions},
		total, pagination.Page, pagination.Limit)
}

// GET /v1/admin/transactions
func AdminListTransactions(c *gin.Context) {
	pagination := utils.NewPagination(c)
	query := transactionQuery(c)

	var total int64
	query.Count(&total)
	pagination.SetTotal(total)

	var transactions []models.PaymentTransaction
	err := query.Order("created_at desc").
		Offset(pagination.Offset).
		Limit(pagination.Limit).
		Preload("Tenant").
		Find(&transactions).Error
	if err != nil {
		utils.LogError("Failed to list transactions: %v", err)
		utils.InternalServerError(c, "Failed to load transactions", nil)
		return
	}

	utils.SuccessWithPagination(c, "Transactions retrieved successfully", gin.H{"transactions": transactions},
		total, pagination.Page, pagination.Limit)
}

// GET /v1/admin/transactions/export
func AdminExportTransactions(c *gin.Context) {
	var transactions []models.PaymentTransaction
	if err := transactionQuery(c).Order("created_at desc").Preload("Tenant").Find(&transactions).Error; err != nil {
		utils.LogError("Failed to load transactions for export: %v", err)
		utils.InternalServerError(c, "Failed to load transactions", nil)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transactions")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", nil)
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("QRMenu - Payment Transactions")
	dateRow := sheet.AddRow()
	dateRow.AddCell().SetString("Exported: " + time.Now().Format("2006-01-02 15:04"))
	sheet.AddRow() // spacing

	headers := []string{"Merchant OID", "Tenant", "Plan", "Amount", "Currency", "Status", "Created", "Callback At"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	var successCount, failedCount, pendingCount int
	for _, txn := range transactions {
		row := sheet.AddRow()
		row.AddCell().SetString(txn.MerchantOid)
		row.AddCell().SetString(txn.Tenant.Name)
		row.AddCell().SetString(txn.PlanName)
		row.AddCell().SetString(txn.PaymentAmount.StringFixed(2))
		row.AddCell().SetString(txn.Currency)
		row.AddCell().SetString(txn.PaymentStatus)
		row.AddCell().SetString(txn.CreatedAt.Format("2006-01-02 15:04"))
		if txn.CallbackReceivedAt != nil {
			row.AddCell().SetString(txn.CallbackReceivedAt.Format("2006-01-02 15:04"))
		} else {
			row.AddCell().SetString("-")
		}

		switch txn.PaymentStatus {
		case models.PaymentStatusSuccess:
			successCount++
		case models.PaymentStatusFailed:
			failedCount++
		default:
			pendingCount++
		}
	}

	sheet.AddRow() // spacing
	summaryData := [][]string{
		{"Total", fmt.Sprintf("%d", len(transactions))},
		{"Success", fmt.Sprintf("%d", successCount)},
		{"Failed", fmt.Sprintf("%d", failedCount)},
		{"Pending", fmt.Sprintf("%d", pendingCount)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=transactions_%s.xlsx", time.Now().Format("20060102")))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", nil)
	}
}

package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// GET /v1/owner/orders/:id/receipt
func DownloadOrderReceipt(c *gin.Context) {
	tenant, ok := tenantFromContext(c)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").Where("id = ? AND tenant_id = ?", orderID, tenant.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, tenant.Name)
	pdf.SetFont("Arial", "", 11)
	pdf.Ln(8)
	if tenant.Address != "" {
		pdf.Cell(100, 8, tenant.Address)
		pdf.Ln(6)
	}
	pdf.Cell(100, 8, fmt.Sprintf("Order #%d - Table %s", order.ID, order.TableNo))
	pdf.Ln(6)
	pdf.Cell(100, 8, fmt.Sprintf("Date: %s", order.CreatedAt.Format("02.01.2006 15:04")))
	pdf.Ln(12)

	// Items table
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Subtotal", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		pdf.CellFormat(90, 8, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", item.Price*float64(item.Quantity)), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(150, 10, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 10, fmt.Sprintf("%.2f %s", order.Total, order.Currency), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to render receipt for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to generate receipt", nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt_%d.pdf", order.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

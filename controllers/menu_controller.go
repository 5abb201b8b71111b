package controllers

import (
	"math"
	"strings"

	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/utils"
	"github.com/gin-gonic/gin"
)

func findTenantBySlug(c *gin.Context) (*models.Tenant, bool) {
	slug := c.Param("slug")
	var tenant models.Tenant
	if err := config.DB.Where("slug = ?", slug).First(&tenant).Error; err != nil {
		utils.NotFound(c, "Menu not found")
		return nil, false
	}
	if tenant.IsBlocked {
		utils.NotFound(c, "Menu not found")
		return nil, false
	}
	return &tenant, true
}

func localizedName(name, nameEn, lang string) string {
	if lang == "en" && nameEn != "" {
		return nameEn
	}
	return name
}

// displayConversion resolves the factor for showing prices in a requested
// currency. Both codes must have a stored rate against the common base;
// otherwise the menu stays in the tenant's currency.
func displayConversion(tenantCurrency, want string) (string, float64) {
	want = strings.ToUpper(want)
	if want == "" || want == tenantCurrency {
		return tenantCurrency, 1
	}

	var from, to models.ExchangeRate
	if err := config.DB.Where("code = ?", tenantCurrency).First(&from).Error; err != nil || from.Rate <= 0 {
		return tenantCurrency, 1
	}
	if err := config.DB.Where("code = ?", want).First(&to).Error; err != nil || to.Rate <= 0 {
		return tenantCurrency, 1
	}
	return want, to.Rate / from.Rate
}

func roundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}

// GET /v1/menu/:slug
func GetMenu(c *gin.Context) {
	tenant, ok := findTenantBySlug(c)
	if !ok {
		return
	}

	lang := c.DefaultQuery("lang", tenant.DefaultLanguage)
	currency, factor := displayConversion(tenant.Currency, c.Query("currency"))

	var categories []models.Category
	err := config.DB.
		Where("tenant_id = ? AND is_active = ?", tenant.ID, true).
		Order("sort_order asc, id asc").
		Preload("Products", "is_available = ?", true).
		Find(&categories).Error
	if err != nil {
		utils.LogError("Failed to load menu for tenant %d: %v", tenant.ID, err)
		utils.InternalServerError(c, "Failed to load menu", nil)
		return
	}

	menu := make([]gin.H, 0, len(categories))
	for _, cat := range categories {
		products := make([]gin.H, 0, len(cat.Products))
		for _, p := range cat.Products {
			products = append(products, gin.H{
				"id":          p.ID,
				"name":        localizedName(p.Name, p.NameEn, lang),
				"description": localizedName(p.Description, p.DescriptionEn, lang),
				"price":       roundPrice(p.Price * factor),
				"image_url":   p.ImageURL,
			})
		}
		menu = append(menu, gin.H{
			"id":       cat.ID,
			"name":     localizedName(cat.Name, cat.NameEn, lang),
			"products": products,
		})
	}

	utils.Success(c, "Menu retrieved successfully", gin.H{
		"restaurant": gin.H{
			"name":     tenant.Name,
			"slug":     tenant.Slug,
			"logo_url": tenant.LogoURL,
			"currency": currency,
		},
		"language": lang,
		"menu":     menu,
	})
}

// GET /v1/menu/:slug/display
//
// TV display mode: the client rotates through categories, holding each one
// on screen for the tenant's configured interval.
func GetMenuDisplay(c *gin.Context) {
	tenant, ok := findTenantBySlug(c)
	if !ok {
		return
	}

	var categories []models.Category
	err := config.DB.
		Where("tenant_id = ? AND is_active = ?", tenant.ID, true).
		Order("sort_order asc, id asc").
		Preload("Products", "is_available = ?", true).
		Find(&categories).Error
	if err != nil {
		utils.LogError("Failed to load display menu for tenant %d: %v", tenant.ID, err)
		utils.InternalServerError(c, "Failed to load menu", nil)
		return
	}

	slides := make([]gin.H, 0, len(categories))
	for _, cat := range categories {
		if len(cat.Products) == 0 {
			continue
		}
		slides = append(slides, gin.H{
			"category": cat.Name,
			"products": cat.Products,
		})
	}

	utils.Success(c, "Display menu retrieved successfully", gin.H{
		"restaurant":       tenant.Name,
		"rotation_seconds": tenant.DisplayInterval,
		"slides":           slides,
	})
}

// GET /v1/rates
func ListExchangeRates(c *gin.Context) {
	var rates []models.ExchangeRate
	if err := config.DB.Order("code asc").Find(&rates).Error; err != nil {
		utils.InternalServerError(c, "Failed to load exchange rates", nil)
		return
	}
	utils.Success(c, "Exchange rates retrieved successfully", gin.H{"rates": rates})
}

package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emirhan-dev/QRMenu/config"
	"github.com/emirhan-dev/QRMenu/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type menuResponse struct {
	Data struct {
		Restaurant struct {
			Currency string `json:"currency"`
		} `json:"restaurant"`
		Language string `json:"language"`
		Menu     []struct {
			Name     string `json:"name"`
			Products []struct {
				Name  string  `json:"name"`
				Price float64 `json:"price"`
			} `json:"products"`
		} `json:"menu"`
	} `json:"data"`
}

func newMenuHarness(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, config.MigrateSchema(db))
	config.DB = db

	tenant := models.Tenant{Name: "Sahil Balik", Slug: "sahil-balik", Email: "sahil@test.dev",
		Currency: "TRY", DefaultLanguage: "tr"}
	require.NoError(t, db.Create(&tenant).Error)

	category := models.Category{TenantID: tenant.ID, Name: "Izgaralar", NameEn: "Grills", IsActive: true}
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&models.Product{
		TenantID: tenant.ID, CategoryID: category.ID,
		Name: "Levrek", NameEn: "Sea Bass", Price: 100.00, IsAvailable: true,
	}).Error)

	now := time.Now()
	require.NoError(t, db.Create(&models.ExchangeRate{Code: "TRY", Rate: 1, FetchedAt: now}).Error)
	require.NoError(t, db.Create(&models.ExchangeRate{Code: "USD", Rate: 0.031, FetchedAt: now}).Error)

	router := gin.New()
	router.GET("/v1/menu/:slug", GetMenu)
	return router
}

func getMenu(t *testing.T, router *gin.Engine, path string) menuResponse {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp menuResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Menu, 1)
	require.Len(t, resp.Data.Menu[0].Products, 1)
	return resp
}

func TestGetMenuConvertsCurrency(t *testing.T) {
	router := newMenuHarness(t)

	resp := getMenu(t, router, "/v1/menu/sahil-balik?currency=USD")
	assert.Equal(t, "USD", resp.Data.Restaurant.Currency)
	assert.InDelta(t, 3.10, resp.Data.Menu[0].Products[0].Price, 0.001)

	// Lowercase currency codes are accepted
	resp = getMenu(t, router, "/v1/menu/sahil-balik?currency=usd")
	assert.Equal(t, "USD", resp.Data.Restaurant.Currency)
}

func TestGetMenuDefaultsToTenantCurrency(t *testing.T) {
	router := newMenuHarness(t)

	resp := getMenu(t, router, "/v1/menu/sahil-balik")
	assert.Equal(t, "TRY", resp.Data.Restaurant.Currency)
	assert.InDelta(t, 100.00, resp.Data.Menu[0].Products[0].Price, 0.001)
}

func TestGetMenuUnknownCurrencyFallsBack(t *testing.T) {
	router := newMenuHarness(t)

	// No stored rate for CHF; prices stay in the tenant's currency
	resp := getMenu(t, router, "/v1/menu/sahil-balik?currency=CHF")
	assert.Equal(t, "TRY", resp.Data.Restaurant.Currency)
	assert.InDelta(t, 100.00, resp.Data.Menu[0].Products[0].Price, 0.001)
}

func TestGetMenuLocalization(t *testing.T) {
	router := newMenuHarness(t)

	resp := getMenu(t, router, "/v1/menu/sahil-balik?lang=en")
	assert.Equal(t, "en", resp.Data.Language)
	assert.Equal(t, "Grills", resp.Data.Menu[0].Name)
	assert.Equal(t, "Sea Bass", resp.Data.Menu[0].Products[0].Name)

	resp = getMenu(t, router, "/v1/menu/sahil-balik")
	assert.Equal(t, "Izgaralar", resp.Data.Menu[0].Name)
}

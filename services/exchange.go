package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/emirhan-dev/QRMenu/models"
	"github.com/emirhan-dev/QRMenu/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExchangeService refreshes display-currency exchange rates on a fixed
// interval. Menus keep rendering with the last stored rates if a refresh
// fails, so errors are logged and the loop keeps going.
type ExchangeService struct {
	db       *gorm.DB
	url      string
	interval time.Duration
	client   *http.Client
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// NewExchangeService creates the refresher. An empty url disables it.
func NewExchangeService(db *gorm.DB, url string, interval time.Duration) *ExchangeService {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &ExchangeService{
		db:       db,
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Start refreshes once immediately, then on every tick until ctx is done
func (s *ExchangeService) Start(ctx context.Context) {
	if s.url == "" {
		utils.LogInfo("Exchange rate refresh disabled, no URL configured")
		return
	}
	go func() {
		if err := s.Refresh(); err != nil {
			utils.LogError("Initial exchange rate refresh failed: %v", err)
		}
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Refresh(); err != nil {
					utils.LogError("Exchange rate refresh failed: %v", err)
				}
			}
		}
	}()
}

// Refresh fetches the rate table and upserts one row per currency code
func (s *ExchangeService) Refresh() error {
	resp, err := s.client.Get(s.url)
	if err != nil {
		return fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rate endpoint returned status %d", resp.StatusCode)
	}

	var rr ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return fmt.Errorf("failed to decode rates: %w", err)
	}

	now := time.Now()
	for code, rate := range rr.Rates {
		row := models.ExchangeRate{Code: code, Rate: rate, FetchedAt: now}
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"rate", "fetched_at", "updated_at"}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("failed to store rate for %s: %w", code, err)
		}
	}

	utils.LogInfo("Refreshed %d exchange rates", len(rr.Rates))
	return nil
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopFrameResult represents a frame's sales performance
type TopFrameResult struct {
	EyeGlassID   uuid.UUID
	Name         string
	Code         string
	QuantitySold int
	Revenue      int64
}

// LensTypeSalesResult represents sales aggregated by lens type
type LensTypeSalesResult struct {
	LensTypeID uuid.UUID
	Name       string
	TotalSales int64
	OrderCount int
	Percentage float64
}

// TopAccountResult represents an account's spending data
type TopAccountResult struct {
	AccountID  uuid.UUID
	FullName   string
	TotalSpent int64
	OrderCount int
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date    time.Time
	Revenue int64
	Orders  int
}

// AnalyticsRepository defines interface for analytics/aggregation queries
type AnalyticsRepository interface {
	// GetTopFrames returns top selling frames by revenue
	GetTopFrames(ctx context.Context, limit int) ([]TopFrameResult, error)

	// GetSalesByLensType returns sales aggregated by lens type with percentages
	GetSalesByLensType(ctx context.Context) ([]LensTypeSalesResult, error)

	// GetTopAccounts returns top accounts by total spending
	GetTopAccounts(ctx context.Context, limit int) ([]TopAccountResult, error)

	// GetDailySales returns daily sales data for the last N days
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)

	// GetTotalRevenue returns total revenue from completed orders
	GetTotalRevenue(ctx context.Context) (int64, error)

	// GetMonthlyRevenue returns revenue for the current month
	GetMonthlyRevenue(ctx context.Context) (int64, error)
}

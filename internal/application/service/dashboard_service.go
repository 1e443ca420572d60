package service

import (
	"context"

	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/pkg/pagination"
)

// DashboardService provides storefront statistics for the admin dashboard
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	orderRepo     repository.OrderRepository
	eyeGlassRepo  repository.EyeGlassRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	orderRepo repository.OrderRepository,
	eyeGlassRepo repository.EyeGlassRepository,
) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		orderRepo:     orderRepo,
		eyeGlassRepo:  eyeGlassRepo,
	}
}

// DailySalesPoint represents a daily sales data point. Revenue is in VND.
type DailySalesPoint struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
	Orders  int    `json:"orders"`
}

// LensTypeSalesPoint represents sales by lens type
type LensTypeSalesPoint struct {
	Name       string  `json:"name"`
	TotalSales int64   `json:"total_sales"`
	OrderCount int     `json:"order_count"`
	Percentage float64 `json:"percentage"`
}

// TopFramePoint represents a best-selling frame
type TopFramePoint struct {
	Name         string `json:"name"`
	Code         string `json:"code"`
	QuantitySold int    `json:"quantity_sold"`
	Revenue      int64  `json:"revenue"`
}

// TopAccountPoint represents a top-spending account
type TopAccountPoint struct {
	FullName   string `json:"full_name"`
	TotalSpent int64  `json:"total_spent"`
	OrderCount int    `json:"order_count"`
}

// DashboardStats represents dashboard statistics. Amounts are in VND.
type DashboardStats struct {
	TotalOrders    int64                `json:"total_orders"`
	PendingOrders  int64                `json:"pending_orders"`
	TotalRevenue   int64                `json:"total_revenue"`
	MonthlyRevenue int64                `json:"monthly_revenue"`
	LowStockCount  int64                `json:"low_stock_count"`
	DailySales     []DailySalesPoint    `json:"daily_sales"`
	SalesByLens    []LensTypeSalesPoint `json:"sales_by_lens_type"`
	TopFrames      []TopFramePoint      `json:"top_frames"`
	TopAccounts    []TopAccountPoint    `json:"top_accounts"`
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	countParams := pagination.DefaultPagination()
	countParams.PerPage = 1

	_, orderCount, err := s.orderRepo.List(ctx, &repository.OrderFilterParams{Pagination: countParams})
	if err != nil {
		return nil, err
	}
	stats.TotalOrders = orderCount

	pendingStatus := enum.OrderStatusPending
	_, pendingCount, err := s.orderRepo.List(ctx, &repository.OrderFilterParams{
		Pagination: countParams,
		Status:     &pendingStatus,
	})
	if err != nil {
		return nil, err
	}
	stats.PendingOrders = pendingCount

	totalRevenue, err := s.analyticsRepo.GetTotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = totalRevenue

	monthlyRevenue, err := s.analyticsRepo.GetMonthlyRevenue(ctx)
	if err != nil {
		return nil, err
	}
	stats.MonthlyRevenue = monthlyRevenue

	_, lowStockCount, err := s.eyeGlassRepo.GetLowStock(ctx, countParams)
	if err != nil {
		return nil, err
	}
	stats.LowStockCount = lowStockCount

	daily, err := s.analyticsRepo.GetDailySales(ctx, 7)
	if err != nil {
		return nil, err
	}
	stats.DailySales = make([]DailySalesPoint, 0, len(daily))
	for _, d := range daily {
		stats.DailySales = append(stats.DailySales, DailySalesPoint{
			Date:    d.Date.Format("Jan 02"),
			Revenue: d.Revenue,
			Orders:  d.Orders,
		})
	}

	byLens, err := s.analyticsRepo.GetSalesByLensType(ctx)
	if err != nil {
		return nil, err
	}
	stats.SalesByLens = make([]LensTypeSalesPoint, 0, len(byLens))
	for _, l := range byLens {
		stats.SalesByLens = append(stats.SalesByLens, LensTypeSalesPoint{
			Name:       l.Name,
			TotalSales: l.TotalSales,
			OrderCount: l.OrderCount,
			Percentage: l.Percentage,
		})
	}

	frames, err := s.analyticsRepo.GetTopFrames(ctx, 5)
	if err != nil {
		return nil, err
	}
	stats.TopFrames = make([]TopFramePoint, 0, len(frames))
	for _, f := range frames {
		stats.TopFrames = append(stats.TopFrames, TopFramePoint{
			Name:         f.Name,
			Code:         f.Code,
			QuantitySold: f.QuantitySold,
			Revenue:      f.Revenue,
		})
	}

	accounts, err := s.analyticsRepo.GetTopAccounts(ctx, 5)
	if err != nil {
		return nil, err
	}
	stats.TopAccounts = make([]TopAccountPoint, 0, len(accounts))
	for _, a := range accounts {
		stats.TopAccounts = append(stats.TopAccounts, TopAccountPoint{
			FullName:   a.FullName,
			TotalSpent: a.TotalSpent,
			OrderCount: a.OrderCount,
		})
	}

	return stats, nil
}

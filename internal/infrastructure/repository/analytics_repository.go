package repository

import (
	"context"
	"database/sql"
	"time"

	domainRepo "github.com/nguyenduy/opticart-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetTopFrames(ctx context.Context, limit int) ([]domainRepo.TopFrameResult, error) {
	var results []domainRepo.TopFrameResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			eg.id as eye_glass_id,
			eg.name as name,
			eg.code as code,
			COALESCE(SUM(od.quantity), 0) as quantity_sold,
			COALESCE(SUM(od.price * od.quantity), 0) as revenue
		FROM order_details od
		JOIN product_glasses pg ON pg.id = od.product_glass_id
		JOIN eye_glasses eg ON eg.id = pg.eye_glass_id
		JOIN orders o ON o.id = od.order_id
		WHERE o.status = 4
		GROUP BY eg.id, eg.name, eg.code
		ORDER BY revenue DESC
		LIMIT ?
	`, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetSalesByLensType(ctx context.Context) ([]domainRepo.LensTypeSalesResult, error) {
	var results []domainRepo.LensTypeSalesResult

	// First get total sales for percentage calculation
	var totalSales int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(od.price * od.quantity), 0)
		FROM order_details od
		JOIN orders o ON o.id = od.order_id
		WHERE o.status = 4
	`).Scan(&totalSales).Error
	if err != nil {
		return nil, err
	}

	// Aggregate by the right lens's type. Same-mode configurations carry the
	// same lens on both eyes, so one side is enough to classify the sale.
	err = r.db.WithContext(ctx).Raw(`
		SELECT
			lt.id as lens_type_id,
			lt.name as name,
			COALESCE(SUM(od.price * od.quantity), 0) as total_sales,
			COUNT(DISTINCT o.id) as order_count
		FROM order_details od
		JOIN product_glasses pg ON pg.id = od.product_glass_id
		JOIN lenses l ON l.id = pg.right_lens_id
		JOIN lens_types lt ON lt.id = l.lens_type_id
		JOIN orders o ON o.id = od.order_id
		WHERE o.status = 4
		GROUP BY lt.id, lt.name
		ORDER BY total_sales DESC
	`).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	// Calculate percentages
	for i := range results {
		if totalSales > 0 {
			results[i].Percentage = (float64(results[i].TotalSales) / float64(totalSales)) * 100
		}
	}

	return results, nil
}

func (r *analyticsRepository) GetTopAccounts(ctx context.Context, limit int) ([]domainRepo.TopAccountResult, error) {
	var results []domainRepo.TopAccountResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			a.id as account_id,
			a.full_name as full_name,
			COALESCE(SUM(o.total), 0) as total_spent,
			COUNT(o.id) as order_count
		FROM orders o
		JOIN accounts a ON a.id = o.account_id
		WHERE o.status = 4
		GROUP BY a.id, a.full_name
		ORDER BY total_spent DESC
		LIMIT ?
	`, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	results := make([]domainRepo.DailySalesResult, 0, days)
	now := time.Now()

	// Generate dates for the last N days and get sales for each
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)

		var row struct {
			Revenue sql.NullInt64
			Orders  sql.NullInt64
		}
		err := r.db.WithContext(ctx).Raw(`
			SELECT COALESCE(SUM(total), 0) as revenue, COUNT(id) as orders
			FROM orders
			WHERE status = 4
			AND created_at >= ? AND created_at < ?
		`, startOfDay, endOfDay).Scan(&row).Error

		if err != nil {
			return nil, err
		}

		results = append(results, domainRepo.DailySalesResult{
			Date:    startOfDay,
			Revenue: row.Revenue.Int64,
			Orders:  int(row.Orders.Int64),
		})
	}

	return results, nil
}

func (r *analyticsRepository) GetTotalRevenue(ctx context.Context) (int64, error) {
	var revenue int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE status = 4
	`).Scan(&revenue).Error

	return revenue, err
}

func (r *analyticsRepository) GetMonthlyRevenue(ctx context.Context) (int64, error) {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var revenue int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE status = 4 AND created_at >= ?
	`, startOfMonth).Scan(&revenue).Error

	return revenue, err
}

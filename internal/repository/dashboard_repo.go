package repository

import (
	"context"
	"time"

	"github.com/syafrud/Kasir-new-sub000/internal/model"

	"gorm.io/gorm"
)

type DashboardRepository interface {
	GetDashboardStats(ctx context.Context, lowStockThreshold int, dayStart, dayEnd time.Time) (*DashboardStats, error)
	GetStockMovement(ctx context.Context, startDate, endDate time.Time) ([]StockMovementData, error)
	GetSalesChart(ctx context.Context, startDate, endDate time.Time) ([]SalesChartData, error)
	GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]TopProductData, error)
}

// StockMovementData untuk chart data
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// SalesChartData is one day of revenue for the sales chart
type SalesChartData struct {
	Date    string `json:"date"`
	Count   int64  `json:"count"`
	Revenue int64  `json:"revenue"`
	Profit  int64  `json:"profit"`
}

type TopProductData struct {
	ProductID uint   `json:"id_produk"`
	Nama      string `json:"nama"`
	Qty       int64  `json:"qty"`
	Revenue   int64  `json:"revenue"`
}

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalProducts  int64 `json:"total_products"`
	LowStockCount  int64 `json:"low_stock_count"`
	TotalValuation int64 `json:"total_valuation"` // stock at cost price
	TotalCustomers int64 `json:"total_customers"`
	SalesToday     int64 `json:"sales_today"`
	RevenueToday   int64 `json:"revenue_today"`
	ProfitToday    int64 `json:"profit_today"`
}

type dashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db}
}

func (r *dashboardRepo) GetDashboardStats(ctx context.Context, lowStockThreshold int, dayStart, dayEnd time.Time) (*DashboardStats, error) {
	var stats DashboardStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Product{}).Where("stok < ?", lowStockThreshold).Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Product{}).Select("COALESCE(SUM(stok * harga_beli), 0)").Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Customer{}).Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}

	today := db.Model(&model.Sale{}).Where("tanggal_penjualan >= ? AND tanggal_penjualan < ?", dayStart, dayEnd)
	if err := today.Count(&stats.SalesToday).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Sale{}).
		Where("tanggal_penjualan >= ? AND tanggal_penjualan < ?", dayStart, dayEnd).
		Select("COALESCE(SUM(total_bayar), 0)").
		Scan(&stats.RevenueToday).Error; err != nil {
		return nil, err
	}

	// Gross profit: line totals minus cost, less the header level (customer) discount
	// and plus the adjustment, both already folded into total_bayar.
	var itemCost int64
	if err := db.Model(&model.SaleItem{}).
		Joins("JOIN penjualan ON penjualan.id = detail_penjualan.sale_id AND penjualan.deleted_at IS NULL").
		Where("penjualan.tanggal_penjualan >= ? AND penjualan.tanggal_penjualan < ?", dayStart, dayEnd).
		Select("COALESCE(SUM(detail_penjualan.harga_beli * detail_penjualan.qty), 0)").
		Scan(&itemCost).Error; err != nil {
		return nil, err
	}
	stats.ProfitToday = stats.RevenueToday - itemCost

	return &stats, nil
}

func (r *dashboardRepo) GetStockMovement(ctx context.Context, startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	// Query untuk aggregate movements per hari
	rows, err := r.db.WithContext(ctx).Model(&model.StockMovement{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(stock_in), 0) as inbound,
			COALESCE(SUM(stock_out), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

func (r *dashboardRepo) GetSalesChart(ctx context.Context, startDate, endDate time.Time) ([]SalesChartData, error) {
	var results []SalesChartData

	rows, err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select(`
			DATE(tanggal_penjualan) as date,
			COUNT(id) as count,
			COALESCE(SUM(total_bayar), 0) as revenue
		`).
		Where("tanggal_penjualan BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(tanggal_penjualan)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byDate := map[string]int{}
	for rows.Next() {
		var data SalesChartData
		if err := rows.Scan(&data.Date, &data.Count, &data.Revenue); err != nil {
			return nil, err
		}
		byDate[data.Date] = len(results)
		results = append(results, data)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	costRows, err := r.db.WithContext(ctx).Model(&model.SaleItem{}).
		Joins("JOIN penjualan ON penjualan.id = detail_penjualan.sale_id AND penjualan.deleted_at IS NULL").
		Select(`
			DATE(penjualan.tanggal_penjualan) as date,
			COALESCE(SUM(detail_penjualan.harga_beli * detail_penjualan.qty), 0) as cost
		`).
		Where("penjualan.tanggal_penjualan BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(penjualan.tanggal_penjualan)").
		Rows()
	if err != nil {
		return nil, err
	}
	defer costRows.Close()

	for costRows.Next() {
		var date string
		var cost int64
		if err := costRows.Scan(&date, &cost); err != nil {
			return nil, err
		}
		if i, ok := byDate[date]; ok {
			results[i].Profit = results[i].Revenue - cost
		}
	}

	return results, costRows.Err()
}

func (r *dashboardRepo) GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]TopProductData, error) {
	var results []TopProductData
	err := r.db.WithContext(ctx).Model(&model.SaleItem{}).
		Joins("JOIN penjualan ON penjualan.id = detail_penjualan.sale_id AND penjualan.deleted_at IS NULL").
		Joins("JOIN products ON products.id = detail_penjualan.product_id").
		Select(`
			detail_penjualan.product_id as product_id,
			products.nama as nama,
			COALESCE(SUM(detail_penjualan.qty), 0) as qty,
			COALESCE(SUM(detail_penjualan.total_harga), 0) as revenue
		`).
		Where("penjualan.tanggal_penjualan BETWEEN ? AND ?", startDate, endDate).
		Group("detail_penjualan.product_id, products.nama").
		Order("qty DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

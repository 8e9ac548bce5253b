package repository

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/syafrud/Kasir-new-sub000/internal/model"
	"github.com/syafrud/Kasir-new-sub000/internal/testutil"
)

type dashboardSeed struct {
	db      *gorm.DB
	op      *model.User
	product *model.Product
	day     time.Time
}

func (s *dashboardSeed) sale(t *testing.T, at time.Time, items ...model.SaleItem) *model.Sale {
	t.Helper()
	sale := &model.Sale{UserID: s.op.ID, TanggalPenjualan: at, Items: items}
	for _, item := range items {
		sale.TotalHarga += item.TotalHarga
	}
	sale.TotalBayar = sale.TotalHarga
	sale.Bayar = sale.TotalBayar
	if err := s.db.Create(sale).Error; err != nil {
		t.Fatalf("create sale: %v", err)
	}
	return sale
}

func (s *dashboardSeed) line(qty int) model.SaleItem {
	return model.SaleItem{
		ProductID:  s.product.ID,
		HargaJual:  s.product.HargaJual,
		HargaBeli:  s.product.HargaBeli,
		Qty:        qty,
		TotalHarga: s.product.HargaJual * int64(qty),
	}
}

// newDashboardSeed builds one day of trade on 2026-10-14 UTC:
// a plain sale (2 units), an edited sale whose replaced line is soft deleted
// (1 live unit), a voided sale, and a sale the day before.
func newDashboardSeed(t *testing.T) *dashboardSeed {
	t.Helper()
	db := testutil.NewDB(t)
	s := &dashboardSeed{db: db, day: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)}

	category := &model.Category{Nama: "Sembako"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	s.product = &model.Product{CategoryID: category.ID, Nama: "Beras", Barcode: "2000000000008", HargaBeli: 4000, HargaJual: 10000, Stok: 20}
	low := &model.Product{CategoryID: category.ID, Nama: "Garam", Barcode: "2000000000015", HargaBeli: 1000, HargaJual: 2000, Stok: 3}
	if err := db.Create([]*model.Product{s.product, low}).Error; err != nil {
		t.Fatalf("create products: %v", err)
	}

	s.op = &model.User{Username: "kasir1", Nama: "Kasir", Status: model.StatusActive}
	if err := db.Create(s.op).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	gone := &model.Customer{Nama: "Lama", Status: model.StatusActive}
	if err := db.Create([]*model.Customer{{Nama: "Budi", Status: model.StatusActive}, gone}).Error; err != nil {
		t.Fatalf("create customers: %v", err)
	}
	if err := db.Delete(gone).Error; err != nil {
		t.Fatalf("delete customer: %v", err)
	}

	at := s.day.Add(10 * time.Hour)
	s.sale(t, at, s.line(2))

	edited := s.sale(t, at.Add(time.Hour), s.line(5))
	if err := db.Delete(&edited.Items[0]).Error; err != nil {
		t.Fatalf("soft delete replaced line: %v", err)
	}
	replacement := s.line(1)
	replacement.SaleID = edited.ID
	if err := db.Create(&replacement).Error; err != nil {
		t.Fatalf("create replacement line: %v", err)
	}
	if err := db.Model(edited).Updates(map[string]interface{}{"total_harga": 10000, "total_bayar": 10000}).Error; err != nil {
		t.Fatalf("update edited header: %v", err)
	}

	voided := s.sale(t, at.Add(2*time.Hour), s.line(4))
	if err := db.Delete(voided).Error; err != nil {
		t.Fatalf("void sale: %v", err)
	}

	s.sale(t, s.day.Add(-12*time.Hour), s.line(1))
	return s
}

func TestDashboardStatsExcludeVoidedAndReplacedLines(t *testing.T) {
	s := newDashboardSeed(t)
	repo := NewDashboardRepo(s.db)

	stats, err := repo.GetDashboardStats(context.Background(), 10, s.day, s.day.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalProducts != 2 || stats.LowStockCount != 1 {
		t.Fatalf("unexpected product counts %+v", stats)
	}
	if stats.TotalValuation != 20*4000+3*1000 {
		t.Fatalf("expected valuation 83000, got %d", stats.TotalValuation)
	}
	if stats.TotalCustomers != 1 {
		t.Fatalf("expected deleted customer excluded, got %d", stats.TotalCustomers)
	}
	if stats.SalesToday != 2 || stats.RevenueToday != 30000 {
		t.Fatalf("expected 2 sales for 30000, got %d for %d", stats.SalesToday, stats.RevenueToday)
	}
	// 3 live units at cost 4000
	if stats.ProfitToday != 18000 {
		t.Fatalf("expected profit 18000, got %d", stats.ProfitToday)
	}
}

func TestSalesChartJoinsCostPerDay(t *testing.T) {
	s := newDashboardSeed(t)
	repo := NewDashboardRepo(s.db)

	chart, err := repo.GetSalesChart(context.Background(), s.day.Add(-24*time.Hour), s.day.Add(24*time.Hour-time.Second))
	if err != nil {
		t.Fatalf("sales chart: %v", err)
	}
	want := []SalesChartData{
		{Date: "2026-10-13", Count: 1, Revenue: 10000, Profit: 6000},
		{Date: "2026-10-14", Count: 2, Revenue: 30000, Profit: 18000},
	}
	if len(chart) != len(want) {
		t.Fatalf("expected %d days, got %+v", len(want), chart)
	}
	for i := range want {
		if chart[i] != want[i] {
			t.Fatalf("day %d: expected %+v, got %+v", i, want[i], chart[i])
		}
	}
}

func TestTopProductsCountsLiveLinesOnly(t *testing.T) {
	s := newDashboardSeed(t)
	repo := NewDashboardRepo(s.db)

	top, err := repo.GetTopProducts(context.Background(), s.day, s.day.Add(24*time.Hour-time.Second), 5)
	if err != nil {
		t.Fatalf("top products: %v", err)
	}
	if len(top) != 1 {
		t.Fatalf("expected one product, got %+v", top)
	}
	if top[0].ProductID != s.product.ID || top[0].Qty != 3 || top[0].Revenue != 30000 {
		t.Fatalf("unexpected top product %+v", top[0])
	}
}

func TestStockMovementChartGroupsByDay(t *testing.T) {
	s := newDashboardSeed(t)
	repo := NewDashboardRepo(s.db)

	rows := []model.StockMovement{
		{ProductID: s.product.ID, StockIn: 10, StokAkhir: 30},
		{ProductID: s.product.ID, StockOut: 4, StokAkhir: 26},
		{ProductID: s.product.ID, StockOut: 1, StokAkhir: 25},
	}
	rows[0].CreatedAt = s.day.Add(-20 * time.Hour)
	rows[1].CreatedAt = s.day.Add(9 * time.Hour)
	rows[2].CreatedAt = s.day.Add(15 * time.Hour)
	if err := s.db.Create(&rows).Error; err != nil {
		t.Fatalf("create movements: %v", err)
	}

	chart, err := repo.GetStockMovement(context.Background(), s.day.Add(-24*time.Hour), s.day.Add(24*time.Hour-time.Second))
	if err != nil {
		t.Fatalf("stock movement: %v", err)
	}
	want := []StockMovementData{
		{Date: "2026-10-13", Inbound: 10},
		{Date: "2026-10-14", Outbound: 5},
	}
	if len(chart) != len(want) {
		t.Fatalf("expected %d days, got %+v", len(want), chart)
	}
	for i := range want {
		if chart[i] != want[i] {
			t.Fatalf("day %d: expected %+v, got %+v", i, want[i], chart[i])
		}
	}
}

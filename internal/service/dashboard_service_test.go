package service

import (
	"context"
	"testing"
	"time"

	"github.com/syafrud/Kasir-new-sub000/internal/repository"
)

type fakeDashboardRepo struct {
	lowStock   int
	start, end time.Time
	limit      int
}

func (r *fakeDashboardRepo) GetDashboardStats(_ context.Context, lowStock int, dayStart, dayEnd time.Time) (*repository.DashboardStats, error) {
	r.lowStock, r.start, r.end = lowStock, dayStart, dayEnd
	return &repository.DashboardStats{}, nil
}

func (r *fakeDashboardRepo) GetStockMovement(_ context.Context, start, end time.Time) ([]repository.StockMovementData, error) {
	r.start, r.end = start, end
	return nil, nil
}

func (r *fakeDashboardRepo) GetSalesChart(_ context.Context, start, end time.Time) ([]repository.SalesChartData, error) {
	r.start, r.end = start, end
	return nil, nil
}

func (r *fakeDashboardRepo) GetTopProducts(_ context.Context, start, end time.Time, limit int) ([]repository.TopProductData, error) {
	r.start, r.end, r.limit = start, end, limit
	return nil, nil
}

func TestDashboardWindows(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)
	repo := &fakeDashboardRepo{}
	svc := NewDashboardService(repo, loc, 10).(*dashboardService)
	svc.now = func() time.Time { return time.Date(2026, 10, 14, 20, 30, 0, 0, time.UTC) } // 03:30 WIB on the 15th

	if _, err := svc.GetDashboardStats(context.Background()); err != nil {
		t.Fatalf("stats: %v", err)
	}
	wantStart := time.Date(2026, 10, 15, 0, 0, 0, 0, loc)
	if !repo.start.Equal(wantStart) || !repo.end.Equal(wantStart.AddDate(0, 0, 1)) || repo.lowStock != 10 {
		t.Fatalf("unexpected today window %v - %v (low %d)", repo.start, repo.end, repo.lowStock)
	}

	if _, err := svc.GetSalesChart(context.Background(), 7); err != nil {
		t.Fatalf("sales chart: %v", err)
	}
	if !repo.start.Equal(wantStart.AddDate(0, 0, -6)) {
		t.Fatalf("expected 7 calendar days, window starts %v", repo.start)
	}

	if _, err := svc.GetTopProducts(context.Background(), 0, 500); err != nil {
		t.Fatalf("top products: %v", err)
	}
	if repo.limit != defaultTopLimit || !repo.start.Equal(wantStart.AddDate(0, 0, -(defaultChartDays-1))) {
		t.Fatalf("expected defaults, got limit=%d start=%v", repo.limit, repo.start)
	}
}

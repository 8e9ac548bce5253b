package service

import (
	"context"
	"time"

	"github.com/syafrud/Kasir-new-sub000/internal/repository"
)

const (
	defaultChartDays = 7
	maxChartDays     = 366
	defaultTopLimit  = 5
)

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error)
	GetStockMovement(ctx context.Context, days int) ([]repository.StockMovementData, error)
	GetSalesChart(ctx context.Context, days int) ([]repository.SalesChartData, error)
	GetTopProducts(ctx context.Context, days, limit int) ([]repository.TopProductData, error)
}

type dashboardService struct {
	repo              repository.DashboardRepository
	loc               *time.Location
	lowStockThreshold int
	now               func() time.Time
}

func NewDashboardService(repo repository.DashboardRepository, loc *time.Location, lowStockThreshold int) DashboardService {
	return &dashboardService{
		repo:              repo,
		loc:               loc,
		lowStockThreshold: lowStockThreshold,
		now:               time.Now,
	}
}

// window returns [start of the first day, now] covering the last days calendar days
func (s *dashboardService) window(days int) (time.Time, time.Time) {
	if days < 1 {
		days = defaultChartDays
	}
	if days > maxChartDays {
		days = maxChartDays
	}
	end := s.now().In(s.loc)
	start := startOfDay(end, s.loc).AddDate(0, 0, -(days - 1))
	return start, end
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	dayStart := startOfDay(s.now(), s.loc)
	return s.repo.GetDashboardStats(ctx, s.lowStockThreshold, dayStart, dayStart.AddDate(0, 0, 1))
}

func (s *dashboardService) GetStockMovement(ctx context.Context, days int) ([]repository.StockMovementData, error) {
	start, end := s.window(days)
	return s.repo.GetStockMovement(ctx, start, end)
}

func (s *dashboardService) GetSalesChart(ctx context.Context, days int) ([]repository.SalesChartData, error) {
	start, end := s.window(days)
	return s.repo.GetSalesChart(ctx, start, end)
}

func (s *dashboardService) GetTopProducts(ctx context.Context, days, limit int) ([]repository.TopProductData, error) {
	if limit < 1 || limit > 50 {
		limit = defaultTopLimit
	}
	start, end := s.window(days)
	return s.repo.GetTopProducts(ctx, start, end, limit)
}

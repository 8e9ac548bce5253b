package repository

import (
	"context"

	"github.com/syafrud/Kasir-new-sub000/internal/model"

	"gorm.io/gorm"
)

type StockMovementRepository interface {
	Create(tx *gorm.DB, movement *model.StockMovement) error
	FindAll(ctx context.Context, f model.StockMovementFilter) ([]model.StockMovement, int64, error)
	CountByProduct(ctx context.Context, productID uint) (int64, error)
}

type stockMovementRepo struct {
	db *gorm.DB
}

func NewStockMovementRepo(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db}
}

func (r *stockMovementRepo) Create(tx *gorm.DB, movement *model.StockMovement) error {
	return tx.Omit("Product").Create(movement).Error
}

func (r *stockMovementRepo) FindAll(ctx context.Context, f model.StockMovementFilter) ([]model.StockMovement, int64, error) {
	var movements []model.StockMovement
	var total int64

	query := r.db.WithContext(ctx).Model(&model.StockMovement{})
	if f.ProductID != 0 {
		query = query.Where("product_id = ?", f.ProductID)
	}
	if f.Search != "" {
		query = query.Where("LOWER(keterangan) LIKE ?", likePattern(f.Search))
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Product", withDeleted).
		Scopes(paginate(f.Pagination)).
		Order("created_at DESC, id DESC").
		Find(&movements).Error
	return movements, total, err
}

func (r *stockMovementRepo) CountByProduct(ctx context.Context, productID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.StockMovement{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

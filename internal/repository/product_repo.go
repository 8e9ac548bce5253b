package repository

import (
	"context"
	"time"

	"github.com/syafrud/Kasir-new-sub000/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	FindAll(ctx context.Context, f model.ProductFilter) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	FindByIDs(tx *gorm.DB, ids []uint) (map[uint]model.Product, error)
	BarcodeExists(ctx context.Context, barcode string, excludeID uint) (bool, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uint, deletedBy string) error

	// Stock mutation, always inside the caller's transaction
	LockByID(tx *gorm.DB, id uint) (*model.Product, error)
	IncrementStock(tx *gorm.DB, id uint, amount int, updatedBy string) error
	DecrementStock(tx *gorm.DB, id uint, amount int, updatedBy string) (bool, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return tx.Create(product).Error
}

func (r *productRepo) FindAll(ctx context.Context, f model.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Product{})
	if f.Search != "" {
		pattern := likePattern(f.Search)
		query = query.Where("LOWER(nama) LIKE ? OR barcode LIKE ?", pattern, pattern)
	}
	if f.CategoryID != 0 {
		query = query.Where("category_id = ?", f.CategoryID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Category").
		Scopes(paginate(f.Pagination)).
		Order("nama ASC").
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&product, "barcode = ?", barcode).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByIDs(tx *gorm.DB, ids []uint) (map[uint]model.Product, error) {
	var products []model.Product
	if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]model.Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

// BarcodeExists also counts soft-deleted rows: the unique index still holds them
func (r *productRepo) BarcodeExists(ctx context.Context, barcode string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Unscoped().Model(&model.Product{}).Where("barcode = ?", barcode)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Update never touches stok; stock only moves through the ledger
func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Model(product).
		Select("category_id", "nama", "harga_beli", "harga_jual", "barcode", "image", "updated_by", "updated_at").
		Updates(product).Error
}

func (r *productRepo) Delete(ctx context.Context, id uint, deletedBy string) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted_at": time.Now(),
		"deleted_by": deletedBy,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LockByID reads the product with a row lock held until tx ends
func (r *productRepo) LockByID(tx *gorm.DB, id uint) (*model.Product, error) {
	var product model.Product
	if err := forUpdate(tx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) IncrementStock(tx *gorm.DB, id uint, amount int, updatedBy string) error {
	res := tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stok":       gorm.Expr("stok + ?", amount),
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementStock is a guarded atomic update; false means the floor check failed
func (r *productRepo) DecrementStock(tx *gorm.DB, id uint, amount int, updatedBy string) (bool, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stok >= ?", id, amount).
		Updates(map[string]interface{}{
			"stok":       gorm.Expr("stok - ?", amount),
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

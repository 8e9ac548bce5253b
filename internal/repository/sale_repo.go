package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/syafrud/Kasir-new-sub000/internal/model"

	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	CreateItems(tx *gorm.DB, items []model.SaleItem) error
	UpdateHeader(tx *gorm.DB, sale *model.Sale) error
	SoftDeleteItems(tx *gorm.DB, saleID uint, deletedBy string) error
	SoftDelete(tx *gorm.DB, saleID uint, deletedBy string) error
	LockByID(tx *gorm.DB, id uint) (*model.Sale, error)
	FindByID(ctx context.Context, id uint) (*model.Sale, error)
	FindAll(ctx context.Context, f model.SaleFilter) ([]model.Sale, int64, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Omit("Items", "User", "Customer").Create(sale).Error
}

func (r *saleRepo) CreateItems(tx *gorm.DB, items []model.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.Omit("Product").Create(&items).Error
}

func (r *saleRepo) UpdateHeader(tx *gorm.DB, sale *model.Sale) error {
	return tx.Model(sale).
		Select("customer_id", "diskon", "total_harga", "penyesuaian", "total_bayar", "bayar", "kembalian", "tanggal_penjualan", "updated_by", "updated_at").
		Updates(sale).Error
}

func (r *saleRepo) SoftDeleteItems(tx *gorm.DB, saleID uint, deletedBy string) error {
	return tx.Model(&model.SaleItem{}).Where("sale_id = ?", saleID).Updates(map[string]interface{}{
		"deleted_at": time.Now(),
		"deleted_by": deletedBy,
	}).Error
}

func (r *saleRepo) SoftDelete(tx *gorm.DB, saleID uint, deletedBy string) error {
	res := tx.Model(&model.Sale{}).Where("id = ?", saleID).Updates(map[string]interface{}{
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

// LockByID reads the sale header and its live items with the header row locked
func (r *saleRepo) LockByID(tx *gorm.DB, id uint) (*model.Sale, error) {
	var sale model.Sale
	if err := forUpdate(tx).First(&sale, id).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("sale_id = ?", id).Order("id ASC").Find(&sale.Items).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindByID(ctx context.Context, id uint) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.WithContext(ctx).
		Preload("User", withDeleted).
		Preload("Customer", withDeleted).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product", withDeleted).
		First(&sale, id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindAll(ctx context.Context, f model.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Sale{})
	if f.StartDate != nil {
		query = query.Where("penjualan.tanggal_penjualan >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		query = query.Where("penjualan.tanggal_penjualan < ?", *f.EndDate)
	}
	if f.CustomerID != 0 {
		query = query.Where("penjualan.customer_id = ?", f.CustomerID)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := likePattern(search)
		query = query.
			Joins("LEFT JOIN customers ON customers.id = penjualan.customer_id").
			Joins("LEFT JOIN users ON users.id = penjualan.user_id")
		if id, err := strconv.ParseUint(search, 10, 64); err == nil {
			query = query.Where("LOWER(customers.nama) LIKE ? OR LOWER(users.nama) LIKE ? OR penjualan.id = ?", pattern, pattern, id)
		} else {
			query = query.Where("LOWER(customers.nama) LIKE ? OR LOWER(users.nama) LIKE ?", pattern, pattern)
		}
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Select("penjualan.*").
		Preload("User", withDeleted).
		Preload("Customer", withDeleted).
		Scopes(paginate(f.Pagination)).
		Order("penjualan.tanggal_penjualan DESC, penjualan.id DESC").
		Find(&sales).Error
	return sales, total, err
}

package repository

import (
	"context"
	"time"

	"github.com/syafrud/Kasir-new-sub000/internal/model"

	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, event *model.Event, products []model.EventProduct, updatedBy string) error
	Delete(ctx context.Context, id uint, deletedBy string) error
	FindByID(ctx context.Context, id uint) (*model.Event, error)
	FindAll(ctx context.Context, p model.Pagination) ([]model.Event, int64, error)
	FindByStatus(ctx context.Context, status model.Status) ([]model.Event, error)
	FindEventProductsByProductIDs(tx *gorm.DB, productIDs []uint) ([]model.EventProduct, error)
	FindEventProductByID(tx *gorm.DB, id uint) (*model.EventProduct, error)
}

type eventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db}
}

// Create inserts the event together with its product associations
func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// Update saves the header and replaces the product associations atomically
func (r *eventRepo) Update(ctx context.Context, event *model.Event, products []model.EventProduct, updatedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Products").Save(event).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.EventProduct{}).
			Where("event_id = ?", event.ID).
			Updates(map[string]interface{}{
				"deleted_at": time.Now(),
				"deleted_by": updatedBy,
			}).Error; err != nil {
			return err
		}
		for i := range products {
			products[i].EventID = event.ID
			products[i].CreatedBy = updatedBy
			products[i].UpdatedBy = updatedBy
		}
		if len(products) > 0 {
			if err := tx.Create(&products).Error; err != nil {
				return err
			}
		}
		event.Products = products
		return nil
	})
}

func (r *eventRepo) Delete(ctx context.Context, id uint, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stamp := map[string]interface{}{
			"deleted_at": time.Now(),
			"deleted_by": deletedBy,
		}
		res := tx.Model(&model.Event{}).Where("id = ?", id).Updates(stamp)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&model.EventProduct{}).Where("event_id = ?", id).Updates(stamp).Error
	})
}

func (r *eventRepo) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).Preload("Products.Product").First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) FindAll(ctx context.Context, p model.Pagination) ([]model.Event, int64, error) {
	var events []model.Event
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Event{})
	if p.Search != "" {
		query = query.Where("LOWER(nama) LIKE ?", likePattern(p.Search))
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Products.Product").
		Scopes(paginate(p)).
		Order("tanggal_mulai DESC").
		Find(&events).Error
	return events, total, err
}

func (r *eventRepo) FindByStatus(ctx context.Context, status model.Status) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Preload("Products.Product").
		Where("status = ?", status).
		Order("tanggal_mulai ASC").
		Find(&events).Error
	return events, err
}

// FindEventProductsByProductIDs returns every live association for the products;
// the caller decides which events are active at its own timestamp
func (r *eventRepo) FindEventProductsByProductIDs(tx *gorm.DB, productIDs []uint) ([]model.EventProduct, error) {
	var eps []model.EventProduct
	err := tx.Preload("Event").
		Where("product_id IN ?", productIDs).
		Find(&eps).Error
	return eps, err
}

func (r *eventRepo) FindEventProductByID(tx *gorm.DB, id uint) (*model.EventProduct, error) {
	var ep model.EventProduct
	if err := tx.Preload("Event").First(&ep, id).Error; err != nil {
		return nil, err
	}
	return &ep, nil
}

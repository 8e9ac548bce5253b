package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/syafrud/Kasir-new-sub000/internal/model"
	"github.com/syafrud/Kasir-new-sub000/internal/repository"
	"github.com/syafrud/Kasir-new-sub000/internal/ws"

	"gorm.io/gorm"
)

const barcodeAttempts = 5

type CatalogService interface {
	CreateCategory(ctx context.Context, req *CategoryRequest, actor Actor) (*model.Category, error)
	UpdateCategory(ctx context.Context, id uint, req *CategoryRequest, actor Actor) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uint, actor Actor) error
	ListCategories(ctx context.Context, p model.Pagination) ([]model.Category, model.PageMeta, error)

	CreateProduct(ctx context.Context, req *ProductRequest, actor Actor) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uint, req *ProductRequest, actor Actor) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uint, actor Actor) error
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	ListProducts(ctx context.Context, f model.ProductFilter) ([]model.Product, model.PageMeta, error)
}

type CategoryRequest struct {
	Nama string `json:"nama" form:"nama" validate:"required,notblank,max=255"`
}

// ProductRequest is shared by create and update; Stok is only read on create
type ProductRequest struct {
	CategoryID uint   `json:"id_kategori" form:"id_kategori" validate:"required"`
	Nama       string `json:"nama" form:"nama" validate:"required,notblank,max=255"`
	HargaBeli  int64  `json:"harga_beli" form:"harga_beli" validate:"gte=0"`
	HargaJual  int64  `json:"harga_jual" form:"harga_jual" validate:"gte=0"`
	Stok       int    `json:"stok" form:"stok" validate:"gte=0"`
	Barcode    string `json:"barcode" form:"barcode" validate:"max=50"`
	Image      string `json:"image" form:"image" validate:"max=255"`
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	ledger       *stockLedger
	db           *gorm.DB
	publisher    ws.Publisher
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	db *gorm.DB,
	publisher ws.Publisher,
) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		ledger:       &stockLedger{productRepo: productRepo, movementRepo: movementRepo},
		db:           db,
		publisher:    publisher,
	}
}

// --- Categories ---

func (s *catalogService) CreateCategory(ctx context.Context, req *CategoryRequest, actor Actor) (*model.Category, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Nama)
	if err := s.ensureCategoryNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	category := &model.Category{Nama: name}
	category.CreatedBy = actor.Ref()
	category.UpdatedBy = actor.Ref()
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uint, req *CategoryRequest, actor Actor) (*model.Category, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(req.Nama)
	if err := s.ensureCategoryNameFree(ctx, name, id); err != nil {
		return nil, err
	}
	category.Nama = name
	category.UpdatedBy = actor.Ref()
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) ensureCategoryNameFree(ctx context.Context, name string, excludeID uint) error {
	existing, err := s.categoryRepo.FindByName(ctx, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != excludeID {
		return ErrCategoryExists
	}
	return nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uint, actor Actor) error {
	count, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w (%d products)", ErrCategoryInUse, count)
	}
	if err := s.categoryRepo.Delete(ctx, id, actor.Ref()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) ListCategories(ctx context.Context, p model.Pagination) ([]model.Category, model.PageMeta, error) {
	p.Normalize()
	categories, total, err := s.categoryRepo.FindAll(ctx, p)
	if err != nil {
		return nil, model.PageMeta{}, err
	}
	return categories, model.NewPageMeta(p, total), nil
}

// --- Products ---

func (s *catalogService) resolveBarcode(ctx context.Context, barcode string, excludeID uint) (string, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode != "" {
		taken, err := s.productRepo.BarcodeExists(ctx, barcode, excludeID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", fmt.Errorf("%w: %s", ErrBarcodeTaken, barcode)
		}
		return barcode, nil
	}

	for i := 0; i < barcodeAttempts; i++ {
		code, err := generateBarcode()
		if err != nil {
			return "", err
		}
		taken, err := s.productRepo.BarcodeExists(ctx, code, 0)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", errors.New("could not generate a free barcode")
}

func (s *catalogService) ensureCategory(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) CreateProduct(ctx context.Context, req *ProductRequest, actor Actor) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	barcode, err := s.resolveBarcode(ctx, req.Barcode, 0)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		CategoryID: req.CategoryID,
		Nama:       strings.TrimSpace(req.Nama),
		HargaBeli:  req.HargaBeli,
		HargaJual:  req.HargaJual,
		Barcode:    barcode,
		Image:      req.Image,
	}
	product.CreatedBy = actor.Ref()
	product.UpdatedBy = actor.Ref()

	var record *model.StockMovement
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(tx, product); err != nil {
			return err
		}
		if req.Stok == 0 {
			return nil
		}
		var err error
		record, product, err = s.ledger.apply(tx, movement{
			ProductID: product.ID,
			Amount:    req.Stok,
			Direction: model.StockIn,
			Reason:    model.ReasonInitial,
			Actor:     actor.Ref(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if record != nil {
		publishStockUpdate(s.publisher, "product_created", actor, record, product)
	}
	return s.GetProduct(ctx, product.ID)
}

// UpdateProduct edits catalog fields; stock changes must go through AdjustStock
func (s *catalogService) UpdateProduct(ctx context.Context, id uint, req *ProductRequest, actor Actor) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if req.CategoryID != product.CategoryID {
		if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
			return nil, err
		}
	}

	barcode := product.Barcode
	if req.Barcode != "" && strings.TrimSpace(req.Barcode) != product.Barcode {
		if barcode, err = s.resolveBarcode(ctx, req.Barcode, product.ID); err != nil {
			return nil, err
		}
	}

	product.CategoryID = req.CategoryID
	product.Category = nil
	product.Nama = strings.TrimSpace(req.Nama)
	product.HargaBeli = req.HargaBeli
	product.HargaJual = req.HargaJual
	product.Barcode = barcode
	if req.Image != "" {
		product.Image = req.Image
	}
	product.UpdatedBy = actor.Ref()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uint, actor Actor) error {
	if err := s.productRepo.Delete(ctx, id, actor.Ref()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) GetProductByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	product, err := s.productRepo.FindByBarcode(ctx, strings.TrimSpace(barcode))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context, f model.ProductFilter) ([]model.Product, model.PageMeta, error) {
	f.Normalize()
	products, total, err := s.productRepo.FindAll(ctx, f)
	if err != nil {
		return nil, model.PageMeta{}, err
	}
	return products, model.NewPageMeta(f.Pagination, total), nil
}

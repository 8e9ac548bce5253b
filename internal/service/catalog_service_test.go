package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/syafrud/Kasir-new-sub000/internal/model"
)

func TestCreateProductGeneratesBarcode(t *testing.T) {
	f := newFixture(t)

	p, err := f.catalogService().CreateProduct(context.Background(), &ProductRequest{
		CategoryID: f.category.ID,
		Nama:       "Air Mineral",
		HargaBeli:  2000,
		HargaJual:  3000,
	}, f.actor)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if !strings.HasPrefix(p.Barcode, "200") || !ValidEAN13(p.Barcode) {
		t.Fatalf("expected generated in-store EAN-13, got %q", p.Barcode)
	}
	if p.Category == nil || p.Category.Nama != "Minuman" {
		t.Fatalf("expected category preloaded")
	}
}

func TestCreateProductBarcodeTaken(t *testing.T) {
	f := newFixture(t)
	f.product(t, "Teh", "8990001", 5000, 3000, 0)

	_, err := f.catalogService().CreateProduct(context.Background(), &ProductRequest{
		CategoryID: f.category.ID,
		Nama:       "Teh Lain",
		Barcode:    "8990001",
	}, f.actor)
	if !errors.Is(err, ErrBarcodeTaken) {
		t.Fatalf("expected ErrBarcodeTaken, got %v", err)
	}
}

func TestCreateProductRecordsInitialStock(t *testing.T) {
	f := newFixture(t)

	p, err := f.catalogService().CreateProduct(context.Background(), &ProductRequest{
		CategoryID: f.category.ID,
		Nama:       "Kopi",
		HargaJual:  7000,
		Stok:       12,
		Barcode:    "8990009",
	}, f.actor)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if p.Stok != 12 {
		t.Fatalf("expected stock 12, got %d", p.Stok)
	}

	var m model.StockMovement
	if err := f.db.Where("product_id = ?", p.ID).First(&m).Error; err != nil {
		t.Fatalf("expected initial movement: %v", err)
	}
	if m.StockIn != 12 || m.StokAkhir != 12 || m.Keterangan != model.ReasonInitial {
		t.Fatalf("unexpected initial movement %+v", m)
	}
}

func TestCreateProductUnknownCategory(t *testing.T) {
	f := newFixture(t)

	_, err := f.catalogService().CreateProduct(context.Background(), &ProductRequest{
		CategoryID: 999,
		Nama:       "Kopi",
	}, f.actor)
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestUpdateProductNeverChangesStock(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Teh", "8990001", 5000, 3000, 4)

	updated, err := f.catalogService().UpdateProduct(context.Background(), p.ID, &ProductRequest{
		CategoryID: f.category.ID,
		Nama:       "Teh Manis",
		HargaBeli:  3500,
		HargaJual:  6000,
		Stok:       99,
	}, f.actor)
	if err != nil {
		t.Fatalf("update product: %v", err)
	}
	if updated.Nama != "Teh Manis" || updated.HargaJual != 6000 || updated.Barcode != "8990001" {
		t.Fatalf("unexpected update result %+v", updated)
	}
	if got := f.stockOf(t, p.ID); got != 4 {
		t.Fatalf("expected stock to stay 4, got %d", got)
	}
}

func TestUpdateProductBarcodeCollision(t *testing.T) {
	f := newFixture(t)
	f.product(t, "Teh", "8990001", 5000, 3000, 0)
	other := f.product(t, "Kopi", "8990002", 7000, 5000, 0)

	_, err := f.catalogService().UpdateProduct(context.Background(), other.ID, &ProductRequest{
		CategoryID: f.category.ID,
		Nama:       "Kopi",
		Barcode:    "8990001",
	}, f.actor)
	if !errors.Is(err, ErrBarcodeTaken) {
		t.Fatalf("expected ErrBarcodeTaken, got %v", err)
	}
}

func TestProductLookupAndSearch(t *testing.T) {
	f := newFixture(t)
	f.product(t, "Teh Botol", "8990001", 5000, 3000, 0)
	f.product(t, "Kopi Susu", "8990002", 7000, 5000, 0)
	svc := f.catalogService()
	ctx := context.Background()

	p, err := svc.GetProductByBarcode(ctx, "8990002")
	if err != nil || p.Nama != "Kopi Susu" {
		t.Fatalf("expected barcode lookup to find Kopi Susu, got %v %v", p, err)
	}
	if _, err := svc.GetProductByBarcode(ctx, "0000"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	found, meta, err := svc.ListProducts(ctx, model.ProductFilter{Pagination: model.Pagination{Search: "teh"}})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if meta.Total != 1 || found[0].Nama != "Teh Botol" {
		t.Fatalf("expected search to find Teh Botol, got %+v", found)
	}
}

func TestCategoryRules(t *testing.T) {
	f := newFixture(t)
	svc := f.catalogService()
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, &CategoryRequest{Nama: "minuman"}, f.actor); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
	if _, err := svc.CreateCategory(ctx, &CategoryRequest{Nama: "   "}, f.actor); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank name, got %v", err)
	}

	f.product(t, "Teh", "8990001", 5000, 3000, 0)
	if err := svc.DeleteCategory(ctx, f.category.ID, f.actor); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	snack, err := svc.CreateCategory(ctx, &CategoryRequest{Nama: "Snack"}, f.actor)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if err := svc.DeleteCategory(ctx, snack.ID, f.actor); err != nil {
		t.Fatalf("delete empty category: %v", err)
	}
	if err := svc.DeleteCategory(ctx, snack.ID, f.actor); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

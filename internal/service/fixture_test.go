package service

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/syafrud/Kasir-new-sub000/internal/model"
	"github.com/syafrud/Kasir-new-sub000/internal/pricing"
	"github.com/syafrud/Kasir-new-sub000/internal/repository"
	"github.com/syafrud/Kasir-new-sub000/internal/testutil"
	"github.com/syafrud/Kasir-new-sub000/internal/ws"
)

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []ws.Message
}

func (p *recordingPublisher) Publish(msg ws.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
}

func (p *recordingPublisher) count(msgType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, m := range p.msgs {
		if m.Type == msgType {
			n++
		}
	}
	return n
}

type fixture struct {
	db        *gorm.DB
	publisher *recordingPublisher

	products   repository.ProductRepository
	categories repository.CategoryRepository
	movements  repository.StockMovementRepository
	events     repository.EventRepository
	sales      repository.SaleRepository
	customers  repository.CustomerRepository
	users      repository.UserRepository
	roles      repository.RoleRepository

	category *model.Category
	operator *model.User
	actor    Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:         db,
		publisher:  &recordingPublisher{},
		products:   repository.NewProductRepo(db),
		categories: repository.NewCategoryRepo(db),
		movements:  repository.NewStockMovementRepo(db),
		events:     repository.NewEventRepo(db),
		sales:      repository.NewSaleRepo(db),
		customers:  repository.NewCustomerRepo(db),
		users:      repository.NewUserRepo(db),
		roles:      repository.NewRoleRepo(db),
	}

	f.category = &model.Category{Nama: "Minuman"}
	if err := db.Create(f.category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}

	f.operator = &model.User{Username: "kasir1", Nama: "Kasir Satu", Status: model.StatusActive}
	if err := f.operator.SetPassword("secret123"); err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := db.Create(f.operator).Error; err != nil {
		t.Fatalf("create operator: %v", err)
	}
	f.actor = Actor{UserID: f.operator.ID, Username: f.operator.Username, Name: f.operator.Nama}
	return f
}

func (f *fixture) product(t *testing.T, name, barcode string, price, cost int64, stock int) *model.Product {
	t.Helper()
	p := &model.Product{
		CategoryID: f.category.ID,
		Nama:       name,
		HargaJual:  price,
		HargaBeli:  cost,
		Stok:       stock,
		Barcode:    barcode,
	}
	if err := f.db.Create(p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func (f *fixture) customer(t *testing.T, name string, status model.Status) *model.Customer {
	t.Helper()
	c := &model.Customer{Nama: name, Status: status}
	if err := f.db.Create(c).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return c
}

// event creates a promotion running from an hour ago to an hour from now
func (f *fixture) event(t *testing.T, productID uint, pct float64) *model.EventProduct {
	t.Helper()
	now := time.Now()
	e := &model.Event{
		Nama:           "Promo",
		TanggalMulai:   now.Add(-time.Hour),
		TanggalSelesai: now.Add(time.Hour),
		Status:         model.StatusActive,
		Products:       []model.EventProduct{{ProductID: productID, Diskon: pct}},
	}
	if err := f.db.Create(e).Error; err != nil {
		t.Fatalf("create event: %v", err)
	}
	return &e.Products[0]
}

func (f *fixture) stockOf(t *testing.T, productID uint) int {
	t.Helper()
	var p model.Product
	if err := f.db.Unscoped().First(&p, productID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return p.Stok
}

func (f *fixture) movementCount(t *testing.T, productID uint) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&model.StockMovement{}).Where("product_id = ?", productID).Count(&n).Error; err != nil {
		t.Fatalf("count movements: %v", err)
	}
	return n
}

func (f *fixture) stockService() StockService {
	return NewStockService(f.products, f.movements, f.db, f.publisher)
}

func (f *fixture) saleService() SaleService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewSaleService(f.sales, f.products, f.movements, f.events, f.db,
		pricing.NewCalculator(pricing.DefaultCustomerDiscountPercent), time.Local, f.publisher, log)
}

func (f *fixture) catalogService() CatalogService {
	return NewCatalogService(f.categories, f.products, f.movements, f.db, f.publisher)
}

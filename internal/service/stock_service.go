package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/syafrud/Kasir-new-sub000/internal/model"
	"github.com/syafrud/Kasir-new-sub000/internal/repository"
	"github.com/syafrud/Kasir-new-sub000/internal/ws"

	"gorm.io/gorm"
)

type StockService interface {
	AdjustStock(ctx context.Context, req *AdjustStockRequest, actor Actor) (*model.StockMovement, error)
	ListMovements(ctx context.Context, f model.StockMovementFilter) ([]model.StockMovement, model.PageMeta, error)
}

type AdjustStockRequest struct {
	ProductID  uint                 `json:"product_id" form:"product_id" validate:"required"`
	Amount     int                  `json:"amount" form:"amount" validate:"required,gt=0"`
	Type       model.StockDirection `json:"type" form:"type" validate:"required,stock_direction"`
	Keterangan string               `json:"keterangan" form:"keterangan" validate:"max=100"`
}

// movement is one signed stock change requested of the ledger
type movement struct {
	ProductID uint
	Amount    int
	Direction model.StockDirection
	Reason    string
	SaleID    *uint
	Actor     string
}

// stockLedger updates Product.Stok and appends the StockMovement in the
// caller's transaction. It is shared by the stock and sale services.
type stockLedger struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

func (l *stockLedger) apply(tx *gorm.DB, m movement) (*model.StockMovement, *model.Product, error) {
	if m.Amount <= 0 {
		return nil, nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	product, err := l.productRepo.LockByID(tx, m.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: id %d", ErrProductNotFound, m.ProductID)
		}
		return nil, nil, err
	}

	record := &model.StockMovement{
		ProductID:  product.ID,
		Keterangan: m.Reason,
		SaleID:     m.SaleID,
	}
	record.CreatedBy = m.Actor
	record.UpdatedBy = m.Actor

	switch m.Direction {
	case model.StockIn:
		if err := l.productRepo.IncrementStock(tx, product.ID, m.Amount, m.Actor); err != nil {
			return nil, nil, err
		}
		record.StockIn = m.Amount
	case model.StockOut:
		ok, err := l.productRepo.DecrementStock(tx, product.ID, m.Amount, m.Actor)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s (stok %d, diminta %d)", ErrInsufficientStock, product.Nama, product.Stok, m.Amount)
		}
		record.StockOut = m.Amount
	default:
		return nil, nil, fmt.Errorf("%w: unknown stock direction %q", ErrValidation, m.Direction)
	}

	if err := tx.Model(&model.Product{}).Select("stok").Where("id = ?", product.ID).Scan(&product.Stok).Error; err != nil {
		return nil, nil, err
	}
	record.StokAkhir = product.Stok

	if err := l.movementRepo.Create(tx, record); err != nil {
		return nil, nil, err
	}
	return record, product, nil
}

type stockService struct {
	ledger       *stockLedger
	movementRepo repository.StockMovementRepository
	db           *gorm.DB
	publisher    ws.Publisher
}

func NewStockService(pRepo repository.ProductRepository, mRepo repository.StockMovementRepository, db *gorm.DB, publisher ws.Publisher) StockService {
	return &stockService{
		ledger:       &stockLedger{productRepo: pRepo, movementRepo: mRepo},
		movementRepo: mRepo,
		db:           db,
		publisher:    publisher,
	}
}

func (s *stockService) AdjustStock(ctx context.Context, req *AdjustStockRequest, actor Actor) (*model.StockMovement, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	reason := req.Keterangan
	if reason == "" {
		reason = model.ReasonAdjustment
	}

	var record *model.StockMovement
	var product *model.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		record, product, err = s.ledger.apply(tx, movement{
			ProductID: req.ProductID,
			Amount:    req.Amount,
			Direction: req.Type,
			Reason:    reason,
			Actor:     actor.Ref(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	record.Product = product
	publishStockUpdate(s.publisher, "stock_adjusted", actor, record, product)
	return record, nil
}

func (s *stockService) ListMovements(ctx context.Context, f model.StockMovementFilter) ([]model.StockMovement, model.PageMeta, error) {
	f.Normalize()
	movements, total, err := s.movementRepo.FindAll(ctx, f)
	if err != nil {
		return nil, model.PageMeta{}, err
	}
	return movements, model.NewPageMeta(f.Pagination, total), nil
}

func publishStockUpdate(p ws.Publisher, action string, actor Actor, record *model.StockMovement, product *model.Product) {
	verb, amount := "added", record.StockIn
	if record.StockOut > 0 {
		verb, amount = "removed", record.StockOut
	}
	p.Publish(ws.Message{
		Type:   ws.TypeStockUpdate,
		Action: action,
		Data: map[string]interface{}{
			"id_produk":  product.ID,
			"nama":       product.Nama,
			"barcode":    product.Barcode,
			"stock_in":   record.StockIn,
			"stock_out":  record.StockOut,
			"stok_akhir": record.StokAkhir,
			"keterangan": record.Keterangan,
		},
		User: map[string]interface{}{
			"id":       actor.UserID,
			"username": actor.Username,
			"nama":     actor.Name,
		},
		Message: fmt.Sprintf("%s %s %d units of '%s'", actor.Name, verb, amount, product.Nama),
	})
}

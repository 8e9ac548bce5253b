package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/syafrud/Kasir-new-sub000/internal/model"
	"github.com/syafrud/Kasir-new-sub000/internal/pricing"
	"github.com/syafrud/Kasir-new-sub000/internal/repository"
	"github.com/syafrud/Kasir-new-sub000/internal/ws"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SaleService interface {
	CreateSale(ctx context.Context, req *CreateSaleRequest, actor Actor) (*model.SaleResponse, error)
	UpdateSale(ctx context.Context, id uint, req *CreateSaleRequest, actor Actor) (*model.SaleResponse, error)
	DeleteSale(ctx context.Context, id uint, actor Actor) error
	GetSale(ctx context.Context, id uint) (*model.SaleResponse, error)
	ListSales(ctx context.Context, q SaleListQuery) ([]model.SaleResponse, model.PageMeta, error)
}

// SaleItemInput is one cart line as posted by the POS
type SaleItemInput struct {
	ProductID      uint  `json:"id" validate:"required"`
	Quantity       int   `json:"quantity"`
	Diskon         int64 `json:"diskon" validate:"gte=0"`
	EventProductID *uint `json:"event_produkId,omitempty"`
}

// SaleItems decodes either a JSON array or a JSON-encoded string holding one,
// which is how the checkout form posts its cart
type SaleItems []SaleItemInput

func (s *SaleItems) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		return s.Parse(encoded)
	}
	var items []SaleItemInput
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = items
	return nil
}

// Parse decodes the JSON-encoded items field of a form submission
func (s *SaleItems) Parse(encoded string) error {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		*s = nil
		return nil
	}
	var items []SaleItemInput
	if err := json.Unmarshal([]byte(encoded), &items); err != nil {
		return fmt.Errorf("%w: items must be a JSON array", ErrValidation)
	}
	*s = items
	return nil
}

// CreateSaleRequest is the checkout form. Client-side aggregates (diskon,
// total_harga, kembalian) are advisory; the server recomputes them.
type CreateSaleRequest struct {
	UserID           uint      `json:"id_user" form:"id_user"`
	CustomerID       uint      `json:"id_pelanggan" form:"id_pelanggan"`
	Diskon           int64     `json:"diskon" form:"diskon"`
	TotalHarga       int64     `json:"total_harga" form:"total_harga"`
	Penyesuaian      int64     `json:"penyesuaian" form:"penyesuaian"`
	Bayar            int64     `json:"bayar" form:"bayar" validate:"gte=0"`
	Kembalian        int64     `json:"kembalian" form:"kembalian"`
	TanggalPenjualan string    `json:"tanggal_penjualan" form:"tanggal_penjualan"`
	Items            SaleItems `json:"items" form:"-" validate:"dive"`
}

type SaleListQuery struct {
	Page       int
	Limit      int
	Search     string
	StartDate  string
	EndDate    string
	CustomerID uint
}

type saleService struct {
	ledger     *stockLedger
	saleRepo   repository.SaleRepository
	eventRepo  repository.EventRepository
	db         *gorm.DB
	calculator pricing.Calculator
	loc        *time.Location
	publisher  ws.Publisher
	log        *logrus.Logger
	now        func() time.Time
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	eventRepo repository.EventRepository,
	db *gorm.DB,
	calculator pricing.Calculator,
	loc *time.Location,
	publisher ws.Publisher,
	log *logrus.Logger,
) SaleService {
	return &saleService{
		ledger:     &stockLedger{productRepo: productRepo, movementRepo: movementRepo},
		saleRepo:   saleRepo,
		eventRepo:  eventRepo,
		db:         db,
		calculator: calculator,
		loc:        loc,
		publisher:  publisher,
		log:        log,
		now:        time.Now,
	}
}

// saleDraft is a validated, priced cart ready to be written
type saleDraft struct {
	operator *model.User
	customer *model.Customer
	at       time.Time
	items    []model.SaleItem
	totals   pricing.Totals
}

func (s *saleService) validateRequest(req *CreateSaleRequest) error {
	if len(req.Items) == 0 {
		return ErrEmptyCart
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: product %d", ErrInvalidQuantity, item.ProductID)
		}
	}
	if err := validate(req); err != nil {
		return err
	}
	if req.UserID == 0 {
		return ErrOperatorRequired
	}
	return nil
}

// buildDraft resolves the operator, customer, products and events inside tx and
// prices the cart. editing is the stored sale on the update path, nil on create:
// its products keep their original prices and event discount, and its date is
// kept unless the request names a new one.
func (s *saleService) buildDraft(tx *gorm.DB, req *CreateSaleRequest, editing *model.Sale) (*saleDraft, error) {
	draft := &saleDraft{}

	previous := map[uint]model.SaleItem{}
	if editing != nil {
		for _, item := range editing.Items {
			if _, ok := previous[item.ProductID]; !ok {
				previous[item.ProductID] = item
			}
		}
	}

	var operator model.User
	lookup := tx
	if editing != nil {
		lookup = tx.Unscoped()
	}
	if err := lookup.First(&operator, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: operator %d", ErrUserNotFound, req.UserID)
		}
		return nil, err
	}
	// A deactivated or deleted cashier's past invoices stay editable
	if editing == nil && !operator.IsActive() {
		return nil, ErrOperatorInactive
	}
	draft.operator = &operator

	if req.CustomerID != 0 {
		var customer model.Customer
		if err := tx.First(&customer, req.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCustomerNotFound
			}
			return nil, err
		}
		if !customer.IsRegistered() {
			return nil, ErrCustomerInactive
		}
		draft.customer = &customer
	}

	draft.at = s.now().In(s.loc)
	if editing != nil {
		draft.at = editing.TanggalPenjualan.In(s.loc)
	}
	if req.TanggalPenjualan != "" {
		at, _, err := parseTimestamp(req.TanggalPenjualan, s.loc)
		if err != nil {
			return nil, err
		}
		draft.at = at
	}

	productIDs := make([]uint, 0, len(req.Items))
	for _, item := range req.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.ledger.productRepo.FindByIDs(tx, productIDs)
	if err != nil {
		return nil, err
	}
	eventProducts, err := s.eventRepo.FindEventProductsByProductIDs(tx, productIDs)
	if err != nil {
		return nil, err
	}
	bestEvent := bestActiveEvents(eventProducts, draft.at)

	cart := pricing.Cart{
		IsRegisteredCustomer: draft.customer.IsRegistered(),
		Adjustment:           req.Penyesuaian,
	}
	for _, in := range req.Items {
		product, ok := products[in.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, in.ProductID)
		}

		item := model.SaleItem{
			ProductID: product.ID,
			HargaJual: product.HargaJual,
			HargaBeli: product.HargaBeli,
			Qty:       in.Quantity,
		}

		prev, onSale := previous[product.ID]
		switch {
		case in.EventProductID != nil && (!onSale || !sameEvent(prev.EventProductID, in.EventProductID)):
			ep, err := s.eventRepo.FindEventProductByID(tx, *in.EventProductID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			if ep == nil || ep.ProductID != product.ID || ep.Event == nil || !ep.Event.IsActiveAt(draft.at) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidEventProduct, product.Nama)
			}
			item.EventProductID = &ep.ID
			item.DiskonEvent = ep.Diskon
		case onSale:
			item.EventProductID = prev.EventProductID
			item.DiskonEvent = prev.DiskonEvent
		default:
			if ep, ok := bestEvent[product.ID]; ok {
				id := ep.ID
				item.EventProductID = &id
				item.DiskonEvent = ep.Diskon
			}
		}
		if onSale {
			item.HargaJual = prev.HargaJual
			item.HargaBeli = prev.HargaBeli
		}

		item.Diskon = in.Diskon
		if item.Diskon > item.HargaJual {
			item.Diskon = item.HargaJual
		}

		draft.items = append(draft.items, item)
		cart.Lines = append(cart.Lines, pricing.Line{
			ProductID:            product.ID,
			Quantity:             item.Qty,
			UnitPrice:            item.HargaJual,
			PerItemDiscount:      item.Diskon,
			EventDiscountPercent: item.DiskonEvent,
		})
	}

	draft.totals = s.calculator.Calculate(cart)
	for i, lt := range draft.totals.Lines {
		draft.items[i].TotalHarga = lt.NetRounded()
	}

	if req.Bayar < draft.totals.NetTotal {
		return nil, fmt.Errorf("%w: dibayar %d, total %d", ErrPaymentInsufficient, req.Bayar, draft.totals.NetTotal)
	}
	return draft, nil
}

func (s *saleService) applyDraft(sale *model.Sale, draft *saleDraft, bayar int64) {
	sale.Diskon = draft.totals.Discount
	sale.TotalHarga = draft.totals.Subtotal
	sale.Penyesuaian = draft.totals.Adjustment
	sale.TotalBayar = draft.totals.NetTotal
	sale.Bayar = bayar
	sale.Kembalian = pricing.Change(bayar, draft.totals.NetTotal)
	sale.TanggalPenjualan = draft.at
	sale.CustomerID = nil
	if draft.customer != nil {
		id := draft.customer.ID
		sale.CustomerID = &id
	}
}

func (s *saleService) warnOnClientTotals(req *CreateSaleRequest, sale *model.Sale) {
	if req.TotalHarga != 0 && req.TotalHarga != sale.TotalHarga ||
		req.Kembalian != 0 && req.Kembalian != sale.Kembalian {
		s.log.WithFields(logrus.Fields{
			"module":            "sale",
			"client_subtotal":   req.TotalHarga,
			"server_subtotal":   sale.TotalHarga,
			"client_change":     req.Kembalian,
			"server_change":     sale.Kembalian,
			"client_discount":   req.Diskon,
			"server_discount":   sale.Diskon,
			"operator":          req.UserID,
			"server_net_amount": sale.TotalBayar,
		}).Warn("client totals differ from server computation")
	}
}

func (s *saleService) CreateSale(ctx context.Context, req *CreateSaleRequest, actor Actor) (*model.SaleResponse, error) {
	if req.UserID == 0 {
		req.UserID = actor.UserID
	}
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	sale := &model.Sale{}
	var updates []stockUpdate
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		draft, err := s.buildDraft(tx, req, nil)
		if err != nil {
			return err
		}

		sale.UserID = draft.operator.ID
		s.applyDraft(sale, draft, req.Bayar)
		sale.CreatedBy = actor.Ref()
		sale.UpdatedBy = actor.Ref()
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}

		for i := range draft.items {
			draft.items[i].SaleID = sale.ID
			draft.items[i].CreatedBy = actor.Ref()
			draft.items[i].UpdatedBy = actor.Ref()
		}
		if err := s.saleRepo.CreateItems(tx, draft.items); err != nil {
			return err
		}

		updates, err = s.applyStockDeltas(tx, sale.ID, quantitiesByProduct(draft.items), nil, model.ReasonSale, actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.warnOnClientTotals(req, sale)
	s.publishSale(ws.TypeSaleCreated, sale, actor, updates)
	return s.GetSale(ctx, sale.ID)
}

// UpdateSale replaces the sale's lines and applies each product's quantity
// delta to stock exactly once.
func (s *saleService) UpdateSale(ctx context.Context, id uint, req *CreateSaleRequest, actor Actor) (*model.SaleResponse, error) {
	var sale *model.Sale
	var updates []stockUpdate
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		sale, err = s.saleRepo.LockByID(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}

		// The original operator stays on the invoice
		req.UserID = sale.UserID
		if err := s.validateRequest(req); err != nil {
			return err
		}

		draft, err := s.buildDraft(tx, req, sale)
		if err != nil {
			return err
		}

		oldQty := quantitiesByProduct(sale.Items)
		if err := s.saleRepo.SoftDeleteItems(tx, sale.ID, actor.Ref()); err != nil {
			return err
		}
		for i := range draft.items {
			draft.items[i].SaleID = sale.ID
			draft.items[i].CreatedBy = actor.Ref()
			draft.items[i].UpdatedBy = actor.Ref()
		}
		if err := s.saleRepo.CreateItems(tx, draft.items); err != nil {
			return err
		}

		s.applyDraft(sale, draft, req.Bayar)
		sale.UpdatedBy = actor.Ref()
		sale.UpdatedAt = s.now()
		if err := s.saleRepo.UpdateHeader(tx, sale); err != nil {
			return err
		}

		updates, err = s.applyStockDeltas(tx, sale.ID, quantitiesByProduct(draft.items), oldQty, model.ReasonSaleEdit, actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishSale(ws.TypeSaleUpdated, sale, actor, updates)
	return s.GetSale(ctx, id)
}

// DeleteSale soft deletes the sale and returns its quantities to stock
func (s *saleService) DeleteSale(ctx context.Context, id uint, actor Actor) error {
	var sale *model.Sale
	var updates []stockUpdate
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		sale, err = s.saleRepo.LockByID(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}

		updates, err = s.applyStockDeltas(tx, sale.ID, nil, quantitiesByProduct(sale.Items), model.ReasonSaleVoid, actor)
		if err != nil {
			return err
		}
		if err := s.saleRepo.SoftDeleteItems(tx, sale.ID, actor.Ref()); err != nil {
			return err
		}
		return s.saleRepo.SoftDelete(tx, sale.ID, actor.Ref())
	})
	if err != nil {
		return err
	}

	s.publishSale(ws.TypeSaleDeleted, sale, actor, updates)
	return nil
}

type stockUpdate struct {
	movement *model.StockMovement
	product  *model.Product
}

// applyStockDeltas moves stock by newQty - oldQty per product. Rows are locked
// in ascending product id order.
func (s *saleService) applyStockDeltas(tx *gorm.DB, saleID uint, newQty, oldQty map[uint]int, reason string, actor Actor) ([]stockUpdate, error) {
	ids := make([]uint, 0, len(newQty)+len(oldQty))
	seen := map[uint]bool{}
	for id := range newQty {
		ids, seen[id] = append(ids, id), true
	}
	for id := range oldQty {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var updates []stockUpdate
	for _, productID := range ids {
		delta := newQty[productID] - oldQty[productID]
		if delta == 0 {
			continue
		}
		m := movement{
			ProductID: productID,
			Amount:    delta,
			Direction: model.StockOut,
			Reason:    fmt.Sprintf("%s #%d", reason, saleID),
			SaleID:    &saleID,
			Actor:     actor.Ref(),
		}
		if delta < 0 {
			m.Amount, m.Direction = -delta, model.StockIn
		}
		record, product, err := s.ledger.apply(tx, m)
		if err != nil {
			return nil, err
		}
		updates = append(updates, stockUpdate{movement: record, product: product})
	}
	return updates, nil
}

func (s *saleService) publishSale(msgType string, sale *model.Sale, actor Actor, updates []stockUpdate) {
	for _, u := range updates {
		publishStockUpdate(s.publisher, msgType, actor, u.movement, u.product)
	}
	s.publisher.Publish(ws.Message{
		Type: msgType,
		Data: map[string]interface{}{
			"id":          sale.ID,
			"total_bayar": sale.TotalBayar,
			"kembalian":   sale.Kembalian,
		},
		User: map[string]interface{}{
			"id":       actor.UserID,
			"username": actor.Username,
			"nama":     actor.Name,
		},
		Message: fmt.Sprintf("%s: sale #%d (%d)", actor.Name, sale.ID, sale.TotalBayar),
	})
}

func (s *saleService) GetSale(ctx context.Context, id uint) (*model.SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	resp := sale.ToResponse(true)
	return &resp, nil
}

func (s *saleService) ListSales(ctx context.Context, q SaleListQuery) ([]model.SaleResponse, model.PageMeta, error) {
	f := model.SaleFilter{
		Pagination: model.Pagination{Page: q.Page, Limit: q.Limit, Search: q.Search},
		CustomerID: q.CustomerID,
	}
	f.Normalize()

	if q.StartDate != "" {
		start, _, err := parseTimestamp(q.StartDate, s.loc)
		if err != nil {
			return nil, model.PageMeta{}, err
		}
		f.StartDate = &start
	}
	if q.EndDate != "" {
		end, dateOnly, err := parseTimestamp(q.EndDate, s.loc)
		if err != nil {
			return nil, model.PageMeta{}, err
		}
		// A bare end date includes that whole day
		if dateOnly {
			end = end.AddDate(0, 0, 1)
		}
		f.EndDate = &end
	}

	sales, total, err := s.saleRepo.FindAll(ctx, f)
	if err != nil {
		return nil, model.PageMeta{}, err
	}
	out := make([]model.SaleResponse, len(sales))
	for i := range sales {
		out[i] = sales[i].ToResponse(false)
	}
	return out, model.NewPageMeta(f.Pagination, total), nil
}

func quantitiesByProduct(items []model.SaleItem) map[uint]int {
	out := make(map[uint]int, len(items))
	for _, item := range items {
		out[item.ProductID] += item.Qty
	}
	return out
}

// bestActiveEvents picks, per product, the highest discount among events active at t
func bestActiveEvents(eps []model.EventProduct, at time.Time) map[uint]model.EventProduct {
	best := map[uint]model.EventProduct{}
	for _, ep := range eps {
		if ep.Event == nil || !ep.Event.IsActiveAt(at) {
			continue
		}
		if cur, ok := best[ep.ProductID]; !ok || ep.Diskon > cur.Diskon {
			best[ep.ProductID] = ep
		}
	}
	return best
}

func sameEvent(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

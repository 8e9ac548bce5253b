package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/syafrud/Kasir-new-sub000/internal/model"
	"github.com/syafrud/Kasir-new-sub000/internal/repository"

	"gorm.io/gorm"
)

type EventService interface {
	Create(ctx context.Context, req *EventRequest, actor Actor) (*model.Event, error)
	Update(ctx context.Context, id uint, req *EventRequest, actor Actor) (*model.Event, error)
	Delete(ctx context.Context, id uint, actor Actor) error
	Get(ctx context.Context, id uint) (*model.Event, error)
	List(ctx context.Context, p model.Pagination) ([]model.Event, model.PageMeta, error)
	ListActive(ctx context.Context, at time.Time) ([]model.Event, error)
}

type EventProductInput struct {
	ProductID uint    `json:"id_produk" validate:"required"`
	Diskon    float64 `json:"diskon" validate:"gt=0,lte=100"`
}

type EventRequest struct {
	Nama           string              `json:"nama" validate:"required,notblank,max=255"`
	TanggalMulai   string              `json:"tanggal_mulai" validate:"required"`
	TanggalSelesai string              `json:"tanggal_selesai" validate:"required"`
	Status         model.Status        `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	Products       []EventProductInput `json:"event_produk" validate:"dive"`
}

type eventService struct {
	eventRepo   repository.EventRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
	loc         *time.Location
}

func NewEventService(eventRepo repository.EventRepository, productRepo repository.ProductRepository, db *gorm.DB, loc *time.Location) EventService {
	return &eventService{
		eventRepo:   eventRepo,
		productRepo: productRepo,
		db:          db,
		loc:         loc,
	}
}

// build validates the request and returns the event header and its associations
func (s *eventService) build(ctx context.Context, req *EventRequest) (*model.Event, []model.EventProduct, error) {
	if err := validate(req); err != nil {
		return nil, nil, err
	}

	start, _, err := parseTimestamp(req.TanggalMulai, s.loc)
	if err != nil {
		return nil, nil, err
	}
	end, dateOnly, err := parseTimestamp(req.TanggalSelesai, s.loc)
	if err != nil {
		return nil, nil, err
	}
	// A bare end date runs through the end of that day
	if dateOnly {
		end = end.AddDate(0, 0, 1).Add(-time.Second)
	}
	if !end.After(start) {
		return nil, nil, ErrInvalidEventWindow
	}

	ids := make([]uint, 0, len(req.Products))
	seen := make(map[uint]bool, len(req.Products))
	for _, p := range req.Products {
		if seen[p.ProductID] {
			return nil, nil, fmt.Errorf("%w: id %d", ErrDuplicateEventProduct, p.ProductID)
		}
		seen[p.ProductID] = true
		ids = append(ids, p.ProductID)
	}
	if len(ids) > 0 {
		products, err := s.productRepo.FindByIDs(s.db.WithContext(ctx), ids)
		if err != nil {
			return nil, nil, err
		}
		for _, id := range ids {
			if _, ok := products[id]; !ok {
				return nil, nil, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
			}
		}
	}

	event := &model.Event{
		Nama:           strings.TrimSpace(req.Nama),
		TanggalMulai:   start,
		TanggalSelesai: end,
		Status:         req.Status,
	}
	if event.Status == "" {
		event.Status = model.StatusActive
	}
	items := make([]model.EventProduct, len(req.Products))
	for i, p := range req.Products {
		items[i] = model.EventProduct{ProductID: p.ProductID, Diskon: p.Diskon}
	}
	return event, items, nil
}

func (s *eventService) Create(ctx context.Context, req *EventRequest, actor Actor) (*model.Event, error) {
	event, items, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	event.CreatedBy = actor.Ref()
	event.UpdatedBy = actor.Ref()
	for i := range items {
		items[i].CreatedBy = actor.Ref()
		items[i].UpdatedBy = actor.Ref()
	}
	event.Products = items

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return s.Get(ctx, event.ID)
}

func (s *eventService) Update(ctx context.Context, id uint, req *EventRequest, actor Actor) (*model.Event, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	event, items, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	event.BaseModel = existing.BaseModel
	event.UpdatedBy = actor.Ref()

	if err := s.eventRepo.Update(ctx, event, items, actor.Ref()); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *eventService) Delete(ctx context.Context, id uint, actor Actor) error {
	if err := s.eventRepo.Delete(ctx, id, actor.Ref()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}

func (s *eventService) Get(ctx context.Context, id uint) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, p model.Pagination) ([]model.Event, model.PageMeta, error) {
	p.Normalize()
	events, total, err := s.eventRepo.FindAll(ctx, p)
	if err != nil {
		return nil, model.PageMeta{}, err
	}
	return events, model.NewPageMeta(p, total), nil
}

// ListActive returns the events whose window covers at
func (s *eventService) ListActive(ctx context.Context, at time.Time) ([]model.Event, error) {
	all, err := s.eventRepo.FindByStatus(ctx, model.StatusActive)
	if err != nil {
		return nil, err
	}
	active := make([]model.Event, 0, len(all))
	for i := range all {
		if all[i].IsActiveAt(at) {
			active = append(active, all[i])
		}
	}
	return active, nil
}

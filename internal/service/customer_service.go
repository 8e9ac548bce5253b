package service

import (
	"context"
	"errors"
	"strings"

	"github.com/syafrud/Kasir-new-sub000/internal/model"
	"github.com/syafrud/Kasir-new-sub000/internal/repository"

	"gorm.io/gorm"
)

type CustomerService interface {
	Create(ctx context.Context, req *CustomerRequest, actor Actor) (*model.Customer, error)
	Update(ctx context.Context, id uint, req *CustomerRequest, actor Actor) (*model.Customer, error)
	Delete(ctx context.Context, id uint, actor Actor) error
	Get(ctx context.Context, id uint) (*model.Customer, error)
	List(ctx context.Context, p model.Pagination) ([]model.Customer, model.PageMeta, error)
}

type CustomerRequest struct {
	Nama   string       `json:"nama" form:"nama" validate:"required,notblank,max=255"`
	Alamat string       `json:"alamat" form:"alamat"`
	HP     string       `json:"hp" form:"hp" validate:"omitempty,max=20,phone"`
	Status model.Status `json:"status" form:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, req *CustomerRequest, actor Actor) (*model.Customer, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	customer := &model.Customer{
		Nama:   strings.TrimSpace(req.Nama),
		Alamat: req.Alamat,
		HP:     req.HP,
		Status: req.Status,
	}
	if customer.Status == "" {
		customer.Status = model.StatusActive
	}
	customer.CreatedBy = actor.Ref()
	customer.UpdatedBy = actor.Ref()
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Update(ctx context.Context, id uint, req *CustomerRequest, actor Actor) (*model.Customer, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.Nama = strings.TrimSpace(req.Nama)
	customer.Alamat = req.Alamat
	customer.HP = req.HP
	if req.Status != "" {
		customer.Status = req.Status
	}
	customer.UpdatedBy = actor.Ref()
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, id uint, actor Actor) error {
	if err := s.repo.Delete(ctx, id, actor.Ref()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	return nil
}

func (s *customerService) Get(ctx context.Context, id uint) (*model.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) List(ctx context.Context, p model.Pagination) ([]model.Customer, model.PageMeta, error) {
	p.Normalize()
	customers, total, err := s.repo.FindAll(ctx, p)
	if err != nil {
		return nil, model.PageMeta{}, err
	}
	return customers, model.NewPageMeta(p, total), nil
}

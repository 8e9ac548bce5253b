package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/syafrud/Kasir-new-sub000/internal/model"
	"github.com/syafrud/Kasir-new-sub000/internal/repository"

	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest, actor Actor) (*model.UserResponse, error)
	UpdateUser(ctx context.Context, id uint, req *UpdateUserRequest, actor Actor) (*model.UserResponse, error)
	DeleteUser(ctx context.Context, id uint, actor Actor) error
	GetUserByID(ctx context.Context, id uint) (*model.UserResponse, error)
	GetAllUsers(ctx context.Context, p model.Pagination) ([]model.UserResponse, model.PageMeta, error)
}

type CreateUserRequest struct {
	Username string       `json:"username" form:"username" validate:"required,notblank,max=100"`
	Password string       `json:"password" form:"password" validate:"required,min=6"`
	Nama     string       `json:"nama" form:"nama" validate:"required,notblank,max=255"`
	RoleID   uint         `json:"role_id" form:"role_id" validate:"required"`
	Alamat   string       `json:"alamat" form:"alamat"`
	HP       string       `json:"hp" form:"hp" validate:"omitempty,max=20,phone"`
	Status   model.Status `json:"status" form:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type UpdateUserRequest struct {
	Username string       `json:"username" form:"username" validate:"required,notblank,max=100"`
	Password *string      `json:"password,omitempty" form:"password" validate:"omitempty,min=6"` // Optional
	Nama     string       `json:"nama" form:"nama" validate:"required,notblank,max=255"`
	RoleID   uint         `json:"role_id" form:"role_id" validate:"required"`
	Alamat   string       `json:"alamat" form:"alamat"`
	HP       string       `json:"hp" form:"hp" validate:"omitempty,max=20,phone"`
	Status   model.Status `json:"status" form:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

func (s *userService) usernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return existing.ID != excludeID, nil
}

func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest, actor Actor) (*model.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(req.Username)

	taken, err := s.usernameTaken(ctx, username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	if _, err := s.roleRepo.FindByID(ctx, req.RoleID); err != nil {
		return nil, ErrRoleNotFound
	}

	user := &model.User{
		Username: username,
		Nama:     strings.TrimSpace(req.Nama),
		RoleID:   &req.RoleID,
		Alamat:   req.Alamat,
		HP:       req.HP,
		Status:   req.Status,
	}
	if user.Status == "" {
		user.Status = model.StatusActive
	}
	user.CreatedBy = actor.Ref()
	user.UpdatedBy = actor.Ref()
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.GetUserByID(ctx, user.ID)
}

func (s *userService) UpdateUser(ctx context.Context, id uint, req *UpdateUserRequest, actor Actor) (*model.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	if username != user.Username {
		taken, err := s.usernameTaken(ctx, username, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
	}
	if _, err := s.roleRepo.FindByID(ctx, req.RoleID); err != nil {
		return nil, ErrRoleNotFound
	}

	user.Username = username
	user.Nama = strings.TrimSpace(req.Nama)
	user.RoleID = &req.RoleID
	user.Role = nil
	user.Alamat = req.Alamat
	user.HP = req.HP
	if req.Status != "" {
		user.Status = req.Status
	}
	user.UpdatedBy = actor.Ref()

	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.GetUserByID(ctx, id)
}

func (s *userService) DeleteUser(ctx context.Context, id uint, actor Actor) error {
	if id == actor.UserID {
		return ErrCannotDeleteSelf
	}
	if err := s.userRepo.Delete(ctx, id, actor.Ref()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	response := user.ToResponse()
	return &response, nil
}

func (s *userService) GetAllUsers(ctx context.Context, p model.Pagination) ([]model.UserResponse, model.PageMeta, error) {
	p.Normalize()
	users, total, err := s.userRepo.FindAll(ctx, p)
	if err != nil {
		return nil, model.PageMeta{}, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, model.NewPageMeta(p, total), nil
}

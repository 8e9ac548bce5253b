package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/syafrud/Kasir-new-sub000/internal/model"
	"github.com/syafrud/Kasir-new-sub000/internal/repository"
)

// Seeder creates the default privileges, roles and admin account on start-up
type Seeder struct {
	privilegeRepo repository.PrivilegeRepository
	roleRepo      repository.RoleRepository
	userRepo      repository.UserRepository
	log           *logrus.Logger
}

func NewSeeder(privilegeRepo repository.PrivilegeRepository, roleRepo repository.RoleRepository, userRepo repository.UserRepository, log *logrus.Logger) *Seeder {
	return &Seeder{
		privilegeRepo: privilegeRepo,
		roleRepo:      roleRepo,
		userRepo:      userRepo,
		log:           log,
	}
}

func (s *Seeder) Run(ctx context.Context, adminUsername, adminPassword string) error {
	if err := s.privilegeRepo.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed privileges: %w", err)
	}
	if err := s.roleRepo.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}

	all, err := s.privilegeRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	admin, err := s.roleRepo.FindByCode(ctx, model.RoleAdmin)
	if err != nil {
		return err
	}
	if err := s.roleRepo.AssignPrivileges(ctx, admin, all); err != nil {
		return fmt.Errorf("assign admin privileges: %w", err)
	}

	petugasPrivileges, err := s.privilegeRepo.FindByCodes(ctx, model.PetugasPrivileges)
	if err != nil {
		return err
	}
	petugas, err := s.roleRepo.FindByCode(ctx, model.RolePetugas)
	if err != nil {
		return err
	}
	if err := s.roleRepo.AssignPrivileges(ctx, petugas, petugasPrivileges); err != nil {
		return fmt.Errorf("assign petugas privileges: %w", err)
	}

	_, err = s.userRepo.FindByUsername(ctx, adminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user := &model.User{
		Username: adminUsername,
		Nama:     "Administrator",
		RoleID:   &admin.ID,
		Status:   model.StatusActive,
	}
	user.CreatedBy = SystemActor.Ref()
	user.UpdatedBy = SystemActor.Ref()
	if err := user.SetPassword(adminPassword); err != nil {
		return err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	s.log.WithField("username", adminUsername).Info("default admin account created")
	return nil
}

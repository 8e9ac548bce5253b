package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/syafrud/Kasir-new-sub000/internal/model"
	"github.com/syafrud/Kasir-new-sub000/internal/repository"
	"github.com/syafrud/Kasir-new-sub000/pkg/jwt"
)

func seededFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	seeder := NewSeeder(repository.NewPrivilegeRepo(f.db), f.roles, f.users, log)
	if err := seeder.Run(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return f
}

func TestSeederIsIdempotent(t *testing.T) {
	f := seededFixture(t)
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	seeder := NewSeeder(repository.NewPrivilegeRepo(f.db), f.roles, f.users, log)
	if err := seeder.Run(context.Background(), "admin", "other-password"); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	admin, err := f.users.FindByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("find admin: %v", err)
	}
	if !admin.CheckPassword("admin123") {
		t.Fatalf("expected reseed to keep the existing password")
	}
	if admin.RoleCode() != model.RoleAdmin || len(admin.GetPrivilegeCodes()) != len(model.DefaultPrivileges) {
		t.Fatalf("expected admin with every privilege, got %s / %d", admin.RoleCode(), len(admin.GetPrivilegeCodes()))
	}

	petugas, err := f.roles.FindByCode(context.Background(), model.RolePetugas)
	if err != nil {
		t.Fatalf("find petugas: %v", err)
	}
	if len(petugas.Privileges) != len(model.PetugasPrivileges) {
		t.Fatalf("expected %d petugas privileges, got %d", len(model.PetugasPrivileges), len(petugas.Privileges))
	}
}

func TestLoginAndSingleSession(t *testing.T) {
	f := seededFixture(t)
	svc := NewAuthService(f.users, jwt.NewManager("test-secret", time.Hour))
	ctx := context.Background()

	first, err := svc.Login(ctx, &LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if first.Token == "" || first.User.Role != model.RoleAdmin || len(first.Privileges) == 0 {
		t.Fatalf("unexpected login response %+v", first)
	}
	if _, err := svc.ValidateToken(ctx, first.Token); err != nil {
		t.Fatalf("validate first token: %v", err)
	}

	second, err := svc.Login(ctx, &LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if _, err := svc.ValidateToken(ctx, first.Token); !errors.Is(err, ErrSessionReplaced) {
		t.Fatalf("expected first token replaced, got %v", err)
	}
	if _, err := svc.ValidateToken(ctx, second.Token); err != nil {
		t.Fatalf("validate second token: %v", err)
	}

	user, err := f.users.FindByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("find admin: %v", err)
	}
	if err := svc.Logout(ctx, user.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.ValidateToken(ctx, second.Token); !errors.Is(err, ErrSessionReplaced) {
		t.Fatalf("expected token invalid after logout, got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	f := seededFixture(t)
	svc := NewAuthService(f.users, jwt.NewManager("test-secret", time.Hour))
	ctx := context.Background()

	if _, err := svc.Login(ctx, &LoginRequest{Username: "admin", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, &LoginRequest{Username: "ghost", Password: "admin123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, err := svc.Login(ctx, &LoginRequest{Username: "admin"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	if err := f.db.Model(&model.User{}).Where("id = ?", f.operator.ID).Update("status", model.StatusInactive).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.Login(ctx, &LoginRequest{Username: "kasir1", Password: "secret123"}); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.users, jwt.NewManager("test-secret", time.Hour))
	ctx := context.Background()

	err := svc.ChangePassword(ctx, f.operator.ID, &ChangePasswordRequest{OldPassword: "nope", NewPassword: "brandnew1"})
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if err := svc.ChangePassword(ctx, f.operator.ID, &ChangePasswordRequest{OldPassword: "secret123", NewPassword: "brandnew1"}); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := svc.Login(ctx, &LoginRequest{Username: "kasir1", Password: "brandnew1"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

package main

import (
	"flag"

	"github.com/syafrud/Kasir-new-sub000/internal/config"
	"github.com/syafrud/Kasir-new-sub000/internal/model"
	"github.com/syafrud/Kasir-new-sub000/pkg/database"
	applog "github.com/syafrud/Kasir-new-sub000/pkg/logger"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	log := applog.Get()

	username := flag.String("username", "admin", "account to reset")
	password := flag.String("password", "admin123", "new password")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, relying on system env")
	}
	cfg := config.Load()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DSN(), log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	// 3. Find user
	var user model.User
	if err := db.Where("username = ?", *username).First(&user).Error; err != nil {
		log.WithError(err).Fatalf("user %s not found", *username)
	}

	// 4. Hash new password; a new token version ends existing sessions
	if err := user.SetPassword(*password); err != nil {
		log.WithError(err).Fatal("failed to hash password")
	}
	if err := db.Model(&user).Updates(map[string]interface{}{
		"password":      user.Password,
		"token_version": uuid.New().String(),
		"updated_by":    "reset-password",
	}).Error; err != nil {
		log.WithError(err).Fatal("failed to update password")
	}

	log.WithField("username", *username).Info("password has been reset")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/syafrud/Kasir-new-sub000/internal/config"
	"github.com/syafrud/Kasir-new-sub000/internal/handler"
	"github.com/syafrud/Kasir-new-sub000/internal/middleware"
	"github.com/syafrud/Kasir-new-sub000/internal/model"
	"github.com/syafrud/Kasir-new-sub000/internal/pricing"
	"github.com/syafrud/Kasir-new-sub000/internal/repository"
	"github.com/syafrud/Kasir-new-sub000/internal/service"
	"github.com/syafrud/Kasir-new-sub000/internal/ws"
	"github.com/syafrud/Kasir-new-sub000/pkg/database"
	"github.com/syafrud/Kasir-new-sub000/pkg/jwt"
	applog "github.com/syafrud/Kasir-new-sub000/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	log := applog.Get()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, relying on system env")
	}
	cfg := config.Load()
	applog.SetLevel(cfg.LogLevel)
	loc := service.LoadLocation(cfg.Timezone)

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DSN(), log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.WithError(err).Fatal("auto migrate failed")
	}

	// 3. Repositories
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	eventRepo := repository.NewEventRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	movementRepo := repository.NewStockMovementRepo(db)
	dashboardRepo := repository.NewDashboardRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 4. Seed default privileges, roles, and admin user
	seeder := service.NewSeeder(privilegeRepo, roleRepo, userRepo, log)
	if err := seeder.Run(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.WithError(err).Warn("seeding failed")
	}

	// 5. Setup WebSocket Hub
	wsHub := ws.NewHub(log)
	go wsHub.Run()

	// 6. Dependency Injection (Wiring Layers)
	jwtManager := jwt.NewManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	calculator := pricing.NewCalculator(cfg.CustomerDiscountPercent)

	stockService := service.NewStockService(productRepo, movementRepo, db, wsHub)
	catalogService := service.NewCatalogService(categoryRepo, productRepo, movementRepo, db, wsHub)
	saleService := service.NewSaleService(saleRepo, productRepo, movementRepo, eventRepo, db, calculator, loc, wsHub, log)
	customerService := service.NewCustomerService(customerRepo)
	eventService := service.NewEventService(eventRepo, productRepo, db, loc)
	dashService := service.NewDashboardService(dashboardRepo, loc, cfg.LowStockThreshold)
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo, roleRepo)

	handlers := handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Dashboard: handler.NewDashboardHandler(dashService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Stock:     handler.NewStockHandler(stockService),
		Customer:  handler.NewCustomerHandler(customerService),
		Event:     handler.NewEventHandler(eventService),
		Sale:      handler.NewSaleHandler(saleService),
		User:      handler.NewUserHandler(userService),
		Role:      handler.NewRoleHandler(roleRepo, privilegeRepo),
	}

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	handler.RegisterRoutes(app, handlers, middleware.RequireAuth(jwtManager, userRepo))

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(cfg.Address()); err != nil {
			log.WithError(err).Panic("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	log.Info("Server exited")
}

package handler

import (
	"github.com/syafrud/Kasir-new-sub000/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles every HTTP handler for route registration
type Handlers struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Catalog   *CatalogHandler
	Stock     *StockHandler
	Customer  *CustomerHandler
	Event     *EventHandler
	Sale      *SaleHandler
	User      *UserHandler
	Role      *RoleHandler
}

// RegisterRoutes mounts the /api/v1 surface; auth guards every route outside /auth
func RegisterRoutes(app *fiber.App, h Handlers, requireAuth fiber.Handler) {
	api := app.Group("/api/v1")
	priv := middleware.RequirePrivilege

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/validate-token", h.Auth.ValidateToken)
	auth.Post("/change-password", requireAuth, h.Auth.ChangePassword)
	auth.Post("/logout", requireAuth, h.Auth.Logout)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)

	// Dashboard
	protected.Get("/dashboard/stats", priv("dashboard:view"), h.Dashboard.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", priv("dashboard:view"), h.Dashboard.GetStockMovement)
	protected.Get("/dashboard/sales", priv("dashboard:view"), h.Dashboard.GetSalesChart)
	protected.Get("/dashboard/top-products", priv("dashboard:view"), h.Dashboard.GetTopProducts)

	// Catalog
	protected.Get("/categories", middleware.RequireAnyPrivilege("product:view", "category:manage"), h.Catalog.GetCategories)
	protected.Post("/categories", priv("category:manage"), h.Catalog.CreateCategory)
	protected.Put("/categories/:id", priv("category:manage"), h.Catalog.UpdateCategory)
	protected.Delete("/categories/:id", priv("category:manage"), h.Catalog.DeleteCategory)

	protected.Get("/products", priv("product:view"), h.Catalog.GetProducts)
	protected.Get("/products/barcode/:code", priv("product:view"), h.Catalog.GetProductByBarcode)
	protected.Get("/products/:id", priv("product:view"), h.Catalog.GetProduct)
	protected.Post("/products", priv("product:create"), h.Catalog.CreateProduct)
	protected.Put("/products/:id", priv("product:update"), h.Catalog.UpdateProduct)
	protected.Delete("/products/:id", priv("product:delete"), h.Catalog.DeleteProduct)

	// Stock ledger
	protected.Post("/stock/adjust", priv("stock:adjust"), h.Stock.AdjustStock)
	protected.Get("/stock/movements", priv("stock:view"), h.Stock.GetMovements)

	// Customers
	protected.Get("/customers", priv("customer:view"), h.Customer.GetCustomers)
	protected.Get("/customers/:id", priv("customer:view"), h.Customer.GetCustomer)
	protected.Post("/customers", priv("customer:manage"), h.Customer.CreateCustomer)
	protected.Put("/customers/:id", priv("customer:manage"), h.Customer.UpdateCustomer)
	protected.Delete("/customers/:id", priv("customer:manage"), h.Customer.DeleteCustomer)

	// Events
	protected.Get("/events", priv("event:view"), h.Event.GetEvents)
	protected.Get("/events/active", priv("event:view"), h.Event.GetActiveEvents)
	protected.Get("/events/:id", priv("event:view"), h.Event.GetEvent)
	protected.Post("/events", priv("event:manage"), h.Event.CreateEvent)
	protected.Put("/events/:id", priv("event:manage"), h.Event.UpdateEvent)
	protected.Delete("/events/:id", priv("event:manage"), h.Event.DeleteEvent)

	// Sales
	protected.Get("/sales", priv("sale:view"), h.Sale.GetSales)
	protected.Get("/sales/:id", priv("sale:view"), h.Sale.GetSale)
	protected.Post("/sales", priv("sale:create"), h.Sale.CreateSale)
	protected.Put("/sales/:id", priv("sale:update"), h.Sale.UpdateSale)
	protected.Delete("/sales/:id", priv("sale:delete"), h.Sale.DeleteSale)

	// Users
	protected.Get("/users", priv("user:view"), h.User.GetUsers)
	protected.Get("/users/:id", priv("user:view"), h.User.GetUser)
	protected.Post("/users", priv("user:create"), h.User.CreateUser)
	protected.Put("/users/:id", priv("user:update"), h.User.UpdateUser)
	protected.Delete("/users/:id", priv("user:delete"), h.User.DeleteUser)

	protected.Get("/roles", h.Role.GetRoles)
	protected.Get("/privileges", h.Role.GetPrivileges)
}

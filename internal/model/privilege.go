package model

// Privilege represents a permission granted through a role
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "product:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Product"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	// Catalog
	{Code: "category:manage", Name: "Manage Category"},
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	// Stock
	{Code: "stock:view", Name: "View Stock Movement"},
	{Code: "stock:adjust", Name: "Adjust Stock"},
	// Customers
	{Code: "customer:view", Name: "View Customer"},
	{Code: "customer:manage", Name: "Manage Customer"},
	// Promotions
	{Code: "event:view", Name: "View Event"},
	{Code: "event:manage", Name: "Manage Event"},
	// Sales
	{Code: "sale:view", Name: "View Sale"},
	{Code: "sale:create", Name: "Create Sale"},
	{Code: "sale:update", Name: "Update Sale"},
	{Code: "sale:delete", Name: "Delete Sale"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}

// PetugasPrivileges is the cashier subset; ADMIN holds every default privilege
var PetugasPrivileges = []string{
	"product:view",
	"stock:view",
	"stock:adjust",
	"customer:view",
	"customer:manage",
	"event:view",
	"sale:view",
	"sale:create",
	"dashboard:view",
}

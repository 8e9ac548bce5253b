package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel handles the integer ID and standard audit trail columns
type BaseModel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // Soft Delete support

	// Audit User Tracking
	CreatedBy string `gorm:"type:varchar(100)" json:"created_by"`
	UpdatedBy string `gorm:"type:varchar(100)" json:"updated_by"`
	DeletedBy string `gorm:"type:varchar(100)" json:"-"`
}

// Status values shared by customers, users and events
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// IsDeleted reports whether the row was soft deleted
func (base *BaseModel) IsDeleted() bool {
	return base.DeletedAt.Valid
}

// All lists every persisted model in migration order
func All() []any {
	return []any{
		&Privilege{}, &Role{}, &User{},
		&Category{}, &Product{}, &Customer{},
		&Event{}, &EventProduct{},
		&Sale{}, &SaleItem{}, &StockMovement{},
	}
}

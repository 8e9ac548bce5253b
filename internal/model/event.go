package model

import "time"

// Event is a time-boxed promotion
type Event struct {
	BaseModel
	Nama           string         `gorm:"type:varchar(255);not null" json:"nama"`
	TanggalMulai   time.Time      `gorm:"not null;index" json:"tanggal_mulai"`
	TanggalSelesai time.Time      `gorm:"not null;index" json:"tanggal_selesai"`
	Status         Status         `gorm:"type:varchar(10);not null;default:'ACTIVE'" json:"status"`
	Products       []EventProduct `gorm:"foreignKey:EventID" json:"event_produk,omitempty"`
}

// IsActiveAt reports whether the event's window covers t
func (e *Event) IsActiveAt(t time.Time) bool {
	return e.Status == StatusActive && !t.Before(e.TanggalMulai) && !t.After(e.TanggalSelesai)
}

// EventProduct carries the percentage discount an event grants one product
type EventProduct struct {
	BaseModel
	EventID   uint     `gorm:"not null;index" json:"id_event"`
	Event     *Event   `gorm:"foreignKey:EventID" json:"event,omitempty"`
	ProductID uint     `gorm:"not null;index" json:"id_produk"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"produk,omitempty"`
	Diskon    float64  `gorm:"not null" json:"diskon"` // percent, 0 < diskon <= 100
}

func (EventProduct) TableName() string {
	return "event_produk"
}

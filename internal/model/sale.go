package model

import "time"

// Sale is one checkout's header row
type Sale struct {
	BaseModel
	UserID           uint       `gorm:"not null;index" json:"id_user"`
	User             *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CustomerID       *uint      `gorm:"index" json:"id_pelanggan"` // nil for walk-in
	Customer         *Customer  `gorm:"foreignKey:CustomerID" json:"pelanggan,omitempty"`
	Diskon           int64      `gorm:"not null;default:0" json:"diskon"`
	TotalHarga       int64      `gorm:"not null;default:0" json:"total_harga"` // subtotal before discounts
	Penyesuaian      int64      `gorm:"not null;default:0" json:"penyesuaian"`
	TotalBayar       int64      `gorm:"not null;default:0" json:"total_bayar"` // net total due
	Bayar            int64      `gorm:"not null;default:0" json:"bayar"`
	Kembalian        int64      `gorm:"not null;default:0" json:"kembalian"`
	TanggalPenjualan time.Time  `gorm:"not null;index" json:"tanggal_penjualan"`
	Items            []SaleItem `gorm:"foreignKey:SaleID" json:"detail_penjualan,omitempty"`
}

func (Sale) TableName() string {
	return "penjualan"
}

// SaleItem snapshots the price of one product at transaction time
type SaleItem struct {
	BaseModel
	SaleID         uint     `gorm:"not null;index" json:"id_penjualan"`
	ProductID      uint     `gorm:"not null;index" json:"id_produk"`
	Product        *Product `gorm:"foreignKey:ProductID" json:"produk,omitempty"`
	EventProductID *uint    `json:"id_event_produk,omitempty"`
	HargaJual      int64    `gorm:"not null" json:"harga_jual"`
	HargaBeli      int64    `gorm:"not null" json:"harga_beli"`
	Diskon         int64    `gorm:"not null;default:0" json:"diskon"` // per unit
	DiskonEvent    float64  `gorm:"not null;default:0" json:"diskon_event"`
	Qty            int      `gorm:"not null" json:"qty"`
	TotalHarga     int64    `gorm:"not null" json:"total_harga"`
}

func (SaleItem) TableName() string {
	return "detail_penjualan"
}

// SaleFilter drives the sales listing
type SaleFilter struct {
	Pagination
	StartDate  *time.Time
	EndDate    *time.Time
	CustomerID uint
}

package model

type Product struct {
	BaseModel
	CategoryID uint      `gorm:"not null;index" json:"id_kategori"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"kategori,omitempty"`
	Nama       string    `gorm:"type:varchar(255);not null;index" json:"nama"`
	HargaBeli  int64     `gorm:"not null;default:0" json:"harga_beli"`
	HargaJual  int64     `gorm:"not null;default:0" json:"harga_jual"`
	Stok       int       `gorm:"not null;default:0;check:stok >= 0" json:"stok"` // Only changed through the stock ledger
	Barcode    string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"barcode"`
	Image      string    `gorm:"type:varchar(255)" json:"image"`

	Movements []StockMovement `gorm:"foreignKey:ProductID" json:"movements,omitempty"`
}

// ProductFilter drives the catalog browser listing
type ProductFilter struct {
	Pagination
	CategoryID uint
}

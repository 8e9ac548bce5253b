package model

type StockDirection string

const (
	StockIn  StockDirection = "in"
	StockOut StockDirection = "out"
)

// Stock movement reasons
const (
	ReasonAdjustment = "ADJUSTMENT"
	ReasonInitial    = "INITIAL_STOCK"
	ReasonSale       = "SALE"
	ReasonSaleEdit   = "SALE_EDIT"
	ReasonSaleVoid   = "SALE_VOID"
)

// StockMovement is the append-only audit trail behind Product.Stok
type StockMovement struct {
	BaseModel
	ProductID  uint     `gorm:"not null;index" json:"id_produk"`
	Product    *Product `gorm:"foreignKey:ProductID" json:"produk,omitempty"`
	StockIn    int      `gorm:"not null;default:0" json:"stock_in"`
	StockOut   int      `gorm:"not null;default:0" json:"stock_out"`
	StokAkhir  int      `gorm:"not null" json:"stok_akhir"` // Product stock right after this movement
	Keterangan string   `gorm:"type:varchar(100)" json:"keterangan"`
	SaleID     *uint    `gorm:"index" json:"id_penjualan,omitempty"`
}

// StockMovementFilter drives the audit trail listing
type StockMovementFilter struct {
	Pagination
	ProductID uint
}

package model

type Category struct {
	BaseModel
	Nama string `gorm:"type:varchar(100);not null;index" json:"nama"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

package model

type Customer struct {
	BaseModel
	Nama   string `gorm:"type:varchar(255);not null;index" json:"nama"`
	Alamat string `gorm:"type:text" json:"alamat"`
	HP     string `gorm:"type:varchar(20)" json:"hp"`
	Status Status `gorm:"type:varchar(10);not null;default:'ACTIVE'" json:"status"`
}

// IsRegistered reports whether sales attributed to the customer earn the loyalty discount
func (c *Customer) IsRegistered() bool {
	return c != nil && c.ID != 0 && c.Status == StatusActive
}

package model

import (
	"golang.org/x/crypto/bcrypt"
)

// User is an operator of the back office or the POS
type User struct {
	BaseModel
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Password     string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Nama         string `gorm:"type:varchar(255)" json:"nama"`
	RoleID       *uint  `gorm:"index" json:"role_id"`
	Role         *Role  `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Alamat       string `gorm:"type:text" json:"alamat"`
	HP           string `gorm:"type:varchar(20)" json:"hp"`
	Status       Status `gorm:"type:varchar(10);not null;default:'ACTIVE'" json:"status"`
	TokenVersion string `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

func (u *User) RoleCode() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Code
}

// GetPrivilegeCodes returns the privilege codes granted by the user's role
func (u *User) GetPrivilegeCodes() []string {
	if u.Role == nil {
		return []string{}
	}
	codes := make([]string, len(u.Role.Privileges))
	for i, p := range u.Role.Privileges {
		codes[i] = p.Code
	}
	return codes
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID         uint     `json:"id"`
	Username   string   `json:"username"`
	Nama       string   `json:"nama"`
	RoleID     *uint    `json:"role_id,omitempty"`
	Role       string   `json:"role"`
	Alamat     string   `json:"alamat"`
	HP         string   `json:"hp"`
	Status     Status   `json:"status"`
	Privileges []string `json:"privileges"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Nama:       u.Nama,
		RoleID:     u.RoleID,
		Role:       u.RoleCode(),
		Alamat:     u.Alamat,
		HP:         u.HP,
		Status:     u.Status,
		Privileges: u.GetPrivilegeCodes(),
	}
}

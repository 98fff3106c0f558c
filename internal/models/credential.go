package models

import "time"

// Credential guarda o login de funcionários e clientes.
// Secret é gravado conforme SECRET_MODE (texto puro por padrão).
type Credential struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Login   string `gorm:"size:100;uniqueIndex;not null" json:"login"`
	Secret  string `gorm:"size:255;not null" json:"-"`
	IsStaff bool   `gorm:"not null;default:false" json:"is_staff"`

	Active        bool       `gorm:"not null;default:true" json:"active"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Credential) IsActive() bool { return c.Active }

func (c *Credential) MarkInactive(now time.Time) {
	c.Active = false
	c.DeactivatedAt = &now
}

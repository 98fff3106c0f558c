package models

import "time"

type Clinic struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	TaxID   string `gorm:"size:14;not null" json:"cnpj"`
	Address string `gorm:"size:255" json:"address"`

	Active        bool       `gorm:"not null;default:true" json:"active"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Clinic) IsActive() bool { return c.Active }

func (c *Clinic) MarkInactive(now time.Time) {
	c.Active = false
	c.DeactivatedAt = &now
}

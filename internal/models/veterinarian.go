package models

import "time"

type Veterinarian struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:30;not null" json:"name"`
	LicenseNumber string `gorm:"size:11;not null;index" json:"crmv"`

	Active        bool       `gorm:"not null;default:true" json:"active"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *Veterinarian) IsActive() bool { return v.Active }

func (v *Veterinarian) MarkInactive(now time.Time) {
	v.Active = false
	v.DeactivatedAt = &now
}

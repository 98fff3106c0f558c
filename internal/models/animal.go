package models

import "time"

type Animal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Breed     string    `gorm:"size:100" json:"breed"`
	Weight    string    `gorm:"size:20" json:"weight"`
	BirthDate time.Time `json:"birth_date"`

	TutorID uint   `gorm:"not null;index" json:"tutor_id"`
	Tutor   *Tutor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"tutor,omitempty"`

	Active        bool       `gorm:"not null;default:true" json:"active"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Animal) IsActive() bool { return a.Active }

func (a *Animal) MarkInactive(now time.Time) {
	a.Active = false
	a.DeactivatedAt = &now
}

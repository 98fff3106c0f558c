package models

import "time"

// Tutor é o responsável pelos animais atendidos.
type Tutor struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"size:100;not null" json:"name"`
	NationalID string `gorm:"size:11;not null;index" json:"cpf"`

	Animals []Animal `gorm:"foreignKey:TutorID" json:"animals,omitempty"`

	Active        bool       `gorm:"not null;default:true" json:"active"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tutor) IsActive() bool { return t.Active }

func (t *Tutor) MarkInactive(now time.Time) {
	t.Active = false
	t.DeactivatedAt = &now
}

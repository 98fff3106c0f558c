package models

import "time"

// Visit é um atendimento: liga clínica, veterinário, tutor e animal.
type Visit struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClinicID uint    `gorm:"not null;index" json:"clinic_id"`
	Clinic   *Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"clinic,omitempty"`

	VeterinarianID uint          `gorm:"not null;index" json:"veterinarian_id"`
	Veterinarian   *Veterinarian `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"veterinarian,omitempty"`

	TutorID uint   `gorm:"not null;index" json:"tutor_id"`
	Tutor   *Tutor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"tutor,omitempty"`

	AnimalID uint    `gorm:"not null;index" json:"animal_id"`
	Animal   *Animal `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"animal,omitempty"`

	OccurredAt  time.Time  `gorm:"not null" json:"occurred_at"`
	DayNotes    string     `gorm:"type:text" json:"day_notes"`
	Diagnosis   string     `gorm:"type:text" json:"diagnosis"`
	Comments    string     `gorm:"type:text" json:"comments"`
	Status      string     `gorm:"size:20;not null;default:'open';index" json:"status"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package registry

import (
	"time"

	"github.com/BruksfildServices01/dogvet-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// Campos nil ficam como estão (PATCH). O PUT preenche todos.

type ClinicInput struct {
	Name    *string
	TaxID   *string
	Address *string
}

type TutorInput struct {
	Name       *string
	NationalID *string
}

type VeterinarianInput struct {
	Name          *string
	LicenseNumber *string
}

type AnimalInput struct {
	Name      *string
	Breed     *string
	Weight    *string
	BirthDate *time.Time
	TutorID   *uint
}

// ======================================================
// MAPPING
// ======================================================

func applyClinic(c *models.Clinic, in ClinicInput) {
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.TaxID != nil {
		c.TaxID = *in.TaxID
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
}

func applyTutor(t *models.Tutor, in TutorInput) {
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.NationalID != nil {
		t.NationalID = *in.NationalID
	}
}

func applyVeterinarian(v *models.Veterinarian, in VeterinarianInput) {
	if in.Name != nil {
		v.Name = *in.Name
	}
	if in.LicenseNumber != nil {
		v.LicenseNumber = *in.LicenseNumber
	}
}

func applyAnimal(a *models.Animal, in AnimalInput) {
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Breed != nil {
		a.Breed = *in.Breed
	}
	if in.Weight != nil {
		a.Weight = *in.Weight
	}
	if in.BirthDate != nil {
		a.BirthDate = *in.BirthDate
	}
	if in.TutorID != nil {
		a.TutorID = *in.TutorID
		a.Tutor = nil
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

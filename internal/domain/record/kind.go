package record

// Kind identifica o tipo de registro.
type Kind string

const (
	KindClinic       Kind = "clinic"
	KindTutor        Kind = "tutor"
	KindVeterinarian Kind = "veterinarian"
	KindAnimal       Kind = "animal"
	KindVisit        Kind = "visit"
	KindCredential   Kind = "credential"
)

// VisitColumn devolve a coluna de atendimentos que aponta para este tipo.
// ok=false para tipos que nenhum atendimento referencia.
func (k Kind) VisitColumn() (string, bool) {
	switch k {
	case KindClinic:
		return "clinic_id", true
	case KindTutor:
		return "tutor_id", true
	case KindVeterinarian:
		return "veterinarian_id", true
	case KindAnimal:
		return "animal_id", true
	default:
		return "", false
	}
}

func (k Kind) Label() string {
	switch k {
	case KindClinic:
		return "clínica"
	case KindTutor:
		return "tutor"
	case KindVeterinarian:
		return "veterinário"
	case KindAnimal:
		return "animal"
	case KindVisit:
		return "atendimento"
	case KindCredential:
		return "usuário"
	default:
		return string(k)
	}
}

func (k Kind) Valid() bool {
	switch k {
	case KindClinic, KindTutor, KindVeterinarian, KindAnimal, KindVisit, KindCredential:
		return true
	}
	return false
}

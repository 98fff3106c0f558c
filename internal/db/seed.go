package db

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dogvet-api/internal/auth"
	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
	"github.com/BruksfildServices01/dogvet-api/internal/timezone"
)

// --------------------------------------------------
// Dados de demonstração (SEED_DEMO_DATA)
// --------------------------------------------------

func demoDate(layout, raw string) time.Time {
	t, _ := time.ParseInLocation(layout, raw, timezone.Current())
	return t
}

// Seed popula uma base vazia com o cenário de demonstração. Se já houver
// alguma credencial, não faz nada.
func Seed(ctx context.Context, repo record.Repository, secrets auth.SecretMatcher) (bool, error) {
	existing, err := repo.ListActiveCredentials(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	err = repo.Transaction(ctx, func(tx record.Repository) error {

		// 1️⃣ credenciais
		for _, c := range []struct {
			login, secret string
			staff         bool
		}{
			{"funcionario@gft.com", "funcionario", true},
			{"cliente@gft.com", "cliente", false},
		} {
			stored, err := secrets.Hash(c.secret)
			if err != nil {
				return err
			}
			if err := tx.CreateCredential(ctx, &models.Credential{
				Login: c.login, Secret: stored, IsStaff: c.staff, Active: true,
			}); err != nil {
				return err
			}
		}

		// 2️⃣ clínica e veterinários
		clinic := &models.Clinic{
			Name: "Dog Vet", TaxID: "93407096000198",
			Address: "Rua da Moeda, Recife-PE", Active: true,
		}
		if err := tx.CreateClinic(ctx, clinic); err != nil {
			return err
		}

		carlos := &models.Veterinarian{Name: "Carlos", LicenseNumber: "99390254086", Active: true}
		diego := &models.Veterinarian{Name: "Diego", LicenseNumber: "48953256011", Active: true}
		for _, v := range []*models.Veterinarian{carlos, diego} {
			if err := tx.CreateVeterinarian(ctx, v); err != nil {
				return err
			}
		}

		// 3️⃣ tutores e animais
		andre := &models.Tutor{Name: "André", NationalID: "47007585035", Active: true}
		clecio := &models.Tutor{Name: "Clécio", NationalID: "07080998077", Active: true}
		for _, t := range []*models.Tutor{andre, clecio} {
			if err := tx.CreateTutor(ctx, t); err != nil {
				return err
			}
		}

		animals := []*models.Animal{
			{Name: "Chico", Breed: "Bulldog", Weight: "4kg", BirthDate: demoDate("2006-01-02", "2022-01-15"), TutorID: andre.ID},
			{Name: "Chivo", Breed: "Pug", Weight: "3kg", BirthDate: demoDate("2006-01-02", "2022-02-04"), TutorID: andre.ID},
			{Name: "Vodka", Breed: "Pit Bull", Weight: "6kg", BirthDate: demoDate("2006-01-02", "2022-01-25"), TutorID: clecio.ID},
			{Name: "Zeus", Breed: "Labrador", Weight: "5kg", BirthDate: demoDate("2006-01-02", "2022-03-05"), TutorID: clecio.ID},
		}
		for _, a := range animals {
			a.Active = true
			if err := tx.CreateAnimal(ctx, a); err != nil {
				return err
			}
		}

		// 4️⃣ atendimentos em aberto
		const at = "2006-01-02 15:04:05"
		visits := []*models.Visit{
			{
				VeterinarianID: carlos.ID, TutorID: andre.ID, AnimalID: animals[0].ID,
				OccurredAt: demoDate(at, "2022-07-22 14:29:43"),
				DayNotes:   "O Peso se manteve",
				Diagnosis:  "Sedentarismo, dificuldades respiratórias",
				Comments:   "Recomendado atividades de caminhada e corridas com o cachorro",
			},
			{
				VeterinarianID: carlos.ID, TutorID: andre.ID, AnimalID: animals[1].ID,
				OccurredAt: demoDate(at, "2022-07-22 15:01:56"),
				DayNotes:   "Peso: Aumento de 3kg para 4Kg",
				Diagnosis:  "O cachorro se apresenta saudável",
				Comments:   "Manter dieta e peso atual do cachorro, ambos estão nas medidas corretas",
			},
			{
				VeterinarianID: diego.ID, TutorID: clecio.ID, AnimalID: animals[2].ID,
				OccurredAt: demoDate(at, "2022-07-22 15:08:08"),
				DayNotes:   "Peso: Aumentou de 6kg para 7kg",
				Diagnosis:  "Infeção por corte na pata posterior direita",
				Comments:   "Peso do cachorro ok, tratamento com remédio anti-inflamatório por 7 dias",
			},
			{
				VeterinarianID: diego.ID, TutorID: clecio.ID, AnimalID: animals[3].ID,
				OccurredAt: demoDate(at, "2022-07-22 15:08:08"),
				DayNotes:   "Peso: baixou de 5kg para 4kg",
				Diagnosis:  "Fastio causado por ansiedade de separação",
				Comments:   "Recomendado realizar mais atividades com seu cachorro e incentivá-lo a comer após elas.",
			},
		}
		for _, v := range visits {
			v.ClinicID = clinic.ID
			v.Status = string(record.InitialVisitStatus())
			if err := tx.CreateVisit(ctx, v); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dogvet-api/internal/audit"
	"github.com/BruksfildServices01/dogvet-api/internal/auth"
	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/handlers"
	"github.com/BruksfildServices01/dogvet-api/internal/infra/lock"
	"github.com/BruksfildServices01/dogvet-api/internal/middleware"
	ucAccount "github.com/BruksfildServices01/dogvet-api/internal/usecase/account"
	ucRegistry "github.com/BruksfildServices01/dogvet-api/internal/usecase/registry"
	ucVisit "github.com/BruksfildServices01/dogvet-api/internal/usecase/visit"
)

const BasePath = "/api/v1"

var (
	staffOnly   = []auth.Role{auth.RoleStaff}
	staffClient = []auth.Role{auth.RoleStaff, auth.RoleClient}
)

// Route declara uma operação e os papéis que podem chamá-la.
// Roles vazio = rota pública.
type Route struct {
	Method  string
	Path    string
	Roles   []auth.Role
	Handler gin.HandlerFunc
}

// Deps são os singletons montados no main.
type Deps struct {
	Repo     record.Repository
	Locks    lock.Locker
	Secrets  auth.SecretMatcher
	Verifier *auth.Verifier
	Issuer   *auth.Issuer
	Audit    *audit.Dispatcher
	Breeds   handlers.BreedLookup
}

type Handlers struct {
	Auth          *handlers.AuthHandler
	Me            *handlers.MeHandler
	Credentials   *handlers.CredentialHandler
	Clinics       *handlers.ClinicHandler
	Tutors        *handlers.TutorHandler
	Veterinarians *handlers.VeterinarianHandler
	Animals       *handlers.AnimalHandler
	Visits        *handlers.VisitHandler
	AuditLogs     *handlers.AuditLogsHandler
}

// NewHandlers monta use cases e handlers a partir dos singletons.
func NewHandlers(d Deps) Handlers {

	// ======================================================
	// 🧠 USE CASES — CADASTROS
	// ======================================================
	deactivateUC := ucRegistry.NewDeactivateRecord(d.Repo, d.Audit)
	registryReader := ucRegistry.NewReader(d.Repo)

	// ======================================================
	// 🧠 USE CASES — CONTAS
	// ======================================================
	registerUC := ucAccount.NewRegister(d.Repo, d.Locks, d.Secrets, d.Audit)
	accountReader := ucAccount.NewReader(d.Repo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	return Handlers{
		Auth: handlers.NewAuthHandler(
			registerUC,
			ucAccount.NewLogin(d.Verifier, d.Issuer, d.Audit),
		),
		Me: handlers.NewMeHandler(accountReader),
		Credentials: handlers.NewCredentialHandler(
			registerUC,
			ucAccount.NewUpdateCredential(d.Repo, d.Locks, d.Secrets, d.Audit),
			ucAccount.NewDeactivateCredential(d.Repo, deactivateUC),
			accountReader,
		),
		Clinics: handlers.NewClinicHandler(
			ucRegistry.NewCreateClinic(d.Repo, d.Audit),
			ucRegistry.NewUpdateClinic(d.Repo, d.Audit),
			deactivateUC,
			registryReader,
		),
		Tutors: handlers.NewTutorHandler(
			ucRegistry.NewCreateTutor(d.Repo, d.Locks, d.Audit),
			ucRegistry.NewUpdateTutor(d.Repo, d.Locks, d.Audit),
			deactivateUC,
			registryReader,
		),
		Veterinarians: handlers.NewVeterinarianHandler(
			ucRegistry.NewCreateVeterinarian(d.Repo, d.Locks, d.Audit),
			ucRegistry.NewUpdateVeterinarian(d.Repo, d.Locks, d.Audit),
			deactivateUC,
			registryReader,
		),
		Animals: handlers.NewAnimalHandler(
			ucRegistry.NewCreateAnimal(d.Repo, d.Audit),
			ucRegistry.NewUpdateAnimal(d.Repo, d.Audit),
			deactivateUC,
			registryReader,
			d.Breeds,
		),
		Visits: handlers.NewVisitHandler(
			ucVisit.NewCreateVisit(d.Repo, d.Audit),
			ucVisit.NewPatchVisit(d.Repo, d.Audit),
			ucVisit.NewFinalizeVisit(d.Repo, d.Audit),
			ucVisit.NewReader(d.Repo),
		),
		AuditLogs: handlers.NewAuditLogsHandler(d.Repo),
	}
}

// Table é a lista completa de operações da API, com o conjunto de
// papéis de cada uma.
func Table(h Handlers) []Route {
	return []Route{

		// ------------------------------
		// 🌍 PÚBLICAS
		// ------------------------------
		{http.MethodGet, "/health", nil, handlers.Health},
		{http.MethodPost, "/auth/register", nil, h.Auth.Register},
		{http.MethodPost, "/auth/login", nil, h.Auth.Login},

		// ------------------------------
		// 👤 CONTAS
		// ------------------------------
		{http.MethodGet, "/me", staffClient, h.Me.GetMe},
		{http.MethodPost, "/credentials", staffOnly, h.Credentials.Create},
		{http.MethodGet, "/credentials", staffClient, h.Credentials.List},
		{http.MethodGet, "/credentials/:id", staffClient, h.Credentials.Get},
		{http.MethodPatch, "/credentials/:id", staffClient, h.Credentials.Patch},
		{http.MethodDelete, "/credentials/:id", staffClient, h.Credentials.Delete},

		// ------------------------------
		// 🏥 CLÍNICAS
		// ------------------------------
		{http.MethodPost, "/clinics", staffOnly, h.Clinics.Create},
		{http.MethodGet, "/clinics", staffOnly, h.Clinics.List},
		{http.MethodGet, "/clinics/:id", staffOnly, h.Clinics.Get},
		{http.MethodPut, "/clinics/:id", staffOnly, h.Clinics.Put},
		{http.MethodPatch, "/clinics/:id", staffOnly, h.Clinics.Patch},
		{http.MethodDelete, "/clinics/:id", staffOnly, h.Clinics.Delete},

		// ------------------------------
		// 🧑 TUTORES
		// ------------------------------
		{http.MethodPost, "/tutors", staffClient, h.Tutors.Create},
		{http.MethodGet, "/tutors", staffClient, h.Tutors.List},
		{http.MethodGet, "/tutors/:id", staffClient, h.Tutors.Get},
		{http.MethodPut, "/tutors/:id", staffClient, h.Tutors.Put},
		{http.MethodPatch, "/tutors/:id", staffClient, h.Tutors.Patch},
		{http.MethodDelete, "/tutors/:id", staffClient, h.Tutors.Delete},

		// ------------------------------
		// 🩺 VETERINÁRIOS
		// ------------------------------
		{http.MethodPost, "/veterinarians", staffOnly, h.Veterinarians.Create},
		{http.MethodGet, "/veterinarians", staffOnly, h.Veterinarians.List},
		{http.MethodGet, "/veterinarians/:id", staffOnly, h.Veterinarians.Get},
		{http.MethodPut, "/veterinarians/:id", staffOnly, h.Veterinarians.Put},
		{http.MethodDelete, "/veterinarians/:id", staffOnly, h.Veterinarians.Delete},

		// ------------------------------
		// 🐶 ANIMAIS
		// ------------------------------
		{http.MethodPost, "/animals", staffClient, h.Animals.Create},
		{http.MethodGet, "/animals", staffClient, h.Animals.List},
		{http.MethodGet, "/animals/:id", staffClient, h.Animals.Get},
		{http.MethodGet, "/animals/tutor/:id", staffClient, h.Animals.ListByTutor},
		{http.MethodPut, "/animals/:id", staffClient, h.Animals.Put},
		{http.MethodDelete, "/animals/:id", staffClient, h.Animals.Delete},
		{http.MethodGet, "/animals/breeds", staffClient, h.Animals.Breeds},
		{http.MethodGet, "/animals/breeds/images", staffClient, h.Animals.BreedImages},
		{http.MethodGet, "/animals/breeds/:name", staffClient, h.Animals.BreedByName},

		// ------------------------------
		// 📋 ATENDIMENTOS
		// ------------------------------
		{http.MethodPost, "/visits", staffOnly, h.Visits.Create},
		{http.MethodGet, "/visits", staffOnly, h.Visits.List},
		{http.MethodGet, "/visits/:id", staffOnly, h.Visits.Get},
		{http.MethodPatch, "/visits/:id", staffOnly, h.Visits.Patch},
		{http.MethodDelete, "/visits/:id", staffOnly, h.Visits.Finalize},
		{http.MethodGet, "/visits/veterinarian/:id", staffOnly, h.Visits.ListBy(record.KindVeterinarian)},
		{http.MethodGet, "/visits/tutor/:id", staffClient, h.Visits.ListBy(record.KindTutor)},
		{http.MethodGet, "/visits/animal/:id", staffClient, h.Visits.ListBy(record.KindAnimal)},

		// ------------------------------
		// 🧾 AUDITORIA
		// ------------------------------
		{http.MethodGet, "/audit-logs", staffOnly, h.AuditLogs.List},
	}
}

// Mount registra a tabela sob BasePath. Rotas com papéis passam pelo
// AuthMiddleware e pelo RequireRoles antes do handler.
func Mount(r *gin.Engine, table []Route, parser middleware.TokenParser) {
	api := r.Group(BasePath)
	authn := middleware.AuthMiddleware(parser)

	for _, rt := range table {
		chain := []gin.HandlerFunc{}
		if len(rt.Roles) > 0 {
			chain = append(chain, authn, middleware.RequireRoles(rt.Roles...))
		}
		chain = append(chain, rt.Handler)

		api.Handle(rt.Method, rt.Path, chain...)
	}
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	Mount(r, Table(NewHandlers(d)), d.Issuer)
}

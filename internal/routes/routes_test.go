package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/dogvet-api/internal/auth"
	"github.com/BruksfildServices01/dogvet-api/internal/db"
	"github.com/BruksfildServices01/dogvet-api/internal/infra/dogapi"
	"github.com/BruksfildServices01/dogvet-api/internal/infra/lock"
	"github.com/BruksfildServices01/dogvet-api/internal/infra/repository/memory"
	"github.com/BruksfildServices01/dogvet-api/internal/validators"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validators.RegisterWithGin(); err != nil {
		panic(err)
	}
}

type fakeBreeds struct{}

func (fakeBreeds) ListBreeds(context.Context) []dogapi.DogInfo {
	return []dogapi.DogInfo{{ID: 1, Name: "Affenpinscher"}}
}

func (fakeBreeds) SearchBreeds(_ context.Context, name string) []dogapi.DogInfo {
	return []dogapi.DogInfo{{ID: 2, Name: name}}
}

func (fakeBreeds) ListImages(context.Context) []dogapi.DogImage {
	return []dogapi.DogImage{}
}

type api struct {
	t      *testing.T
	engine *gin.Engine
	issuer *auth.Issuer
	store  *memory.Store
}

func newAPI(t *testing.T, seed bool) *api {
	t.Helper()

	store := memory.New()
	secrets := auth.PlaintextMatcher{}
	if seed {
		_, err := db.Seed(context.Background(), store, secrets)
		require.NoError(t, err)
	}

	issuer, err := auth.NewIssuer(auth.IssuerConfig{
		Secret:   "test-secret",
		Issuer:   "dogvetapi.com",
		Audience: "usuario_comun",
		TTL:      time.Hour,
	})
	require.NoError(t, err)

	r := gin.New()
	RegisterRoutes(r, Deps{
		Repo:     store,
		Locks:    lock.NewLocalLocker(),
		Secrets:  secrets,
		Verifier: auth.NewVerifier(store, secrets),
		Issuer:   issuer,
		Breeds:   fakeBreeds{},
	})

	return &api{t: t, engine: r, issuer: issuer, store: store}
}

// token emite para a credencial do login; sem cadastro usa um id qualquer.
func (a *api) token(login string, role auth.Role) string {
	id := uint(1000)
	if cred, err := a.store.CredentialByLogin(context.Background(), login); err == nil {
		id = cred.ID
	}

	tok, err := a.issuer.Issue(auth.Identity{CredentialID: id, Login: login, Role: role})
	require.NoError(a.t, err)
	return tok.Value
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, BasePath+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestTable_EveryRouteIsUniqueAndProtected(t *testing.T) {
	public := map[string]bool{
		"GET /health":         true,
		"POST /auth/register": true,
		"POST /auth/login":    true,
	}

	seen := map[string]bool{}
	for _, rt := range Table(NewHandlers(Deps{})) {
		key := rt.Method + " " + rt.Path
		assert.False(t, seen[key], "duplicated route %s", key)
		seen[key] = true

		if public[key] {
			assert.Empty(t, rt.Roles, key)
			continue
		}
		assert.NotEmpty(t, rt.Roles, key)
	}
}

func TestAccess_TokenAndRoleChecks(t *testing.T) {
	a := newAPI(t, true)
	staff := a.token("funcionario@gft.com", auth.RoleStaff)
	client := a.token("cliente@gft.com", auth.RoleClient)

	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/visits", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/visits", "garbage", nil).Code)

	// visita: criação só funcionário, leitura por tutor aceita cliente
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, "/visits", client, map[string]any{}).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/clinics", client, nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/visits/tutor/1", client, nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/visits", staff, nil).Code)
}

func TestAccess_ExpiredTokenRejected(t *testing.T) {
	a := newAPI(t, true)

	issued := time.Now().Add(-2 * time.Hour)
	old, err := a.issuer.WithClock(func() time.Time { return issued }).
		Issue(auth.Identity{CredentialID: 1, Login: "funcionario@gft.com", Role: auth.RoleStaff})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/visits", old.Value, nil).Code)
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	a := newAPI(t, true)

	w := a.do(http.MethodPost, "/auth/register", "", map[string]any{
		"login": "tutora@gft.com", "secret": "s3nha",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "s3nha")

	w = a.do(http.MethodPost, "/auth/login", "", map[string]any{
		"login": "tutora@gft.com", "secret": "s3nha",
	})
	require.Equal(t, http.StatusOK, w.Code)

	res := decode[map[string]any](t, w)
	assert.Equal(t, "Cliente", res["role"])

	claims, err := a.issuer.Parse(res["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "tutora@gft.com", claims.Login)

	staff := a.do(http.MethodPost, "/auth/login", "", map[string]any{
		"login": "funcionario@gft.com", "secret": "funcionario",
	})
	require.Equal(t, http.StatusOK, staff.Code)
	assert.Equal(t, "Funcionario", decode[map[string]any](t, staff)["role"])

	wrong := a.do(http.MethodPost, "/auth/login", "", map[string]any{
		"login": "funcionario@gft.com", "secret": "x",
	})
	unknown := a.do(http.MethodPost, "/auth/login", "", map[string]any{
		"login": "ninguem@gft.com", "secret": "x",
	})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestFlow_VisitLifecycleOverHTTP(t *testing.T) {
	a := newAPI(t, true)
	staff := a.token("funcionario@gft.com", auth.RoleStaff)

	// tutor novo com animal e atendimento
	w := a.do(http.MethodPost, "/tutors", staff, map[string]any{"name": "Maria", "cpf": "52998224725"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tutorID := decode[map[string]any](t, w)["id"].(float64)

	dup := a.do(http.MethodPost, "/tutors", staff, map[string]any{"name": "Outra", "cpf": "52998224725"})
	assert.Equal(t, http.StatusConflict, dup.Code)

	invalid := a.do(http.MethodPost, "/tutors", staff, map[string]any{"name": "X", "cpf": "12345678900"})
	assert.Equal(t, http.StatusBadRequest, invalid.Code)

	w = a.do(http.MethodPost, "/animals", staff, map[string]any{
		"name": "Bidu", "breed": "Beagle", "weight": "9kg",
		"birth_date": "2021-05-10", "tutor_id": tutorID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	animalID := decode[map[string]any](t, w)["id"].(float64)

	w = a.do(http.MethodPost, "/visits", staff, map[string]any{
		"clinic_id": 1, "veterinarian_id": 1, "tutor_id": tutorID, "animal_id": animalID,
		"occurred_at": "2024-03-01 10:00:00",
		"day_notes":   "Peso estável", "diagnosis": "Saudável", "comments": "Retorno em 6 meses",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	visitID := decode[map[string]any](t, w)["id"].(float64)

	missing := a.do(http.MethodPost, "/visits", staff, map[string]any{
		"clinic_id": 1, "veterinarian_id": 1, "tutor_id": tutorID, "animal_id": 999,
		"day_notes": "a", "diagnosis": "b", "comments": "c",
	})
	assert.Equal(t, http.StatusNotFound, missing.Code)

	// atendimento aberto bloqueia a desativação
	path := "/tutors/" + jsonNumber(tutorID)
	assert.Equal(t, http.StatusConflict, a.do(http.MethodDelete, path, staff, nil).Code)

	visitPath := "/visits/" + jsonNumber(visitID)
	assert.Equal(t, http.StatusOK, a.do(http.MethodDelete, visitPath, staff, nil).Code)
	assert.Equal(t, http.StatusConflict, a.do(http.MethodDelete, visitPath, staff, nil).Code)

	assert.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, path, staff, nil).Code)
	assert.Equal(t, http.StatusConflict, a.do(http.MethodDelete, path, staff, nil).Code)

	history := a.do(http.MethodGet, "/visits/animal/"+jsonNumber(animalID), staff, nil)
	require.Equal(t, http.StatusOK, history.Code)
	assert.EqualValues(t, 1, decode[map[string]any](t, history)["total"])
}

func TestFlow_PatchKeepsAbsentFields(t *testing.T) {
	a := newAPI(t, true)
	staff := a.token("funcionario@gft.com", auth.RoleStaff)

	w := a.do(http.MethodPatch, "/clinics/1", staff, map[string]any{"address": "Av. Boa Viagem, Recife-PE"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[map[string]any](t, w)
	assert.Equal(t, "Dog Vet", got["name"])
	assert.Equal(t, "93407096000198", got["cnpj"])
	assert.Equal(t, "Av. Boa Viagem, Recife-PE", got["address"])

	// PUT exige todos os campos
	put := a.do(http.MethodPut, "/clinics/1", staff, map[string]any{"name": "Dog Vet 2"})
	assert.Equal(t, http.StatusBadRequest, put.Code)

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/clinics/0", staff, nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/clinics/77", staff, nil).Code)
}

func TestCredentials_ClientScope(t *testing.T) {
	a := newAPI(t, true)
	client := a.token("cliente@gft.com", auth.RoleClient)

	list := a.do(http.MethodGet, "/credentials", client, nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.EqualValues(t, 1, decode[map[string]any](t, list)["total"])

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/credentials/1", client, nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/credentials/2", client, nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, "/credentials", client, map[string]any{
		"login": "x@gft.com", "secret": "x", "is_staff": true,
	}).Code)

	me := a.do(http.MethodGet, "/me", client, nil)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, "cliente@gft.com", decode[map[string]any](t, me)["login"])
}

func TestCredentials_RenamedLoginDoesNotGrantNewAccount(t *testing.T) {
	a := newAPI(t, true)
	client := a.token("cliente@gft.com", auth.RoleClient)

	w := a.do(http.MethodPatch, "/credentials/2", client, map[string]any{"login": "cliente.novo@gft.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/auth/register", "", map[string]any{
		"login": "cliente@gft.com", "secret": "outra",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	newID := jsonNumber(decode[map[string]any](t, w)["id"].(float64))

	// o token antigo continua preso à credencial 2
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/credentials/"+newID, client, nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPatch, "/credentials/"+newID, client, map[string]any{"secret": "x"}).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodDelete, "/credentials/"+newID, client, nil).Code)

	me := a.do(http.MethodGet, "/me", client, nil)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, "cliente.novo@gft.com", decode[map[string]any](t, me)["login"])
}

func TestBreeds(t *testing.T) {
	a := newAPI(t, false)
	client := a.token("cliente@gft.com", auth.RoleClient)

	w := a.do(http.MethodGet, "/animals/breeds/Pug", client, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pug")

	w = a.do(http.MethodGet, "/animals/breeds/images", client, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode[map[string]any](t, w)["total"])
}

func jsonNumber(f float64) string {
	b, _ := json.Marshal(uint(f))
	return string(b)
}

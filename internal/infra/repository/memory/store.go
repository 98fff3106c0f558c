// Package memory guarda os registros em mapas. Serve para desenvolvimento
// (STORE_DRIVER=memory) e para os testes dos use cases.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
)

type table[T any] struct {
	rows   map[uint]T
	nextID uint
	id     func(*T) *uint
}

func newTable[T any](id func(*T) *uint) *table[T] {
	return &table[T]{rows: make(map[uint]T), id: id}
}

func (t *table[T]) insert(v *T) {
	t.nextID++
	*t.id(v) = t.nextID
	t.rows[t.nextID] = *v
}

func (t *table[T]) get(id uint) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) put(v *T) bool {
	id := *t.id(v)
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = *v
	return true
}

// sorted devolve as linhas que passam no filtro, por id crescente.
func (t *table[T]) sorted(keep func(*T) bool) []T {
	out := make([]T, 0, len(t.rows))
	for _, v := range t.rows {
		if keep == nil || keep(&v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return *t.id(&out[i]) < *t.id(&out[j])
	})
	return out
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{rows: make(map[uint]T, len(t.rows)), nextID: t.nextID, id: t.id}
	for k, v := range t.rows {
		c.rows[k] = v
	}
	return c
}

type tables struct {
	clinics       *table[models.Clinic]
	tutors        *table[models.Tutor]
	veterinarians *table[models.Veterinarian]
	animals       *table[models.Animal]
	visits        *table[models.Visit]
	credentials   *table[models.Credential]
	auditLogs     *table[models.AuditLog]
}

func newTables() *tables {
	return &tables{
		clinics:       newTable(func(v *models.Clinic) *uint { return &v.ID }),
		tutors:        newTable(func(v *models.Tutor) *uint { return &v.ID }),
		veterinarians: newTable(func(v *models.Veterinarian) *uint { return &v.ID }),
		animals:       newTable(func(v *models.Animal) *uint { return &v.ID }),
		visits:        newTable(func(v *models.Visit) *uint { return &v.ID }),
		credentials:   newTable(func(v *models.Credential) *uint { return &v.ID }),
		auditLogs:     newTable(func(v *models.AuditLog) *uint { return &v.ID }),
	}
}

func (d *tables) clone() *tables {
	return &tables{
		clinics:       d.clinics.clone(),
		tutors:        d.tutors.clone(),
		veterinarians: d.veterinarians.clone(),
		animals:       d.animals.clone(),
		visits:        d.visits.clone(),
		credentials:   d.credentials.clone(),
		auditLogs:     d.auditLogs.clone(),
	}
}

// Store implementa record.Repository em memória.
// Uma transação segura o lock de escrita do começo ao fim e desfaz tudo em caso de erro.
type Store struct {
	mu   *sync.RWMutex
	d    **tables
	inTx bool
	now  func() time.Time
}

func New() *Store {
	d := newTables()
	return &Store{
		mu:  &sync.RWMutex{},
		d:   &d,
		now: time.Now,
	}
}

func (s *Store) read() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) write() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) data() *tables {
	return *s.d
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (s *Store) Transaction(
	ctx context.Context,
	fn func(tx record.Repository) error,
) error {
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data().clone()
	tx := &Store{mu: s.mu, d: s.d, inTx: true, now: s.now}

	if err := fn(tx); err != nil {
		*s.d = snapshot
		return err
	}
	return nil
}

// LockRow só confere a existência: dentro da transação o lock já é global.
func (s *Store) LockRow(
	ctx context.Context,
	kind record.Kind,
	id uint,
	mode record.LockMode,
) error {
	defer s.read()()

	var ok bool
	switch kind {
	case record.KindClinic:
		_, ok = s.data().clinics.get(id)
	case record.KindTutor:
		_, ok = s.data().tutors.get(id)
	case record.KindVeterinarian:
		_, ok = s.data().veterinarians.get(id)
	case record.KindAnimal:
		_, ok = s.data().animals.get(id)
	case record.KindVisit:
		_, ok = s.data().visits.get(id)
	case record.KindCredential:
		_, ok = s.data().credentials.get(id)
	}
	if !ok {
		return record.ErrNotFound
	}
	return nil
}

func (s *Store) HasOpenVisit(
	ctx context.Context,
	kind record.Kind,
	id uint,
) (bool, error) {
	defer s.read()()

	for _, v := range s.data().visits.rows {
		if v.Status == string(record.StatusOpen) && visitRefers(&v, kind, id) {
			return true, nil
		}
	}
	return false, nil
}

func visitRefers(v *models.Visit, kind record.Kind, id uint) bool {
	switch kind {
	case record.KindClinic:
		return v.ClinicID == id
	case record.KindTutor:
		return v.TutorID == id
	case record.KindVeterinarian:
		return v.VeterinarianID == id
	case record.KindAnimal:
		return v.AnimalID == id
	default:
		return false
	}
}

func (s *Store) stamp(created, updated *time.Time) {
	now := s.now()
	if created != nil && created.IsZero() {
		*created = now
	}
	*updated = now
}

// --------------------------------------------------
// Clinic
// --------------------------------------------------

func (s *Store) CreateClinic(ctx context.Context, c *models.Clinic) error {
	defer s.write()()

	s.stamp(&c.CreatedAt, &c.UpdatedAt)
	s.data().clinics.insert(c)
	return nil
}

func (s *Store) GetClinic(ctx context.Context, id uint) (*models.Clinic, error) {
	defer s.read()()

	c, ok := s.data().clinics.get(id)
	if !ok {
		return nil, record.ErrNotFound
	}
	return &c, nil
}

func (s *Store) SaveClinic(ctx context.Context, c *models.Clinic) error {
	defer s.write()()

	s.stamp(nil, &c.UpdatedAt)
	if !s.data().clinics.put(c) {
		return record.ErrNotFound
	}
	return nil
}

func (s *Store) ListActiveClinics(ctx context.Context) ([]models.Clinic, error) {
	defer s.read()()

	return s.data().clinics.sorted(func(c *models.Clinic) bool { return c.Active }), nil
}

// --------------------------------------------------
// Tutor
// --------------------------------------------------

func (s *Store) CreateTutor(ctx context.Context, t *models.Tutor) error {
	defer s.write()()

	if t.Active && s.tutorTaken(t.NationalID, 0) {
		return record.ErrDuplicate
	}

	animals := t.Animals
	t.Animals = nil
	s.stamp(&t.CreatedAt, &t.UpdatedAt)
	s.data().tutors.insert(t)
	t.Animals = animals
	return nil
}

func (s *Store) GetTutor(ctx context.Context, id uint) (*models.Tutor, error) {
	defer s.read()()

	t, ok := s.data().tutors.get(id)
	if !ok {
		return nil, record.ErrNotFound
	}
	t.Animals = s.data().animals.sorted(func(a *models.Animal) bool { return a.TutorID == id })
	return &t, nil
}

func (s *Store) SaveTutor(ctx context.Context, t *models.Tutor) error {
	defer s.write()()

	if t.Active && s.tutorTaken(t.NationalID, t.ID) {
		return record.ErrDuplicate
	}

	row := *t
	row.Animals = nil
	s.stamp(nil, &row.UpdatedAt)
	if !s.data().tutors.put(&row) {
		return record.ErrNotFound
	}
	t.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *Store) tutorTaken(nationalID string, exceptID uint) bool {
	for id, t := range s.data().tutors.rows {
		if id != exceptID && t.Active && t.NationalID == nationalID {
			return true
		}
	}
	return false
}

func (s *Store) ListActiveTutors(ctx context.Context) ([]models.Tutor, error) {
	defer s.read()()

	return s.data().tutors.sorted(func(t *models.Tutor) bool { return t.Active }), nil
}

func (s *Store) ActiveTutorByNationalID(
	ctx context.Context,
	nationalID string,
) (*models.Tutor, error) {
	defer s.read()()

	found := s.data().tutors.sorted(func(t *models.Tutor) bool {
		return t.Active && t.NationalID == nationalID
	})
	if len(found) == 0 {
		return nil, record.ErrNotFound
	}
	return &found[0], nil
}

// --------------------------------------------------
// Veterinarian
// --------------------------------------------------

func (s *Store) CreateVeterinarian(ctx context.Context, v *models.Veterinarian) error {
	defer s.write()()

	if v.Active && s.licenseTaken(v.LicenseNumber, 0) {
		return record.ErrDuplicate
	}

	s.stamp(&v.CreatedAt, &v.UpdatedAt)
	s.data().veterinarians.insert(v)
	return nil
}

func (s *Store) GetVeterinarian(ctx context.Context, id uint) (*models.Veterinarian, error) {
	defer s.read()()

	v, ok := s.data().veterinarians.get(id)
	if !ok {
		return nil, record.ErrNotFound
	}
	return &v, nil
}

func (s *Store) SaveVeterinarian(ctx context.Context, v *models.Veterinarian) error {
	defer s.write()()

	if v.Active && s.licenseTaken(v.LicenseNumber, v.ID) {
		return record.ErrDuplicate
	}

	s.stamp(nil, &v.UpdatedAt)
	if !s.data().veterinarians.put(v) {
		return record.ErrNotFound
	}
	return nil
}

func (s *Store) licenseTaken(license string, exceptID uint) bool {
	for id, v := range s.data().veterinarians.rows {
		if id != exceptID && v.Active && v.LicenseNumber == license {
			return true
		}
	}
	return false
}

func (s *Store) ListActiveVeterinarians(ctx context.Context) ([]models.Veterinarian, error) {
	defer s.read()()

	return s.data().veterinarians.sorted(func(v *models.Veterinarian) bool { return v.Active }), nil
}

func (s *Store) ActiveVeterinarianByLicense(
	ctx context.Context,
	license string,
) (*models.Veterinarian, error) {
	defer s.read()()

	found := s.data().veterinarians.sorted(func(v *models.Veterinarian) bool {
		return v.Active && v.LicenseNumber == license
	})
	if len(found) == 0 {
		return nil, record.ErrNotFound
	}
	return &found[0], nil
}

// --------------------------------------------------
// Animal
// --------------------------------------------------

func (s *Store) CreateAnimal(ctx context.Context, a *models.Animal) error {
	defer s.write()()

	tutor := a.Tutor
	a.Tutor = nil
	s.stamp(&a.CreatedAt, &a.UpdatedAt)
	s.data().animals.insert(a)
	a.Tutor = tutor
	return nil
}

func (s *Store) GetAnimal(ctx context.Context, id uint) (*models.Animal, error) {
	defer s.read()()

	a, ok := s.data().animals.get(id)
	if !ok {
		return nil, record.ErrNotFound
	}
	if t, ok := s.data().tutors.get(a.TutorID); ok {
		a.Tutor = &t
	}
	return &a, nil
}

func (s *Store) SaveAnimal(ctx context.Context, a *models.Animal) error {
	defer s.write()()

	row := *a
	row.Tutor = nil
	s.stamp(nil, &row.UpdatedAt)
	if !s.data().animals.put(&row) {
		return record.ErrNotFound
	}
	a.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *Store) ListActiveAnimals(ctx context.Context) ([]models.Animal, error) {
	defer s.read()()

	return s.data().animals.sorted(func(a *models.Animal) bool { return a.Active }), nil
}

func (s *Store) ListAnimalsByTutor(ctx context.Context, tutorID uint) ([]models.Animal, error) {
	defer s.read()()

	out := s.data().animals.sorted(func(a *models.Animal) bool { return a.TutorID == tutorID })
	if t, ok := s.data().tutors.get(tutorID); ok {
		for i := range out {
			tutor := t
			out[i].Tutor = &tutor
		}
	}
	return out, nil
}

// --------------------------------------------------
// Visit
// --------------------------------------------------

func (s *Store) CreateVisit(ctx context.Context, v *models.Visit) error {
	defer s.write()()

	row := *v
	clearVisitRefs(&row)
	s.stamp(&row.CreatedAt, &row.UpdatedAt)
	s.data().visits.insert(&row)
	v.ID, v.CreatedAt, v.UpdatedAt = row.ID, row.CreatedAt, row.UpdatedAt
	return nil
}

func (s *Store) GetVisit(ctx context.Context, id uint) (*models.Visit, error) {
	defer s.read()()

	v, ok := s.data().visits.get(id)
	if !ok {
		return nil, record.ErrNotFound
	}
	s.fillVisit(&v)
	return &v, nil
}

func (s *Store) SaveVisit(ctx context.Context, v *models.Visit) error {
	defer s.write()()

	row := *v
	clearVisitRefs(&row)
	s.stamp(nil, &row.UpdatedAt)
	if !s.data().visits.put(&row) {
		return record.ErrNotFound
	}
	v.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *Store) ListVisits(ctx context.Context, filter record.VisitFilter) ([]models.Visit, error) {
	defer s.read()()

	out := s.data().visits.sorted(func(v *models.Visit) bool {
		if !filter.IncludeClosed && v.Status != string(record.StatusOpen) {
			return false
		}
		if filter.Kind != "" && !visitRefers(v, filter.Kind, filter.ID) {
			return false
		}
		return true
	})
	for i := range out {
		s.fillVisit(&out[i])
	}
	return out, nil
}

func clearVisitRefs(v *models.Visit) {
	v.Clinic, v.Veterinarian, v.Tutor, v.Animal = nil, nil, nil, nil
}

func (s *Store) fillVisit(v *models.Visit) {
	if c, ok := s.data().clinics.get(v.ClinicID); ok {
		v.Clinic = &c
	}
	if vet, ok := s.data().veterinarians.get(v.VeterinarianID); ok {
		v.Veterinarian = &vet
	}
	if t, ok := s.data().tutors.get(v.TutorID); ok {
		v.Tutor = &t
	}
	if a, ok := s.data().animals.get(v.AnimalID); ok {
		v.Animal = &a
	}
}

// --------------------------------------------------
// Credential
// --------------------------------------------------

func (s *Store) CreateCredential(ctx context.Context, c *models.Credential) error {
	defer s.write()()

	if s.loginTaken(c.Login, 0) {
		return record.ErrDuplicate
	}

	s.stamp(&c.CreatedAt, &c.UpdatedAt)
	s.data().credentials.insert(c)
	return nil
}

func (s *Store) GetCredential(ctx context.Context, id uint) (*models.Credential, error) {
	defer s.read()()

	c, ok := s.data().credentials.get(id)
	if !ok {
		return nil, record.ErrNotFound
	}
	return &c, nil
}

func (s *Store) SaveCredential(ctx context.Context, c *models.Credential) error {
	defer s.write()()

	if s.loginTaken(c.Login, c.ID) {
		return record.ErrDuplicate
	}

	s.stamp(nil, &c.UpdatedAt)
	if !s.data().credentials.put(c) {
		return record.ErrNotFound
	}
	return nil
}

func (s *Store) loginTaken(login string, exceptID uint) bool {
	for id, c := range s.data().credentials.rows {
		if id != exceptID && c.Login == login {
			return true
		}
	}
	return false
}

func (s *Store) ListActiveCredentials(ctx context.Context) ([]models.Credential, error) {
	defer s.read()()

	return s.data().credentials.sorted(func(c *models.Credential) bool { return c.Active }), nil
}

func (s *Store) CredentialByLogin(ctx context.Context, login string) (*models.Credential, error) {
	defer s.read()()

	found := s.data().credentials.sorted(func(c *models.Credential) bool { return c.Login == login })
	if len(found) == 0 {
		return nil, record.ErrNotFound
	}
	return &found[0], nil
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (s *Store) CreateAuditLog(ctx context.Context, l *models.AuditLog) error {
	defer s.write()()

	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.now()
	}
	s.data().auditLogs.insert(l)
	return nil
}

func (s *Store) ListAuditLogs(
	ctx context.Context,
	filter record.AuditFilter,
) ([]models.AuditLog, int64, error) {
	defer s.read()()

	all := s.data().auditLogs.sorted(func(l *models.AuditLog) bool {
		if filter.Action != "" && l.Action != filter.Action {
			return false
		}
		if filter.Entity != "" && l.Entity != filter.Entity {
			return false
		}
		return true
	})

	// mais recentes primeiro, como no postgres
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}

	total := int64(len(all))
	if filter.Offset >= len(all) {
		return []models.AuditLog{}, total, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, total, nil
}

// Compile-time check
var _ record.Repository = (*Store)(nil)

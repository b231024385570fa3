package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vietanh2810/eloquence-api/internal/domain"
	"github.com/vietanh2810/eloquence-api/internal/repository"
)

// memStore is an in-memory stand-in for the repositories. WithinAdmission
// holds admission for the whole callback, like the settings row lock, and
// only commits writes when the callback succeeds.
type memStore struct {
	admission sync.Mutex

	mu         sync.Mutex
	settings   domain.EventSettings
	foods      map[uint]domain.FoodOption
	spectators []domain.SpectatorRegistration
	candidates []domain.CandidateRegistration
	nextID     uint
	txHook     func()
	deleteErr  error
}

func newMemStore(settings domain.EventSettings, foods ...domain.FoodOption) *memStore {
	s := &memStore{
		settings: settings,
		foods:    make(map[uint]domain.FoodOption),
	}
	for _, f := range foods {
		s.foods[f.ID] = f
	}

	return s
}

func openSettings(spectators, candidates int) domain.EventSettings {
	settings := domain.DefaultEventSettings()
	settings.ID = 1
	settings.SpectatorCapacity = spectators
	settings.CandidateCapacity = candidates

	return settings
}

func (s *memStore) setSettings(settings domain.EventSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

func (s *memStore) CreateIfMissing(_ context.Context, settings domain.EventSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings.Key == "" {
		settings.ID = 1
		s.settings = settings
	}

	return nil
}

func (s *memStore) FindByKey(_ context.Context, key string) (domain.EventSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings.Key != key {
		return domain.EventSettings{}, repository.ErrSettingsNotFound
	}

	return s.settings, nil
}

func (s *memStore) Update(_ context.Context, settings domain.EventSettings) (domain.EventSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings

	return settings, nil
}

func (s *memStore) CountActive(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, f := range s.foods {
		if f.IsActive {
			n++
		}
	}

	return n, nil
}

func (s *memStore) CandidateEmailExists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hasCandidate(email), nil
}

func (s *memStore) hasCandidate(email string) bool {
	for _, c := range s.candidates {
		if c.Email == email {
			return true
		}
	}

	return false
}

func (s *memStore) WithinAdmission(_ context.Context, fn func(tx repository.AdmissionTx) error) error {
	s.admission.Lock()
	defer s.admission.Unlock()

	tx := &memTx{store: s}
	if err := fn(tx); err != nil {
		return err
	}

	for _, r := range tx.removedSpectators {
		_ = s.DeleteSpectator(context.Background(), r.ID)
	}
	for _, r := range tx.removedCandidates {
		_ = s.DeleteCandidate(context.Background(), r.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.spectators = append(s.spectators, tx.spectators...)
	s.candidates = append(s.candidates, tx.candidates...)

	return nil
}

func (s *memStore) seatsUsed() int {
	used := 0
	for _, r := range s.spectators {
		used += r.SeatsRequested()
	}

	return used
}

func (s *memStore) SeatsUsed(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.seatsUsed(), nil
}

func (s *memStore) CountCandidates(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.candidates), nil
}

func (s *memStore) ListSpectators(_ context.Context) ([]domain.SpectatorRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.SpectatorRegistration(nil), s.spectators...), nil
}

func (s *memStore) ListCandidates(_ context.Context) ([]domain.CandidateRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.CandidateRegistration(nil), s.candidates...), nil
}

func (s *memStore) FindSpectatorByID(_ context.Context, id uint) (domain.SpectatorRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.spectators {
		if r.ID == id {
			return r, nil
		}
	}

	return domain.SpectatorRegistration{}, repository.ErrRegistrationNotFound
}

func (s *memStore) FindCandidateByID(_ context.Context, id uint) (domain.CandidateRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.candidates {
		if r.ID == id {
			return r, nil
		}
	}

	return domain.CandidateRegistration{}, repository.ErrRegistrationNotFound
}

func (s *memStore) DeleteSpectator(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.spectators {
		if r.ID == id {
			s.spectators = append(s.spectators[:i], s.spectators[i+1:]...)
			return nil
		}
	}

	return repository.ErrRegistrationNotFound
}

func (s *memStore) DeleteCandidate(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.candidates {
		if r.ID == id {
			s.candidates = append(s.candidates[:i], s.candidates[i+1:]...)
			return nil
		}
	}

	return repository.ErrRegistrationNotFound
}

func (s *memStore) FoodOrderTotals(_ context.Context) (map[uint]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := make(map[uint]int)
	for _, r := range s.spectators {
		for _, id := range r.Food.OptionIDs() {
			totals[id] += r.Food.Units(id)
		}
	}

	return totals, nil
}

func (s *memStore) CandidatesByFaculty(_ context.Context) ([]domain.GroupCount, error) {
	return s.groupCandidates(func(c domain.CandidateRegistration) string { return c.Faculty }), nil
}

func (s *memStore) CandidatesByStudyYear(_ context.Context) ([]domain.GroupCount, error) {
	return s.groupCandidates(func(c domain.CandidateRegistration) string { return c.StudyYear }), nil
}

func (s *memStore) groupCandidates(key func(domain.CandidateRegistration) string) []domain.GroupCount {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for _, c := range s.candidates {
		counts[key(c)]++
	}

	groups := make([]domain.GroupCount, 0, len(counts))
	for k, n := range counts {
		groups = append(groups, domain.GroupCount{Key: k, Count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})

	return groups
}

type memTx struct {
	store      *memStore
	spectators []domain.SpectatorRegistration
	candidates []domain.CandidateRegistration

	removedSpectators []domain.SpectatorRegistration
	removedCandidates []domain.CandidateRegistration
}

func (t *memTx) LockSettings(ctx context.Context) (domain.EventSettings, error) {
	if t.store.txHook != nil {
		t.store.txHook()
	}

	return t.store.FindByKey(ctx, domain.DefaultSettingsKey)
}

func (t *memTx) SeatsUsed(ctx context.Context) (int, error) {
	used, err := t.store.SeatsUsed(ctx)
	for _, r := range t.spectators {
		used += r.SeatsRequested()
	}
	for _, r := range t.removedSpectators {
		used -= r.SeatsRequested()
	}

	return used, err
}

func (t *memTx) CountCandidates(ctx context.Context) (int, error) {
	n, err := t.store.CountCandidates(ctx)

	return n + len(t.candidates) - len(t.removedCandidates), err
}

func (t *memTx) FindSpectator(ctx context.Context, id uint) (domain.SpectatorRegistration, error) {
	return t.store.FindSpectatorByID(ctx, id)
}

func (t *memTx) FindCandidate(ctx context.Context, id uint) (domain.CandidateRegistration, error) {
	return t.store.FindCandidateByID(ctx, id)
}

func (t *memTx) DeleteSpectator(ctx context.Context, id uint) error {
	if t.store.deleteErr != nil {
		return t.store.deleteErr
	}

	r, err := t.store.FindSpectatorByID(ctx, id)
	if err != nil {
		return err
	}
	t.removedSpectators = append(t.removedSpectators, r)

	return nil
}

func (t *memTx) DeleteCandidate(ctx context.Context, id uint) error {
	if t.store.deleteErr != nil {
		return t.store.deleteErr
	}

	r, err := t.store.FindCandidateByID(ctx, id)
	if err != nil {
		return err
	}
	t.removedCandidates = append(t.removedCandidates, r)

	return nil
}

func (t *memTx) FoodOptionsByIDs(_ context.Context, ids []uint, activeOnly bool) ([]domain.FoodOption, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	var options []domain.FoodOption
	for _, id := range ids {
		f, ok := t.store.foods[id]
		if !ok || (activeOnly && !f.IsActive) {
			continue
		}
		options = append(options, f)
	}

	return options, nil
}

func (t *memTx) CreateSpectator(_ context.Context, registration domain.SpectatorRegistration) (domain.SpectatorRegistration, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	t.store.nextID++
	registration.ID = t.store.nextID
	registration.CreatedAt = time.Now()
	t.spectators = append(t.spectators, registration)

	return registration, nil
}

func (t *memTx) CreateCandidate(_ context.Context, registration domain.CandidateRegistration) (domain.CandidateRegistration, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if t.store.hasCandidate(registration.Email) {
		return domain.CandidateRegistration{}, repository.ErrCandidateEmailExists
	}

	t.store.nextID++
	registration.ID = t.store.nextID
	registration.CreatedAt = time.Now()
	t.candidates = append(t.candidates, registration)

	return registration, nil
}

// memDocs keeps documents in a map and can be told to fail on a directory.
type memDocs struct {
	mu        sync.Mutex
	files     map[string][]byte
	n         int
	failDir   string
	deleteErr error
}

func newMemDocs() *memDocs {
	return &memDocs{files: make(map[string][]byte)}
}

func (d *memDocs) Put(_ context.Context, dir, ext string, r io.Reader) (string, error) {
	if dir == d.failDir {
		return "", errors.New("disk full")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.n++
	path := fmt.Sprintf("%s/%d%s", dir, d.n, ext)
	d.files[path] = data

	return path, nil
}

func (d *memDocs) Open(_ context.Context, path string) (io.ReadCloser, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	data, ok := d.files[path]
	if !ok {
		return nil, ErrDocumentNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

func (d *memDocs) Delete(_ context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.deleteErr != nil {
		return d.deleteErr
	}
	delete(d.files, path)

	return nil
}

func (d *memDocs) count(prefix string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for path := range d.files {
		if strings.HasPrefix(path, prefix) {
			n++
		}
	}

	return n
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.RegistrationEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.RegistrationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return p.err
}

func (p *recordingPublisher) Events() []domain.RegistrationEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]domain.RegistrationEvent(nil), p.events...)
}

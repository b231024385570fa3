package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/vietanh2810/eloquence-api/internal/domain"
	"github.com/vietanh2810/eloquence-api/internal/repository"
)

type RegistrationRepository interface {
	ListSpectators(ctx context.Context) ([]domain.SpectatorRegistration, error)
	ListCandidates(ctx context.Context) ([]domain.CandidateRegistration, error)
	FindCandidateByID(ctx context.Context, id uint) (domain.CandidateRegistration, error)
	WithinAdmission(ctx context.Context, fn func(tx repository.AdmissionTx) error) error
}

type DocumentStore interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

// SpectatorList is the admin view of the spectator ledger.
type SpectatorList struct {
	Registrations []domain.SpectatorRegistration `json:"registrations"`
	SeatsUsed     int                            `json:"seats_used"`
}

// RegistrationService is the admin side of the ledger. Deletions take the
// same settings row lock as admissions so that the availability they report
// is ordered with admissions.
type RegistrationService struct {
	repo       RegistrationRepository
	docs       DocumentStore
	publishers []EventPublisher
	now        func() time.Time
}

func NewRegistrationService(repo RegistrationRepository, docs DocumentStore, publishers ...EventPublisher) *RegistrationService {
	return &RegistrationService{
		repo:       repo,
		docs:       docs,
		publishers: publishers,
		now:        time.Now,
	}
}

func (s *RegistrationService) ListSpectators(ctx context.Context) (SpectatorList, error) {
	registrations, err := s.repo.ListSpectators(ctx)
	if err != nil {
		return SpectatorList{}, fmt.Errorf("s.repo.ListSpectators -> %w", err)
	}

	list := SpectatorList{Registrations: registrations}
	for _, r := range registrations {
		list.SeatsUsed += r.SeatsRequested()
	}

	return list, nil
}

func (s *RegistrationService) ListCandidates(ctx context.Context) ([]domain.CandidateRegistration, error) {
	registrations, err := s.repo.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListCandidates -> %w", err)
	}

	return registrations, nil
}

// DeleteSpectator frees the seats held by the registration.
func (s *RegistrationService) DeleteSpectator(ctx context.Context, id uint) error {
	var event domain.RegistrationEvent
	err := s.repo.WithinAdmission(ctx, func(tx repository.AdmissionTx) error {
		settings, err := tx.LockSettings(ctx)
		if err != nil {
			return fmt.Errorf("tx.LockSettings -> %w", err)
		}

		registration, err := tx.FindSpectator(ctx, id)
		if err != nil {
			return fmt.Errorf("tx.FindSpectator -> %w", err)
		}
		if err := tx.DeleteSpectator(ctx, id); err != nil {
			return fmt.Errorf("tx.DeleteSpectator -> %w", err)
		}

		used, err := tx.SeatsUsed(ctx)
		if err != nil {
			return fmt.Errorf("tx.SeatsUsed -> %w", err)
		}

		event = s.deletedEvent(settings, domain.PoolSpectators, used, registration.ID, registration.FullName, registration.Email, registration.SeatsRequested())

		return nil
	})
	if err != nil {
		return fmt.Errorf("s.repo.WithinAdmission -> %w", err)
	}

	s.announceDeleted(ctx, event)

	return nil
}

// DeleteCandidate removes the row, then the stored documents. A document that
// cannot be removed is logged and left behind; the row is never left pointing
// at a missing document.
func (s *RegistrationService) DeleteCandidate(ctx context.Context, id uint) error {
	var (
		event domain.RegistrationEvent
		paths []string
	)
	err := s.repo.WithinAdmission(ctx, func(tx repository.AdmissionTx) error {
		settings, err := tx.LockSettings(ctx)
		if err != nil {
			return fmt.Errorf("tx.LockSettings -> %w", err)
		}

		registration, err := tx.FindCandidate(ctx, id)
		if err != nil {
			return fmt.Errorf("tx.FindCandidate -> %w", err)
		}
		if err := tx.DeleteCandidate(ctx, id); err != nil {
			return fmt.Errorf("tx.DeleteCandidate -> %w", err)
		}

		used, err := tx.CountCandidates(ctx)
		if err != nil {
			return fmt.Errorf("tx.CountCandidates -> %w", err)
		}

		paths = []string{registration.TextPath, registration.ProofPath}
		event = s.deletedEvent(settings, domain.PoolCandidates, used, registration.ID, registration.FullName, registration.Email, 1)

		return nil
	})
	if err != nil {
		return fmt.Errorf("s.repo.WithinAdmission -> %w", err)
	}

	removeDocuments(ctx, s.docs, paths, "failed to remove document of deleted candidate")
	s.announceDeleted(ctx, event)

	return nil
}

// OpenCandidateDocument returns the stored document of the given kind. The
// caller closes the reader.
func (s *RegistrationService) OpenCandidateDocument(ctx context.Context, id uint, kind domain.DocumentKind) (io.ReadCloser, string, error) {
	registration, err := s.repo.FindCandidateByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("s.repo.FindCandidateByID -> %w", err)
	}

	path := registration.DocumentPath(kind)
	if path == "" {
		return nil, "", ErrDocumentNotFound
	}

	rc, err := s.docs.Open(ctx, path)
	if err != nil {
		return nil, "", fmt.Errorf("s.docs.Open -> %w", err)
	}

	return rc, path, nil
}

// deletedEvent must be called with the settings row locked.
func (s *RegistrationService) deletedEvent(settings domain.EventSettings, pool domain.Pool, used int, id uint, fullName, email string, units int) domain.RegistrationEvent {
	now := s.now()

	return domain.RegistrationEvent{
		Seq:            nextEventSeq(),
		Type:           domain.RegistrationDeleted,
		Pool:           pool,
		RegistrationID: id,
		FullName:       fullName,
		Email:          email,
		Units:          units,
		Availability:   domain.NewAvailability(settings, pool, used, now),
		OccurredAt:     now,
	}
}

func (s *RegistrationService) announceDeleted(ctx context.Context, event domain.RegistrationEvent) {
	zap.L().Info("registration deleted",
		zap.String("pool", string(event.Pool)),
		zap.Uint("registration_id", event.RegistrationID),
		zap.Int("units", event.Units),
	)

	publish(ctx, s.publishers, event)
}

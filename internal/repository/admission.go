package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/eloquence-api/internal/domain"
	"github.com/vietanh2810/eloquence-api/internal/repository/dao"
)

// AdmissionTx is the view of the database available inside the admission
// critical section. Every call runs in the same transaction, after the
// settings row has been locked.
type AdmissionTx interface {
	LockSettings(ctx context.Context) (domain.EventSettings, error)
	SeatsUsed(ctx context.Context) (int, error)
	CountCandidates(ctx context.Context) (int, error)
	FoodOptionsByIDs(ctx context.Context, ids []uint, activeOnly bool) ([]domain.FoodOption, error)
	CreateSpectator(ctx context.Context, registration domain.SpectatorRegistration) (domain.SpectatorRegistration, error)
	CreateCandidate(ctx context.Context, registration domain.CandidateRegistration) (domain.CandidateRegistration, error)
	FindSpectator(ctx context.Context, id uint) (domain.SpectatorRegistration, error)
	FindCandidate(ctx context.Context, id uint) (domain.CandidateRegistration, error)
	DeleteSpectator(ctx context.Context, id uint) error
	DeleteCandidate(ctx context.Context, id uint) error
}

// WithinAdmission runs fn in a transaction. fn is expected to call
// LockSettings first so that concurrent admissions queue on the settings row.
func (r *RegistrationRepository) WithinAdmission(ctx context.Context, fn func(tx AdmissionTx) error) error {
	err := r.txDAO.Transaction(ctx, func(tx dao.AdmissionTx) error {
		return fn(&admissionTx{tx: tx})
	})
	if err != nil {
		return fmt.Errorf("r.txDAO.Transaction -> %w", err)
	}

	return nil
}

type admissionTx struct {
	tx dao.AdmissionTx
}

func (a *admissionTx) LockSettings(ctx context.Context) (domain.EventSettings, error) {
	settings, err := a.tx.Settings.LockByKey(ctx, domain.DefaultSettingsKey)
	if err != nil {
		return domain.EventSettings{}, fmt.Errorf("a.tx.Settings.LockByKey -> %w", err)
	}

	return settingsDAOToDomain(settings), nil
}

func (a *admissionTx) SeatsUsed(ctx context.Context) (int, error) {
	used, err := a.tx.Registrations.SeatsUsed(ctx)
	if err != nil {
		return 0, fmt.Errorf("a.tx.Registrations.SeatsUsed -> %w", err)
	}

	return used, nil
}

func (a *admissionTx) CountCandidates(ctx context.Context) (int, error) {
	count, err := a.tx.Registrations.CountCandidates(ctx)
	if err != nil {
		return 0, fmt.Errorf("a.tx.Registrations.CountCandidates -> %w", err)
	}

	return count, nil
}

func (a *admissionTx) FoodOptionsByIDs(ctx context.Context, ids []uint, activeOnly bool) ([]domain.FoodOption, error) {
	found, err := a.tx.FoodOptions.FindByIDs(ctx, ids, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("a.tx.FoodOptions.FindByIDs -> %w", err)
	}

	return foodDAOsToDomain(found), nil
}

func (a *admissionTx) CreateSpectator(ctx context.Context, registration domain.SpectatorRegistration) (domain.SpectatorRegistration, error) {
	created, err := a.tx.Registrations.InsertSpectator(ctx, spectatorDomainToDAO(registration))
	if err != nil {
		return domain.SpectatorRegistration{}, fmt.Errorf("a.tx.Registrations.InsertSpectator -> %w", err)
	}

	return spectatorDAOToDomain(created), nil
}

func (a *admissionTx) CreateCandidate(ctx context.Context, registration domain.CandidateRegistration) (domain.CandidateRegistration, error) {
	created, err := a.tx.Registrations.InsertCandidate(ctx, candidateDomainToDAO(registration))
	if err != nil {
		return domain.CandidateRegistration{}, fmt.Errorf("a.tx.Registrations.InsertCandidate -> %w", err)
	}

	return candidateDAOToDomain(created), nil
}

func (a *admissionTx) FindSpectator(ctx context.Context, id uint) (domain.SpectatorRegistration, error) {
	found, err := a.tx.Registrations.FindSpectatorByID(ctx, id)
	if err != nil {
		return domain.SpectatorRegistration{}, fmt.Errorf("a.tx.Registrations.FindSpectatorByID -> %w", err)
	}

	return spectatorDAOToDomain(found), nil
}

func (a *admissionTx) FindCandidate(ctx context.Context, id uint) (domain.CandidateRegistration, error) {
	found, err := a.tx.Registrations.FindCandidateByID(ctx, id)
	if err != nil {
		return domain.CandidateRegistration{}, fmt.Errorf("a.tx.Registrations.FindCandidateByID -> %w", err)
	}

	return candidateDAOToDomain(found), nil
}

func (a *admissionTx) DeleteSpectator(ctx context.Context, id uint) error {
	if err := a.tx.Registrations.DeleteSpectator(ctx, id); err != nil {
		return fmt.Errorf("a.tx.Registrations.DeleteSpectator -> %w", err)
	}

	return nil
}

func (a *admissionTx) DeleteCandidate(ctx context.Context, id uint) error {
	if err := a.tx.Registrations.DeleteCandidate(ctx, id); err != nil {
		return fmt.Errorf("a.tx.Registrations.DeleteCandidate -> %w", err)
	}

	return nil
}

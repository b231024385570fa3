package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/eloquence-api/internal/domain"
	"github.com/vietanh2810/eloquence-api/internal/repository/dao"
)

var (
	ErrSettingsNotFound = dao.ErrSettingsNotFound
)

type SettingsDAO interface {
	InsertIfMissing(ctx context.Context, settings dao.EventSettings) error
	FindByKey(ctx context.Context, key string) (dao.EventSettings, error)
	Update(ctx context.Context, settings dao.EventSettings) (dao.EventSettings, error)
}

type SettingsRepository struct {
	dao SettingsDAO
}

func NewSettingsRepository(dao SettingsDAO) *SettingsRepository {
	return &SettingsRepository{
		dao: dao,
	}
}

// CreateIfMissing stores settings unless a row with the same key exists.
func (r *SettingsRepository) CreateIfMissing(ctx context.Context, settings domain.EventSettings) error {
	if err := r.dao.InsertIfMissing(ctx, settingsDomainToDAO(settings)); err != nil {
		return fmt.Errorf("r.dao.InsertIfMissing -> %w", err)
	}

	return nil
}

func (r *SettingsRepository) FindByKey(ctx context.Context, key string) (domain.EventSettings, error) {
	found, err := r.dao.FindByKey(ctx, key)
	if err != nil {
		return domain.EventSettings{}, fmt.Errorf("r.dao.FindByKey -> %w", err)
	}

	return settingsDAOToDomain(found), nil
}

func (r *SettingsRepository) Update(ctx context.Context, settings domain.EventSettings) (domain.EventSettings, error) {
	updated, err := r.dao.Update(ctx, settingsDomainToDAO(settings))
	if err != nil {
		return domain.EventSettings{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return settingsDAOToDomain(updated), nil
}

func settingsDomainToDAO(s domain.EventSettings) dao.EventSettings {
	return dao.EventSettings{
		ID:                            s.ID,
		Key:                           s.Key,
		EventTitle:                    s.EventTitle,
		EventTheme:                    s.EventTheme,
		EventDate:                     s.EventDate,
		EventLocation:                 s.EventLocation,
		InstagramURL:                  s.InstagramURL,
		PrivacyPolicyURL:              s.PrivacyPolicyURL,
		RulesURL:                      s.RulesURL,
		SpectatorCapacity:             s.SpectatorCapacity,
		SpectatorRegistrationsEnabled: s.SpectatorRegistrationsEnabled,
		SpectatorRegistrationsEndAt:   s.SpectatorRegistrationsEndAt,
		SpectatorCustomFormEnabled:    s.SpectatorCustomFormEnabled,
		SpectatorCustomFormURL:        s.SpectatorCustomFormURL,
		CandidateCapacity:             s.CandidateCapacity,
		CandidateRegistrationsEnabled: s.CandidateRegistrationsEnabled,
		CandidateRegistrationsEndAt:   s.CandidateRegistrationsEndAt,
		CandidateCustomFormEnabled:    s.CandidateCustomFormEnabled,
		CandidateCustomFormURL:        s.CandidateCustomFormURL,
		CreatedAt:                     s.CreatedAt,
		UpdatedAt:                     s.UpdatedAt,
	}
}

func settingsDAOToDomain(s dao.EventSettings) domain.EventSettings {
	return domain.EventSettings{
		ID:                            s.ID,
		Key:                           s.Key,
		EventTitle:                    s.EventTitle,
		EventTheme:                    s.EventTheme,
		EventDate:                     s.EventDate,
		EventLocation:                 s.EventLocation,
		InstagramURL:                  s.InstagramURL,
		PrivacyPolicyURL:              s.PrivacyPolicyURL,
		RulesURL:                      s.RulesURL,
		SpectatorCapacity:             s.SpectatorCapacity,
		SpectatorRegistrationsEnabled: s.SpectatorRegistrationsEnabled,
		SpectatorRegistrationsEndAt:   s.SpectatorRegistrationsEndAt,
		SpectatorCustomFormEnabled:    s.SpectatorCustomFormEnabled,
		SpectatorCustomFormURL:        s.SpectatorCustomFormURL,
		CandidateCapacity:             s.CandidateCapacity,
		CandidateRegistrationsEnabled: s.CandidateRegistrationsEnabled,
		CandidateRegistrationsEndAt:   s.CandidateRegistrationsEndAt,
		CandidateCustomFormEnabled:    s.CandidateCustomFormEnabled,
		CandidateCustomFormURL:        s.CandidateCustomFormURL,
		CreatedAt:                     s.CreatedAt,
		UpdatedAt:                     s.UpdatedAt,
	}
}

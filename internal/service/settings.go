package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/eloquence-api/internal/domain"
)

type SettingsRepository interface {
	CreateIfMissing(ctx context.Context, settings domain.EventSettings) error
	FindByKey(ctx context.Context, key string) (domain.EventSettings, error)
	Update(ctx context.Context, settings domain.EventSettings) (domain.EventSettings, error)
}

type SettingsService struct {
	repo SettingsRepository
}

func NewSettingsService(repo SettingsRepository) *SettingsService {
	return &SettingsService{
		repo: repo,
	}
}

// Bootstrap makes sure the default settings row exists and returns it. It is
// safe to call any number of times, concurrently included.
func (s *SettingsService) Bootstrap(ctx context.Context) (domain.EventSettings, error) {
	if err := s.repo.CreateIfMissing(ctx, domain.DefaultEventSettings()); err != nil {
		return domain.EventSettings{}, fmt.Errorf("s.repo.CreateIfMissing -> %w", err)
	}

	settings, err := s.repo.FindByKey(ctx, domain.DefaultSettingsKey)
	if err != nil {
		return domain.EventSettings{}, fmt.Errorf("s.repo.FindByKey -> %w", err)
	}

	return settings, nil
}

func (s *SettingsService) Current(ctx context.Context) (domain.EventSettings, error) {
	settings, err := s.repo.FindByKey(ctx, domain.DefaultSettingsKey)
	if err != nil {
		return domain.EventSettings{}, fmt.Errorf("s.repo.FindByKey -> %w", err)
	}

	return settings, nil
}

// Update replaces the editable settings. Lowering a capacity below the current
// usage is allowed; nobody is evicted.
func (s *SettingsService) Update(ctx context.Context, req request.UpdateSettingsRequest) (domain.EventSettings, error) {
	if err := req.Validate(); err != nil {
		return domain.EventSettings{}, newValidationError(err)
	}

	current, err := s.Current(ctx)
	if err != nil {
		return domain.EventSettings{}, err
	}

	updated, err := s.repo.Update(ctx, req.Apply(current))
	if err != nil {
		return domain.EventSettings{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	zap.L().Info("event settings updated",
		zap.Int("spectator_capacity", updated.SpectatorCapacity),
		zap.Bool("spectator_registrations_enabled", updated.SpectatorRegistrationsEnabled),
		zap.Int("candidate_capacity", updated.CandidateCapacity),
		zap.Bool("candidate_registrations_enabled", updated.CandidateRegistrationsEnabled),
	)

	return updated, nil
}

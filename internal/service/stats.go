package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/eloquence-api/internal/domain"
	"github.com/vietanh2810/eloquence-api/internal/repository"
)

type StatsRepository interface {
	WithinAdmission(ctx context.Context, fn func(tx repository.AdmissionTx) error) error
	SeatsUsed(ctx context.Context) (int, error)
	CountCandidates(ctx context.Context) (int, error)
	CandidatesByFaculty(ctx context.Context) ([]domain.GroupCount, error)
	CandidatesByStudyYear(ctx context.Context) ([]domain.GroupCount, error)
}

type FoodCatalog interface {
	List(ctx context.Context) ([]domain.FoodOption, error)
	ListActive(ctx context.Context) ([]domain.FoodOption, error)
}

// PublicAvailability is what the registration forms need to render.
type PublicAvailability struct {
	Spectators  domain.Availability `json:"spectators"`
	Candidates  domain.Availability `json:"candidates"`
	FoodOptions []domain.FoodOption `json:"food_options"`
}

// FeedSnapshot is the state of both pools once every change numbered up to
// Seq was committed, and no later one.
type FeedSnapshot struct {
	Seq        uint64
	Spectators domain.Availability
	Candidates domain.Availability
}

type StatsService struct {
	settings SettingsReader
	repo     StatsRepository
	food     FoodCatalog
	now      func() time.Time
}

func NewStatsService(settings SettingsReader, repo StatsRepository, food FoodCatalog) *StatsService {
	return &StatsService{
		settings: settings,
		repo:     repo,
		food:     food,
		now:      time.Now,
	}
}

func (s *StatsService) Availability(ctx context.Context) (PublicAvailability, error) {
	spectators, candidates, err := s.pools(ctx)
	if err != nil {
		return PublicAvailability{}, err
	}

	options, err := s.food.ListActive(ctx)
	if err != nil {
		return PublicAvailability{}, fmt.Errorf("s.food.ListActive -> %w", err)
	}

	return PublicAvailability{
		Spectators:  spectators,
		Candidates:  candidates,
		FoodOptions: options,
	}, nil
}

// FeedSnapshot reads both pools under the settings row lock, which makes the
// counts consistent with the event sequence.
func (s *StatsService) FeedSnapshot(ctx context.Context) (FeedSnapshot, error) {
	var snapshot FeedSnapshot
	err := s.repo.WithinAdmission(ctx, func(tx repository.AdmissionTx) error {
		settings, err := tx.LockSettings(ctx)
		if err != nil {
			return fmt.Errorf("tx.LockSettings -> %w", err)
		}

		seats, err := tx.SeatsUsed(ctx)
		if err != nil {
			return fmt.Errorf("tx.SeatsUsed -> %w", err)
		}

		candidates, err := tx.CountCandidates(ctx)
		if err != nil {
			return fmt.Errorf("tx.CountCandidates -> %w", err)
		}

		now := s.now()
		snapshot = FeedSnapshot{
			Seq:        lastEventSeq(),
			Spectators: domain.NewAvailability(settings, domain.PoolSpectators, seats, now),
			Candidates: domain.NewAvailability(settings, domain.PoolCandidates, candidates, now),
		}

		return nil
	})
	if err != nil {
		return FeedSnapshot{}, fmt.Errorf("s.repo.WithinAdmission -> %w", err)
	}

	return snapshot, nil
}

func (s *StatsService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	spectators, candidates, err := s.pools(ctx)
	if err != nil {
		return domain.Dashboard{}, err
	}

	options, err := s.food.ListActive(ctx)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("s.food.ListActive -> %w", err)
	}

	return domain.Dashboard{
		SeatsUsed:           spectators.Used,
		SeatsRemaining:      spectators.Remaining,
		CandidatesUsed:      candidates.Used,
		CandidatesRemaining: candidates.Remaining,
		FoodOptionsActive:   len(options),
	}, nil
}

// Recap adds the candidate breakdowns and the food totals to the dashboard.
func (s *StatsService) Recap(ctx context.Context) (domain.Recap, error) {
	dashboard, err := s.Dashboard(ctx)
	if err != nil {
		return domain.Recap{}, err
	}

	byFaculty, err := s.repo.CandidatesByFaculty(ctx)
	if err != nil {
		return domain.Recap{}, fmt.Errorf("s.repo.CandidatesByFaculty -> %w", err)
	}

	byYear, err := s.repo.CandidatesByStudyYear(ctx)
	if err != nil {
		return domain.Recap{}, fmt.Errorf("s.repo.CandidatesByStudyYear -> %w", err)
	}

	options, err := s.food.List(ctx)
	if err != nil {
		return domain.Recap{}, fmt.Errorf("s.food.List -> %w", err)
	}

	recap := domain.Recap{
		Dashboard:           dashboard,
		CandidatesByFaculty: byFaculty,
		CandidatesByYear:    byYear,
		FoodOptions:         options,
	}
	for _, o := range options {
		recap.TotalFoodOrdered += o.OrderedQuantity
	}

	return recap, nil
}

func (s *StatsService) pools(ctx context.Context) (domain.Availability, domain.Availability, error) {
	settings, err := s.settings.FindByKey(ctx, domain.DefaultSettingsKey)
	if err != nil {
		return domain.Availability{}, domain.Availability{}, fmt.Errorf("s.settings.FindByKey -> %w", err)
	}

	seats, err := s.repo.SeatsUsed(ctx)
	if err != nil {
		return domain.Availability{}, domain.Availability{}, fmt.Errorf("s.repo.SeatsUsed -> %w", err)
	}

	candidates, err := s.repo.CountCandidates(ctx)
	if err != nil {
		return domain.Availability{}, domain.Availability{}, fmt.Errorf("s.repo.CountCandidates -> %w", err)
	}

	now := s.now()

	return domain.NewAvailability(settings, domain.PoolSpectators, seats, now),
		domain.NewAvailability(settings, domain.PoolCandidates, candidates, now),
		nil
}

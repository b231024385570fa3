package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/eloquence-api/internal/domain"
	"github.com/vietanh2810/eloquence-api/internal/repository/dao"
)

var (
	ErrRegistrationNotFound = dao.ErrRegistrationNotFound
	ErrCandidateEmailExists = dao.ErrCandidateEmailExists
)

type RegistrationDAO interface {
	SeatsUsed(ctx context.Context) (int, error)
	CountCandidates(ctx context.Context) (int, error)
	CandidateEmailExists(ctx context.Context, email string) (bool, error)
	ListSpectators(ctx context.Context) ([]dao.SpectatorRegistration, error)
	ListCandidates(ctx context.Context) ([]dao.CandidateRegistration, error)
	ListFoodOrders(ctx context.Context) ([]dao.SpectatorRegistration, error)
	CountCandidatesBy(ctx context.Context, column string) ([]dao.GroupCount, error)
	FindCandidateByID(ctx context.Context, id uint) (dao.CandidateRegistration, error)
}

type TransactionDAO interface {
	Transaction(ctx context.Context, fn func(tx dao.AdmissionTx) error) error
}

type RegistrationRepository struct {
	dao   RegistrationDAO
	txDAO TransactionDAO
}

func NewRegistrationRepository(dao RegistrationDAO, txDAO TransactionDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao:   dao,
		txDAO: txDAO,
	}
}

func (r *RegistrationRepository) SeatsUsed(ctx context.Context) (int, error) {
	used, err := r.dao.SeatsUsed(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SeatsUsed -> %w", err)
	}

	return used, nil
}

func (r *RegistrationRepository) CountCandidates(ctx context.Context) (int, error) {
	count, err := r.dao.CountCandidates(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountCandidates -> %w", err)
	}

	return count, nil
}

func (r *RegistrationRepository) CandidateEmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := r.dao.CandidateEmailExists(ctx, email)
	if err != nil {
		return false, fmt.Errorf("r.dao.CandidateEmailExists -> %w", err)
	}

	return exists, nil
}

func (r *RegistrationRepository) ListSpectators(ctx context.Context) ([]domain.SpectatorRegistration, error) {
	found, err := r.dao.ListSpectators(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListSpectators -> %w", err)
	}

	result := make([]domain.SpectatorRegistration, len(found))
	for i, s := range found {
		result[i] = spectatorDAOToDomain(s)
	}

	return result, nil
}

func (r *RegistrationRepository) ListCandidates(ctx context.Context) ([]domain.CandidateRegistration, error) {
	found, err := r.dao.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListCandidates -> %w", err)
	}

	result := make([]domain.CandidateRegistration, len(found))
	for i, c := range found {
		result[i] = candidateDAOToDomain(c)
	}

	return result, nil
}

// FoodOrderTotals returns, per food option id, the number of portions ordered
// across all spectator registrations.
func (r *RegistrationRepository) FoodOrderTotals(ctx context.Context) (map[uint]int, error) {
	orders, err := r.dao.ListFoodOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListFoodOrders -> %w", err)
	}

	totals := make(map[uint]int)
	for _, o := range orders {
		selection := foodSelectionOf(o)
		for _, id := range selection.OptionIDs() {
			totals[id] += selection.Units(id)
		}
	}

	return totals, nil
}

func (r *RegistrationRepository) CandidatesByFaculty(ctx context.Context) ([]domain.GroupCount, error) {
	groups, err := r.dao.CountCandidatesBy(ctx, "faculty")
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountCandidatesBy -> %w", err)
	}

	return groupsDAOToDomain(groups), nil
}

func (r *RegistrationRepository) CandidatesByStudyYear(ctx context.Context) ([]domain.GroupCount, error) {
	groups, err := r.dao.CountCandidatesBy(ctx, "study_year")
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountCandidatesBy -> %w", err)
	}

	return groupsDAOToDomain(groups), nil
}

func (r *RegistrationRepository) FindCandidateByID(ctx context.Context, id uint) (domain.CandidateRegistration, error) {
	found, err := r.dao.FindCandidateByID(ctx, id)
	if err != nil {
		return domain.CandidateRegistration{}, fmt.Errorf("r.dao.FindCandidateByID -> %w", err)
	}

	return candidateDAOToDomain(found), nil
}

func spectatorDomainToDAO(s domain.SpectatorRegistration) dao.SpectatorRegistration {
	row := dao.SpectatorRegistration{
		ID:                s.ID,
		FullName:          s.FullName,
		Email:             s.Email,
		Phone:             s.Phone,
		AccompanyingCount: s.AccompanyingCount,
		FoodOptionLabel:   s.FoodLabel,
		AcceptedPrivacy:   s.AcceptedPrivacy,
		AcceptedRules:     s.AcceptedRules,
		CreatedAt:         s.CreatedAt,
	}

	if len(s.AccompanyingPeople) > 0 {
		row.AccompanyingPeople = make([]dao.AccompanyingPerson, len(s.AccompanyingPeople))
		for i, p := range s.AccompanyingPeople {
			row.AccompanyingPeople[i] = dao.AccompanyingPerson{FirstName: p.FirstName, LastName: p.LastName}
		}
	}

	switch s.Food.Kind {
	case domain.FoodSingle:
		id := s.Food.OptionID
		row.FoodOptionID = &id
	case domain.FoodQuantities:
		row.FoodWanted = true
		row.FoodQuantities = s.Food.Quantities
	}

	return row
}

func spectatorDAOToDomain(s dao.SpectatorRegistration) domain.SpectatorRegistration {
	registration := domain.SpectatorRegistration{
		ID:                s.ID,
		FullName:          s.FullName,
		Email:             s.Email,
		Phone:             s.Phone,
		AccompanyingCount: s.AccompanyingCount,
		Food:              foodSelectionOf(s),
		FoodLabel:         s.FoodOptionLabel,
		AcceptedPrivacy:   s.AcceptedPrivacy,
		AcceptedRules:     s.AcceptedRules,
		CreatedAt:         s.CreatedAt,
	}

	if len(s.AccompanyingPeople) > 0 {
		registration.AccompanyingPeople = make([]domain.AccompanyingPerson, len(s.AccompanyingPeople))
		for i, p := range s.AccompanyingPeople {
			registration.AccompanyingPeople[i] = domain.AccompanyingPerson{FirstName: p.FirstName, LastName: p.LastName}
		}
	}

	return registration
}

// foodSelectionOf rebuilds the variant from the stored columns. Quantities win
// over the legacy single option when both are present.
func foodSelectionOf(s dao.SpectatorRegistration) domain.FoodSelection {
	if selection := domain.FoodQuantitiesOf(s.FoodQuantities); selection.Kind == domain.FoodQuantities {
		return selection
	}
	if s.FoodOptionID != nil {
		return domain.SingleFoodOption(*s.FoodOptionID)
	}

	return domain.NoFood()
}

func candidateDomainToDAO(c domain.CandidateRegistration) dao.CandidateRegistration {
	return dao.CandidateRegistration{
		ID:              c.ID,
		FullName:        c.FullName,
		Email:           c.Email,
		Phone:           c.Phone,
		Faculty:         c.Faculty,
		StudyYear:       c.StudyYear,
		TextPath:        c.TextPath,
		ProofPath:       c.ProofPath,
		AcceptedPrivacy: c.AcceptedPrivacy,
		AcceptedRules:   c.AcceptedRules,
		CreatedAt:       c.CreatedAt,
	}
}

func candidateDAOToDomain(c dao.CandidateRegistration) domain.CandidateRegistration {
	return domain.CandidateRegistration{
		ID:              c.ID,
		FullName:        c.FullName,
		Email:           c.Email,
		Phone:           c.Phone,
		Faculty:         c.Faculty,
		StudyYear:       c.StudyYear,
		TextPath:        c.TextPath,
		ProofPath:       c.ProofPath,
		AcceptedPrivacy: c.AcceptedPrivacy,
		AcceptedRules:   c.AcceptedRules,
		CreatedAt:       c.CreatedAt,
	}
}

func groupsDAOToDomain(groups []dao.GroupCount) []domain.GroupCount {
	result := make([]domain.GroupCount, len(groups))
	for i, g := range groups {
		result[i] = domain.GroupCount{Key: g.Value, Count: g.Total}
	}

	return result
}

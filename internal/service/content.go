package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/eloquence-api/internal/domain"
)

const (
	homeAfterMovies      = 6
	homeFeaturedPartners = 12
	homeJuryMembers      = 10
)

// ContentStore persists one kind of site content. List keeps display order;
// flaggedOnly selects featured partners or active jury members and is
// ignored elsewhere. MaxPosition is -1 when nothing is stored.
type ContentStore[T any] interface {
	Create(ctx context.Context, item T) (T, error)
	FindByID(ctx context.Context, id uint) (T, error)
	List(ctx context.Context, flaggedOnly bool, limit int) ([]T, error)
	MaxPosition(ctx context.Context) (int, error)
	Update(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, id uint) error
}

type contentRequest[T any] interface {
	Validate() error
	Apply(item T) T
}

// ContentService manages the editorial content of the public site: partners,
// jury members, past editions and practical information.
type ContentService struct {
	partners    ContentStore[domain.Partner]
	jury        ContentStore[domain.JuryMember]
	afterMovies ContentStore[domain.AfterMovie]
	modalities  ContentStore[domain.PracticalModality]
}

func NewContentService(
	partners ContentStore[domain.Partner],
	jury ContentStore[domain.JuryMember],
	afterMovies ContentStore[domain.AfterMovie],
	modalities ContentStore[domain.PracticalModality],
) *ContentService {
	return &ContentService{
		partners:    partners,
		jury:        jury,
		afterMovies: afterMovies,
		modalities:  modalities,
	}
}

// Home gathers the landing page: the latest editions, featured and all
// partners, the active jury and the practical information.
func (s *ContentService) Home(ctx context.Context) (domain.HomeContent, error) {
	var (
		home domain.HomeContent
		err  error
	)

	if home.AfterMovies, err = s.afterMovies.List(ctx, false, homeAfterMovies); err != nil {
		return domain.HomeContent{}, fmt.Errorf("s.afterMovies.List -> %w", err)
	}
	if home.FeaturedPartners, err = s.partners.List(ctx, true, homeFeaturedPartners); err != nil {
		return domain.HomeContent{}, fmt.Errorf("s.partners.List -> %w", err)
	}
	if home.Partners, err = s.partners.List(ctx, false, 0); err != nil {
		return domain.HomeContent{}, fmt.Errorf("s.partners.List -> %w", err)
	}
	if home.JuryMembers, err = s.jury.List(ctx, true, homeJuryMembers); err != nil {
		return domain.HomeContent{}, fmt.Errorf("s.jury.List -> %w", err)
	}
	if home.PracticalModalities, err = s.modalities.List(ctx, false, 0); err != nil {
		return domain.HomeContent{}, fmt.Errorf("s.modalities.List -> %w", err)
	}

	return home, nil
}

func (s *ContentService) ListPartners(ctx context.Context) ([]domain.Partner, error) {
	return listContent(ctx, s.partners)
}

// CreatePartner appends the partner after the last one unless a sort order
// is given.
func (s *ContentService) CreatePartner(ctx context.Context, req request.PartnerRequest) (domain.Partner, error) {
	var place func(domain.Partner, int) domain.Partner
	if !req.HasPosition() {
		place = func(p domain.Partner, max int) domain.Partner {
			p.SortOrder = nextSortOrder(max)
			return p
		}
	}

	return createContent(ctx, s.partners, &req, domain.Partner{}, place)
}

func (s *ContentService) UpdatePartner(ctx context.Context, id uint, req request.PartnerRequest) (domain.Partner, error) {
	return updateContent(ctx, s.partners, id, &req)
}

func (s *ContentService) DeletePartner(ctx context.Context, id uint) error {
	return deleteContent(ctx, s.partners, id)
}

func (s *ContentService) ListJuryMembers(ctx context.Context) ([]domain.JuryMember, error) {
	return listContent(ctx, s.jury)
}

// CreateJuryMember adds an active member after the last one unless told
// otherwise.
func (s *ContentService) CreateJuryMember(ctx context.Context, req request.JuryMemberRequest) (domain.JuryMember, error) {
	var place func(domain.JuryMember, int) domain.JuryMember
	if !req.HasPosition() {
		place = func(j domain.JuryMember, max int) domain.JuryMember {
			j.SortOrder = nextSortOrder(max)
			return j
		}
	}

	return createContent(ctx, s.jury, &req, domain.JuryMember{IsActive: true}, place)
}

func (s *ContentService) UpdateJuryMember(ctx context.Context, id uint, req request.JuryMemberRequest) (domain.JuryMember, error) {
	return updateContent(ctx, s.jury, id, &req)
}

func (s *ContentService) DeleteJuryMember(ctx context.Context, id uint) error {
	return deleteContent(ctx, s.jury, id)
}

func (s *ContentService) ListAfterMovies(ctx context.Context) ([]domain.AfterMovie, error) {
	return listContent(ctx, s.afterMovies)
}

func (s *ContentService) CreateAfterMovie(ctx context.Context, req request.AfterMovieRequest) (domain.AfterMovie, error) {
	return createContent(ctx, s.afterMovies, &req, domain.AfterMovie{}, nil)
}

func (s *ContentService) UpdateAfterMovie(ctx context.Context, id uint, req request.AfterMovieRequest) (domain.AfterMovie, error) {
	return updateContent(ctx, s.afterMovies, id, &req)
}

func (s *ContentService) DeleteAfterMovie(ctx context.Context, id uint) error {
	return deleteContent(ctx, s.afterMovies, id)
}

func (s *ContentService) ListPracticalModalities(ctx context.Context) ([]domain.PracticalModality, error) {
	return listContent(ctx, s.modalities)
}

// CreatePracticalModality appends the entry; positions start at zero.
func (s *ContentService) CreatePracticalModality(ctx context.Context, req request.PracticalModalityRequest) (domain.PracticalModality, error) {
	var place func(domain.PracticalModality, int) domain.PracticalModality
	if !req.HasPosition() {
		place = func(m domain.PracticalModality, max int) domain.PracticalModality {
			m.Order = max + 1
			return m
		}
	}

	return createContent(ctx, s.modalities, &req, domain.PracticalModality{}, place)
}

func (s *ContentService) UpdatePracticalModality(ctx context.Context, id uint, req request.PracticalModalityRequest) (domain.PracticalModality, error) {
	return updateContent(ctx, s.modalities, id, &req)
}

func (s *ContentService) DeletePracticalModality(ctx context.Context, id uint) error {
	return deleteContent(ctx, s.modalities, id)
}

// nextSortOrder follows the highest sort order in use; sort orders start at 1.
func nextSortOrder(max int) int {
	if max < 0 {
		max = 0
	}

	return max + 1
}

func listContent[T any](ctx context.Context, store ContentStore[T]) ([]T, error) {
	items, err := store.List(ctx, false, 0)
	if err != nil {
		return nil, fmt.Errorf("store.List -> %w", err)
	}

	return items, nil
}

// createContent validates req and applies it onto seed. When place is set,
// it receives the highest position in use to put the new item after it.
func createContent[T any](ctx context.Context, store ContentStore[T], req contentRequest[T], seed T, place func(item T, max int) T) (T, error) {
	var zero T

	if err := req.Validate(); err != nil {
		return zero, newValidationError(err)
	}

	item := req.Apply(seed)
	if place != nil {
		max, err := store.MaxPosition(ctx)
		if err != nil {
			return zero, fmt.Errorf("store.MaxPosition -> %w", err)
		}
		item = place(item, max)
	}

	created, err := store.Create(ctx, item)
	if err != nil {
		return zero, fmt.Errorf("store.Create -> %w", err)
	}

	return created, nil
}

func updateContent[T any](ctx context.Context, store ContentStore[T], id uint, req contentRequest[T]) (T, error) {
	var zero T

	if err := req.Validate(); err != nil {
		return zero, newValidationError(err)
	}

	current, err := store.FindByID(ctx, id)
	if err != nil {
		return zero, fmt.Errorf("store.FindByID -> %w", err)
	}

	updated, err := store.Update(ctx, req.Apply(current))
	if err != nil {
		return zero, fmt.Errorf("store.Update -> %w", err)
	}

	return updated, nil
}

func deleteContent[T any](ctx context.Context, store ContentStore[T], id uint) error {
	if err := store.Delete(ctx, id); err != nil {
		return fmt.Errorf("store.Delete -> %w", err)
	}

	return nil
}

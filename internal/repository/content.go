package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/eloquence-api/internal/domain"
	"github.com/vietanh2810/eloquence-api/internal/repository/dao"
)

var (
	ErrContentNotFound = dao.ErrContentNotFound
)

type ContentDAO[M any] interface {
	Insert(ctx context.Context, row M) (M, error)
	FindByID(ctx context.Context, id uint) (M, error)
	List(ctx context.Context, flaggedOnly bool, limit int) ([]M, error)
	MaxPosition(ctx context.Context) (int, error)
	Update(ctx context.Context, row M) (M, error)
	Delete(ctx context.Context, id uint) error
}

// ContentRepository maps one kind of site content between its domain type T
// and its row type M.
type ContentRepository[T, M any] struct {
	dao      ContentDAO[M]
	toDAO    func(T) M
	toDomain func(M) T
}

type (
	PartnerRepository           = ContentRepository[domain.Partner, dao.Partner]
	JuryMemberRepository        = ContentRepository[domain.JuryMember, dao.JuryMember]
	AfterMovieRepository        = ContentRepository[domain.AfterMovie, dao.AfterMovie]
	PracticalModalityRepository = ContentRepository[domain.PracticalModality, dao.PracticalModality]
)

func NewPartnerRepository(d ContentDAO[dao.Partner]) *PartnerRepository {
	return &PartnerRepository{dao: d, toDAO: partnerDomainToDAO, toDomain: partnerDAOToDomain}
}

func NewJuryMemberRepository(d ContentDAO[dao.JuryMember]) *JuryMemberRepository {
	return &JuryMemberRepository{dao: d, toDAO: juryDomainToDAO, toDomain: juryDAOToDomain}
}

func NewAfterMovieRepository(d ContentDAO[dao.AfterMovie]) *AfterMovieRepository {
	return &AfterMovieRepository{dao: d, toDAO: afterMovieDomainToDAO, toDomain: afterMovieDAOToDomain}
}

func NewPracticalModalityRepository(d ContentDAO[dao.PracticalModality]) *PracticalModalityRepository {
	return &PracticalModalityRepository{dao: d, toDAO: modalityDomainToDAO, toDomain: modalityDAOToDomain}
}

func (r *ContentRepository[T, M]) Create(ctx context.Context, item T) (T, error) {
	created, err := r.dao.Insert(ctx, r.toDAO(item))
	if err != nil {
		var zero T
		return zero, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.toDomain(created), nil
}

func (r *ContentRepository[T, M]) FindByID(ctx context.Context, id uint) (T, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.toDomain(found), nil
}

func (r *ContentRepository[T, M]) List(ctx context.Context, flaggedOnly bool, limit int) ([]T, error) {
	found, err := r.dao.List(ctx, flaggedOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	result := make([]T, len(found))
	for i, row := range found {
		result[i] = r.toDomain(row)
	}

	return result, nil
}

func (r *ContentRepository[T, M]) MaxPosition(ctx context.Context) (int, error) {
	max, err := r.dao.MaxPosition(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.MaxPosition -> %w", err)
	}

	return max, nil
}

func (r *ContentRepository[T, M]) Update(ctx context.Context, item T) (T, error) {
	updated, err := r.dao.Update(ctx, r.toDAO(item))
	if err != nil {
		var zero T
		return zero, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.toDomain(updated), nil
}

func (r *ContentRepository[T, M]) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func partnerDomainToDAO(p domain.Partner) dao.Partner {
	return dao.Partner{
		ID:          p.ID,
		Name:        p.Name,
		URL:         p.URL,
		Description: p.Description,
		LogoURL:     p.LogoURL,
		IsFeatured:  p.IsFeatured,
		SortOrder:   p.SortOrder,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func partnerDAOToDomain(p dao.Partner) domain.Partner {
	return domain.Partner{
		ID:          p.ID,
		Name:        p.Name,
		URL:         p.URL,
		Description: p.Description,
		LogoURL:     p.LogoURL,
		IsFeatured:  p.IsFeatured,
		SortOrder:   p.SortOrder,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func juryDomainToDAO(j domain.JuryMember) dao.JuryMember {
	return dao.JuryMember{
		ID:          j.ID,
		Name:        j.Name,
		Role:        j.Role,
		Detail:      j.Detail,
		Description: j.Description,
		PhotoURL:    j.PhotoURL,
		IsActive:    j.IsActive,
		SortOrder:   j.SortOrder,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

func juryDAOToDomain(j dao.JuryMember) domain.JuryMember {
	return domain.JuryMember{
		ID:          j.ID,
		Name:        j.Name,
		Role:        j.Role,
		Detail:      j.Detail,
		Description: j.Description,
		PhotoURL:    j.PhotoURL,
		IsActive:    j.IsActive,
		SortOrder:   j.SortOrder,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// afterMovieDomainToDAO expects a validated date; an unparsable one is stored
// as the zero date.
func afterMovieDomainToDAO(a domain.AfterMovie) dao.AfterMovie {
	date, _ := time.Parse(domain.DateLayout, a.Date)

	return dao.AfterMovie{
		ID:            a.ID,
		Date:          date,
		Location:      a.Location,
		Theme:         a.Theme,
		Winner:        a.Winner,
		AftermovieURL: a.AftermovieURL,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func afterMovieDAOToDomain(a dao.AfterMovie) domain.AfterMovie {
	return domain.AfterMovie{
		ID:            a.ID,
		Date:          a.Date.Format(domain.DateLayout),
		Location:      a.Location,
		Theme:         a.Theme,
		Winner:        a.Winner,
		AftermovieURL: a.AftermovieURL,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func modalityDomainToDAO(m domain.PracticalModality) dao.PracticalModality {
	return dao.PracticalModality{
		ID:           m.ID,
		DisplayOrder: m.Order,
		IconName:     m.IconName,
		Title:        m.Title,
		Description:  m.Description,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func modalityDAOToDomain(m dao.PracticalModality) domain.PracticalModality {
	return domain.PracticalModality{
		ID:          m.ID,
		Order:       m.DisplayOrder,
		IconName:    m.IconName,
		Title:       m.Title,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

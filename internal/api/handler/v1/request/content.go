package request

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/vietanh2810/eloquence-api/internal/domain"
)

const (
	maxShortText       = 255
	maxPartnerText     = 2000
	maxDescriptionText = 10000
)

var errNotURLOrPath = errors.New("must be an absolute URL or a path starting with /")

// urlOrPath accepts an absolute URL or a path served by the site itself.
var urlOrPath = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" || strings.HasPrefix(s, "/") {
		return nil
	}
	if err := is.URL.Validate(s); err != nil {
		return errNotURLOrPath
	}

	return nil
})

type PartnerRequest struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	IsFeatured  *bool  `json:"is_featured"`
	SortOrder   *int   `json:"sort_order"`
}

func (req *PartnerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, notBlank, validation.Length(1, maxShortText)),
		validation.Field(&req.URL, is.URL, validation.Length(0, maxShortText)),
		validation.Field(&req.Description, validation.Length(0, maxPartnerText)),
		validation.Field(&req.LogoURL, urlOrPath, validation.Length(0, maxShortText)),
		validation.Field(&req.SortOrder, validation.Min(0), validation.Max(maxSortOrder)),
	)
}

// Apply copies the request onto p. Text fields are replaced; a missing
// is_featured or sort_order keeps the current value.
func (req *PartnerRequest) Apply(p domain.Partner) domain.Partner {
	p.Name = strings.TrimSpace(req.Name)
	p.URL = strings.TrimSpace(req.URL)
	p.Description = strings.TrimSpace(req.Description)
	p.LogoURL = strings.TrimSpace(req.LogoURL)
	if req.IsFeatured != nil {
		p.IsFeatured = *req.IsFeatured
	}
	if req.SortOrder != nil {
		p.SortOrder = *req.SortOrder
	}

	return p
}

func (req *PartnerRequest) HasPosition() bool {
	return req.SortOrder != nil
}

type JuryMemberRequest struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Detail      string `json:"detail"`
	Description string `json:"description"`
	PhotoURL    string `json:"photo_url"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   *int   `json:"sort_order"`
}

func (req *JuryMemberRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, notBlank, validation.Length(1, maxShortText)),
		validation.Field(&req.Role, validation.Required, notBlank, validation.Length(1, maxShortText)),
		validation.Field(&req.Detail, validation.Length(0, maxShortText)),
		validation.Field(&req.Description, validation.Length(0, maxDescriptionText)),
		validation.Field(&req.PhotoURL, urlOrPath, validation.Length(0, maxShortText)),
		validation.Field(&req.SortOrder, validation.Min(0), validation.Max(maxSortOrder)),
	)
}

func (req *JuryMemberRequest) Apply(j domain.JuryMember) domain.JuryMember {
	j.Name = strings.TrimSpace(req.Name)
	j.Role = strings.TrimSpace(req.Role)
	j.Detail = strings.TrimSpace(req.Detail)
	j.Description = strings.TrimSpace(req.Description)
	j.PhotoURL = strings.TrimSpace(req.PhotoURL)
	if req.IsActive != nil {
		j.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		j.SortOrder = *req.SortOrder
	}

	return j
}

func (req *JuryMemberRequest) HasPosition() bool {
	return req.SortOrder != nil
}

type AfterMovieRequest struct {
	Date          string `json:"date"`
	Location      string `json:"location"`
	Theme         string `json:"theme"`
	Winner        string `json:"winner"`
	AftermovieURL string `json:"aftermovie_url"`
}

func (req *AfterMovieRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Date, validation.Required, validation.Date(domain.DateLayout)),
		validation.Field(&req.Location, validation.Length(0, maxShortText)),
		validation.Field(&req.Theme, validation.Length(0, maxShortText)),
		validation.Field(&req.Winner, validation.Required, notBlank, validation.Length(1, maxShortText)),
		validation.Field(&req.AftermovieURL, is.URL, validation.Length(0, maxShortText)),
	)
}

func (req *AfterMovieRequest) Apply(a domain.AfterMovie) domain.AfterMovie {
	a.Date = strings.TrimSpace(req.Date)
	a.Location = strings.TrimSpace(req.Location)
	a.Theme = strings.TrimSpace(req.Theme)
	a.Winner = strings.TrimSpace(req.Winner)
	a.AftermovieURL = strings.TrimSpace(req.AftermovieURL)

	return a
}

type PracticalModalityRequest struct {
	Order       *int   `json:"order"`
	IconName    string `json:"icon_name"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (req *PracticalModalityRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Order, validation.Min(0), validation.Max(maxSortOrder)),
		validation.Field(&req.IconName, validation.Required, notBlank, validation.Length(1, maxShortText)),
		validation.Field(&req.Title, validation.Required, notBlank, validation.Length(1, maxShortText)),
		validation.Field(&req.Description, validation.Length(0, maxDescriptionText)),
	)
}

func (req *PracticalModalityRequest) Apply(m domain.PracticalModality) domain.PracticalModality {
	if req.Order != nil {
		m.Order = *req.Order
	}
	m.IconName = strings.TrimSpace(req.IconName)
	m.Title = strings.TrimSpace(req.Title)
	m.Description = strings.TrimSpace(req.Description)

	return m
}

func (req *PracticalModalityRequest) HasPosition() bool {
	return req.Order != nil
}

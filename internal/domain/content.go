package domain

import "time"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

type Partner struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url,omitempty"`
	Description string    `json:"description,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	IsFeatured  bool      `json:"is_featured"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type JuryMember struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Detail      string    `json:"detail,omitempty"`
	Description string    `json:"description,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AfterMovie is a past edition of the contest. Date uses DateLayout.
type AfterMovie struct {
	ID            uint      `json:"id"`
	Date          string    `json:"date"`
	Location      string    `json:"location,omitempty"`
	Theme         string    `json:"theme,omitempty"`
	Winner        string    `json:"winner"`
	AftermovieURL string    `json:"aftermovie_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type PracticalModality struct {
	ID          uint      `json:"id"`
	Order       int       `json:"order"`
	IconName    string    `json:"icon_name"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HomeContent is everything the public landing page shows besides the
// registration forms.
type HomeContent struct {
	AfterMovies         []AfterMovie        `json:"after_movies"`
	FeaturedPartners    []Partner           `json:"featured_partners"`
	Partners            []Partner           `json:"partners"`
	JuryMembers         []JuryMember        `json:"jury_members"`
	PracticalModalities []PracticalModality `json:"practical_modalities"`
}

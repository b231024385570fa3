package request

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vietanh2810/eloquence-api/internal/domain"
)

func TestPartnerRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     PartnerRequest
		invalid []string
	}{
		{name: "minimal", req: PartnerRequest{Name: "Mairie"}},
		{name: "site path logo", req: PartnerRequest{Name: "Mairie", URL: "https://mairie.example.org", LogoURL: "/uploads/mairie.png"}},
		{name: "absolute logo", req: PartnerRequest{Name: "Mairie", LogoURL: "https://cdn.example.org/mairie.png"}},
		{name: "blank name", req: PartnerRequest{Name: "  "}, invalid: []string{"name"}},
		{name: "bad links", req: PartnerRequest{Name: "Mairie", URL: "://mairie", LogoURL: "://logo.png"}, invalid: []string{"url", "logo_url"}},
		{name: "long description", req: PartnerRequest{Name: "Mairie", Description: strings.Repeat("a", maxPartnerText+1)}, invalid: []string{"description"}},
		{name: "sort order range", req: PartnerRequest{Name: "Mairie", SortOrder: intPtr(-1)}, invalid: []string{"sort_order"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if len(tt.invalid) == 0 {
				assert.NoError(t, err)
				return
			}

			errs := fieldErrors(t, err)
			assert.Len(t, errs, len(tt.invalid))
			for _, field := range tt.invalid {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestPartnerRequest_Apply(t *testing.T) {
	current := domain.Partner{ID: 2, Name: "Mairie", IsFeatured: true, SortOrder: 4}

	kept := (&PartnerRequest{Name: " Mairie du 5e ", URL: " https://mairie.example.org "}).Apply(current)
	assert.Equal(t, domain.Partner{ID: 2, Name: "Mairie du 5e", URL: "https://mairie.example.org", IsFeatured: true, SortOrder: 4}, kept)

	featured := false
	changed := (&PartnerRequest{Name: "Mairie", IsFeatured: &featured, SortOrder: intPtr(0)}).Apply(current)
	assert.False(t, changed.IsFeatured)
	assert.Equal(t, 0, changed.SortOrder)
}

func TestJuryMemberRequest_Validate(t *testing.T) {
	errs := fieldErrors(t, (&JuryMemberRequest{Name: "Ada", PhotoURL: "://photo"}).Validate())

	assert.Contains(t, errs, "role")
	assert.Contains(t, errs, "photo_url")
	assert.NotContains(t, errs, "name")
	assert.NoError(t, (&JuryMemberRequest{Name: "Ada", Role: "Présidente", PhotoURL: "/uploads/ada.jpg"}).Validate())
}

func TestAfterMovieRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     AfterMovieRequest
		invalid []string
	}{
		{name: "valid", req: AfterMovieRequest{Date: "2024-05-10", Winner: "Hugo", AftermovieURL: "https://youtu.be/abc"}},
		{name: "missing", req: AfterMovieRequest{}, invalid: []string{"date", "winner"}},
		{name: "day first date", req: AfterMovieRequest{Date: "10/05/2024", Winner: "Hugo"}, invalid: []string{"date"}},
		{name: "impossible date", req: AfterMovieRequest{Date: "2024-02-30", Winner: "Hugo"}, invalid: []string{"date"}},
		{name: "bad video link", req: AfterMovieRequest{Date: "2024-05-10", Winner: "Hugo", AftermovieURL: "://video"}, invalid: []string{"aftermovie_url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if len(tt.invalid) == 0 {
				assert.NoError(t, err)
				return
			}

			errs := fieldErrors(t, err)
			assert.Len(t, errs, len(tt.invalid))
			for _, field := range tt.invalid {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestPracticalModalityRequest(t *testing.T) {
	errs := fieldErrors(t, (&PracticalModalityRequest{Order: intPtr(-1), Title: " "}).Validate())
	assert.Contains(t, errs, "order")
	assert.Contains(t, errs, "icon_name")
	assert.Contains(t, errs, "title")

	req := PracticalModalityRequest{IconName: " map ", Title: " Accès "}
	assert.False(t, req.HasPosition())

	current := domain.PracticalModality{ID: 1, Order: 3}
	assert.Equal(t, domain.PracticalModality{ID: 1, Order: 3, IconName: "map", Title: "Accès"}, req.Apply(current))

	req.Order = intPtr(0)
	assert.True(t, req.HasPosition())
	assert.Equal(t, 0, req.Apply(current).Order)
}

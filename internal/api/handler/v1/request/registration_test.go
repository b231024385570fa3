package request

import (
	"encoding/json"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/eloquence-api/internal/domain"
)

func validSpectator() SpectatorRegistrationRequest {
	return SpectatorRegistrationRequest{
		FullName:          "Marie Curie",
		Email:             "marie@example.com",
		Phone:             "+32 470 12 34 56",
		AccompanyingCount: 1,
		AccompanyingPeople: []AccompanyingPerson{
			{FirstName: "Pierre", LastName: "Curie"},
		},
		AcceptedPrivacy: true,
		AcceptedRules:   true,
	}
}

func validCandidate() CandidateRegistrationRequest {
	return CandidateRegistrationRequest{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Phone:           "+32 470 65 43 21",
		Faculty:         Faculties[0].(string),
		StudyYear:       "MASTER 1",
		AcceptedPrivacy: "on",
		AcceptedRules:   "true",
		Text:            domain.Document{ContentType: "application/pdf", Extension: ".pdf", Data: []byte("%PDF-1.4")},
		Proof:           domain.Document{ContentType: "image/png", Extension: ".png", Data: []byte("\x89PNG")},
	}
}

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)

	return errs
}

func TestSpectatorRegistrationRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(req *SpectatorRegistrationRequest)
		wantField string
	}{
		{
			name:      "missing name",
			mutate:    func(req *SpectatorRegistrationRequest) { req.FullName = "" },
			wantField: "full_name",
		},
		{
			name:      "blank name",
			mutate:    func(req *SpectatorRegistrationRequest) { req.FullName = "   " },
			wantField: "full_name",
		},
		{
			name:      "invalid email",
			mutate:    func(req *SpectatorRegistrationRequest) { req.Email = "marie-at-example" },
			wantField: "email",
		},
		{
			name:      "missing phone",
			mutate:    func(req *SpectatorRegistrationRequest) { req.Phone = "" },
			wantField: "phone",
		},
		{
			name:      "blank phone",
			mutate:    func(req *SpectatorRegistrationRequest) { req.Phone = "\t " },
			wantField: "phone",
		},
		{
			name: "too many accompanying people",
			mutate: func(req *SpectatorRegistrationRequest) {
				req.AccompanyingCount = domain.MaxAccompanying + 1
			},
			wantField: "accompanying_count",
		},
		{
			name: "negative accompanying count",
			mutate: func(req *SpectatorRegistrationRequest) {
				req.AccompanyingCount = -1
				req.AccompanyingPeople = nil
			},
			wantField: "accompanying_count",
		},
		{
			name:      "accompanying people mismatch",
			mutate:    func(req *SpectatorRegistrationRequest) { req.AccompanyingCount = 2 },
			wantField: "accompanying_people",
		},
		{
			name: "accompanying person without last name",
			mutate: func(req *SpectatorRegistrationRequest) {
				req.AccompanyingPeople[0].LastName = "  "
			},
			wantField: "accompanying_people",
		},
		{
			name: "food key is not an id",
			mutate: func(req *SpectatorRegistrationRequest) {
				req.FoodQuantities = map[string]int{"soup": 1}
			},
			wantField: "food_quantities",
		},
		{
			name: "food quantity out of range",
			mutate: func(req *SpectatorRegistrationRequest) {
				req.FoodQuantities = map[string]int{"1": maxFoodQuantity + 1}
			},
			wantField: "food_quantities",
		},
		{
			name:      "privacy not accepted",
			mutate:    func(req *SpectatorRegistrationRequest) { req.AcceptedPrivacy = false },
			wantField: "accepted_rgpd",
		},
		{
			name:      "rules not accepted",
			mutate:    func(req *SpectatorRegistrationRequest) { req.AcceptedRules = false },
			wantField: "accepted_rules",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSpectator()
			tt.mutate(&req)

			errs := fieldErrors(t, req.Validate())
			assert.Contains(t, errs, tt.wantField)
		})
	}

	t.Run("valid", func(t *testing.T) {
		req := validSpectator()
		assert.NoError(t, req.Validate())
	})
}

func TestSpectatorRegistrationRequest_People(t *testing.T) {
	req := validSpectator()
	req.AccompanyingPeople = []AccompanyingPerson{
		{FirstName: " Pierre ", LastName: "Curie "},
		{FirstName: "Irène", LastName: "Curie"},
	}

	assert.Equal(t, []domain.AccompanyingPerson{{FirstName: "Pierre", LastName: "Curie"}}, req.People())

	req.AccompanyingCount = 0
	assert.Nil(t, req.People())
}

func TestSpectatorRegistrationRequest_FoodSelection(t *testing.T) {
	optionID := uint(4)

	tests := []struct {
		name string
		req  SpectatorRegistrationRequest
		want domain.FoodSelection
	}{
		{
			name: "nothing",
			req:  SpectatorRegistrationRequest{},
			want: domain.NoFood(),
		},
		{
			name: "legacy single option",
			req:  SpectatorRegistrationRequest{FoodOptionID: &optionID},
			want: domain.SingleFoodOption(4),
		},
		{
			name: "quantities win over the legacy option",
			req: SpectatorRegistrationRequest{
				FoodWanted:     true,
				FoodQuantities: map[string]int{"1": 2, "3": 0},
				FoodOptionID:   &optionID,
			},
			want: domain.FoodQuantitiesOf(map[uint]int{1: 2}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.FoodSelection())
		})
	}
}

func TestCandidateRegistrationRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(req *CandidateRegistrationRequest)
		wantField string
	}{
		{
			name:      "missing first name",
			mutate:    func(req *CandidateRegistrationRequest) { req.FirstName = "" },
			wantField: "first_name",
		},
		{
			name:      "blank first name",
			mutate:    func(req *CandidateRegistrationRequest) { req.FirstName = "   " },
			wantField: "first_name",
		},
		{
			name:      "blank last name",
			mutate:    func(req *CandidateRegistrationRequest) { req.LastName = " " },
			wantField: "last_name",
		},
		{
			name:      "blank phone",
			mutate:    func(req *CandidateRegistrationRequest) { req.Phone = "  " },
			wantField: "phone",
		},
		{
			name:      "privacy not ticked",
			mutate:    func(req *CandidateRegistrationRequest) { req.AcceptedPrivacy = "" },
			wantField: "accepted_rgpd",
		},
		{
			name:      "rules refused",
			mutate:    func(req *CandidateRegistrationRequest) { req.AcceptedRules = "off" },
			wantField: "accepted_rules",
		},
		{
			name:      "unknown consent value",
			mutate:    func(req *CandidateRegistrationRequest) { req.AcceptedRules = "maybe" },
			wantField: "accepted_rules",
		},
		{
			name:      "unknown faculty",
			mutate:    func(req *CandidateRegistrationRequest) { req.Faculty = "Faculty of Magic" },
			wantField: "faculty",
		},
		{
			name:      "unknown study year",
			mutate:    func(req *CandidateRegistrationRequest) { req.StudyYear = "BAC 9" },
			wantField: "study_year",
		},
		{
			name:      "missing text",
			mutate:    func(req *CandidateRegistrationRequest) { req.Text = domain.Document{} },
			wantField: "text_pdf",
		},
		{
			name: "text is not a pdf",
			mutate: func(req *CandidateRegistrationRequest) {
				req.Text = domain.Document{ContentType: "image/png", Data: []byte("\x89PNG")}
			},
			wantField: "text_pdf",
		},
		{
			name: "proof is a zip",
			mutate: func(req *CandidateRegistrationRequest) {
				req.Proof = domain.Document{ContentType: "application/zip", Data: []byte("PK")}
			},
			wantField: "proof_pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCandidate()
			tt.mutate(&req)

			errs := fieldErrors(t, req.Validate())
			assert.Contains(t, errs, tt.wantField)
		})
	}

	t.Run("valid without study year", func(t *testing.T) {
		req := validCandidate()
		req.StudyYear = ""
		assert.NoError(t, req.Validate())
	})
}

func TestCandidateRegistrationRequest_Normalization(t *testing.T) {
	req := CandidateRegistrationRequest{FirstName: " Ada ", LastName: "Lovelace ", Email: " Ada@Example.COM ", Phone: " 0470 "}

	assert.Equal(t, "Ada Lovelace", req.FullName())
	assert.Equal(t, "ada@example.com", req.NormalizedEmail())
	assert.Equal(t, "0470", req.TrimmedPhone())
}

func TestSpectatorRegistrationRequest_Trimmed(t *testing.T) {
	req := validSpectator()
	req.FullName = " Marie Curie\n"
	req.Email = " marie@example.com"
	req.Phone = "+32 470 12 34 56 "

	trimmed := req.Trimmed()

	assert.Equal(t, "Marie Curie", trimmed.FullName)
	assert.Equal(t, "marie@example.com", trimmed.Email)
	assert.Equal(t, "+32 470 12 34 56", trimmed.Phone)
	assert.Equal(t, " Marie Curie\n", req.FullName)
}

func TestConsent(t *testing.T) {
	for _, v := range []string{"on", "ON", "1", "true", "True", "yes", " on "} {
		assert.True(t, Consent(v).Accepted(), v)
	}
	for _, v := range []string{"", "off", "0", "false", "no", "maybe"} {
		assert.False(t, Consent(v).Accepted(), v)
	}

	var body struct {
		Privacy Consent `json:"accepted_rgpd"`
		Rules   Consent `json:"accepted_rules"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"accepted_rgpd": true, "accepted_rules": "on"}`), &body))
	assert.True(t, body.Privacy.Accepted())
	assert.True(t, body.Rules.Accepted())

	require.NoError(t, json.Unmarshal([]byte(`{"accepted_rgpd": false}`), &body))
	assert.False(t, body.Privacy.Accepted())

	assert.Error(t, json.Unmarshal([]byte(`{"accepted_rgpd": {}}`), &body))
}

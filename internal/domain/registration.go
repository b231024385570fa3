package domain

import "time"

const MaxAccompanying = 5

type AccompanyingPerson struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type SpectatorRegistration struct {
	ID                 uint                 `json:"id"`
	FullName           string               `json:"full_name"`
	Email              string               `json:"email"`
	Phone              string               `json:"phone"`
	AccompanyingCount  int                  `json:"accompanying_count"`
	AccompanyingPeople []AccompanyingPerson `json:"accompanying_people"`
	Food               FoodSelection        `json:"food"`
	FoodLabel          string               `json:"food_label"`
	AcceptedPrivacy    bool                 `json:"accepted_rgpd"`
	AcceptedRules      bool                 `json:"accepted_rules"`
	CreatedAt          time.Time            `json:"created_at"`
}

// SeatsRequested is the registrant plus every accompanying person.
func (r SpectatorRegistration) SeatsRequested() int {
	return 1 + r.AccompanyingCount
}

type DocumentKind string

const (
	DocumentText  DocumentKind = "text"
	DocumentProof DocumentKind = "proof"
)

type CandidateRegistration struct {
	ID              uint      `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Faculty         string    `json:"faculty"`
	StudyYear       string    `json:"study_year,omitempty"`
	TextPath        string    `json:"text_pdf_path"`
	ProofPath       string    `json:"proof_path"`
	AcceptedPrivacy bool      `json:"accepted_rgpd"`
	AcceptedRules   bool      `json:"accepted_rules"`
	CreatedAt       time.Time `json:"created_at"`
}

func (r CandidateRegistration) DocumentPath(kind DocumentKind) string {
	switch kind {
	case DocumentText:
		return r.TextPath
	case DocumentProof:
		return r.ProofPath
	default:
		return ""
	}
}

// Document is an uploaded file already read into memory. ContentType is
// sniffed from Data, never taken from the client.
type Document struct {
	Filename    string
	ContentType string
	Extension   string
	Data        []byte
}

package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/vietanh2810/eloquence-api/internal/domain"
)

const (
	maxFoodQuantity = 20

	contentTypePDF = "application/pdf"

	mustBeAccepted = "must be accepted"
)

var (
	Faculties = []interface{}{
		"Faculté de Philosophie et Lettres",
		"Faculté de Droit, Science politique et Criminologie",
		"Faculté des Sciences",
		"Faculté de Médecine",
		"Faculté des Sciences Appliquées",
		"Faculté de Médecine Vétérinaire",
		"Faculté de Psychologie, Logopédie et Sciences de l'Education",
		"HEC Liège - Ecole de Gestion",
		"Faculté des Sciences Sociales",
		"Faculté de Gembloux Agro-Bio Tech",
		"Faculté d'Architecture",
	}

	StudyYears = []interface{}{
		"BAC 1",
		"BAC 2",
		"BAC 3",
		"MASTER 0",
		"MASTER 1",
		"MASTER 2",
		"MASTER 3",
		"MASTER DE SPE",
		"DOCTORAT",
		"ERASMUS",
	}

	proofContentTypes = []string{contentTypePDF, "image/jpeg", "image/png", "image/webp"}

	errAccompanyingMismatch    = errors.New("the number of accompanying people must match accompanying_count")
	errAccompanyingNameMissing = errors.New("every accompanying person needs a first and last name")
	errEmptyDocument           = errors.New("the file is required")
	errBlank                   = errors.New("cannot be blank")
	errNotAccepted             = errors.New(mustBeAccepted)
)

// notBlank rejects values made only of whitespace, which Required lets through.
var notBlank = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s != "" && strings.TrimSpace(s) == "" {
		return errBlank
	}

	return nil
})

// Consent is the value of a consent checkbox. Browsers post "on" for a ticked
// box without a value attribute; JSON clients send a boolean.
type Consent string

func (c Consent) Accepted() bool {
	switch strings.ToLower(strings.TrimSpace(string(c))) {
	case "1", "on", "yes", "true":
		return true
	default:
		return false
	}
}

func (c *Consent) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*c = Consent(strconv.FormatBool(b))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("consent must be a boolean or a string: %w", err)
	}
	*c = Consent(s)

	return nil
}

func mustAccept(value interface{}) error {
	if c, _ := value.(Consent); !c.Accepted() {
		return errNotAccepted
	}

	return nil
}

type AccompanyingPerson struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type SpectatorRegistrationRequest struct {
	FullName           string               `json:"full_name"`
	Email              string               `json:"email"`
	Phone              string               `json:"phone"`
	AccompanyingCount  int                  `json:"accompanying_count"`
	AccompanyingPeople []AccompanyingPerson `json:"accompanying_people"`
	FoodWanted         bool                 `json:"food_wanted"`
	FoodQuantities     map[string]int       `json:"food_quantities"`
	FoodOptionID       *uint                `json:"food_option_id"`
	AcceptedPrivacy    bool                 `json:"accepted_rgpd"`
	AcceptedRules      bool                 `json:"accepted_rules"`
}

func (req *SpectatorRegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FullName, validation.Required, notBlank, validation.Length(1, 255)),
		validation.Field(&req.Email, validation.Required, is.Email, validation.Length(1, 255)),
		validation.Field(&req.Phone, validation.Required, notBlank, validation.Length(1, 50)),
		validation.Field(&req.AccompanyingCount, validation.Min(0), validation.Max(domain.MaxAccompanying)),
		validation.Field(&req.AccompanyingPeople, validation.By(req.checkAccompanyingPeople)),
		validation.Field(&req.FoodQuantities, validation.By(checkFoodQuantities)),
		validation.Field(&req.AcceptedPrivacy, validation.Required.Error(mustBeAccepted)),
		validation.Field(&req.AcceptedRules, validation.Required.Error(mustBeAccepted)),
	)
}

func (req *SpectatorRegistrationRequest) checkAccompanyingPeople(interface{}) error {
	if req.AccompanyingCount <= 0 {
		return nil
	}
	if len(req.AccompanyingPeople) != req.AccompanyingCount {
		return errAccompanyingMismatch
	}
	for _, p := range req.AccompanyingPeople {
		if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
			return errAccompanyingNameMissing
		}
	}

	return nil
}

func checkFoodQuantities(value interface{}) error {
	quantities, _ := value.(map[string]int)
	for key, qty := range quantities {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil || id == 0 {
			return fmt.Errorf("%q is not a food option id", key)
		}
		if qty < 0 || qty > maxFoodQuantity {
			return fmt.Errorf("quantity for option %s must be between 0 and %d", key, maxFoodQuantity)
		}
	}

	return nil
}

// Trimmed returns a copy with the free-text identity fields trimmed, the form
// under which they are stored.
func (req *SpectatorRegistrationRequest) Trimmed() SpectatorRegistrationRequest {
	out := *req
	out.FullName = strings.TrimSpace(out.FullName)
	out.Email = strings.TrimSpace(out.Email)
	out.Phone = strings.TrimSpace(out.Phone)

	return out
}

// People returns the trimmed accompanying people, or nil when the registrant
// comes alone. Entries beyond accompanying_count are ignored.
func (req *SpectatorRegistrationRequest) People() []domain.AccompanyingPerson {
	if req.AccompanyingCount <= 0 {
		return nil
	}

	people := make([]domain.AccompanyingPerson, 0, req.AccompanyingCount)
	for i, p := range req.AccompanyingPeople {
		if i == req.AccompanyingCount {
			break
		}
		people = append(people, domain.AccompanyingPerson{
			FirstName: strings.TrimSpace(p.FirstName),
			LastName:  strings.TrimSpace(p.LastName),
		})
	}

	return people
}

// FoodSelection picks the variant explicitly: food_wanted selects the
// quantities form, otherwise a legacy food_option_id selects a single option.
// Call Validate first; unparsable keys are skipped here.
func (req *SpectatorRegistrationRequest) FoodSelection() domain.FoodSelection {
	if req.FoodWanted {
		quantities := make(map[uint]int, len(req.FoodQuantities))
		for key, qty := range req.FoodQuantities {
			id, err := strconv.ParseUint(key, 10, 64)
			if err != nil {
				continue
			}
			quantities[uint(id)] = qty
		}

		return domain.FoodQuantitiesOf(quantities)
	}

	if req.FoodOptionID != nil && *req.FoodOptionID > 0 {
		return domain.SingleFoodOption(*req.FoodOptionID)
	}

	return domain.NoFood()
}

type CandidateRegistrationRequest struct {
	FirstName       string `form:"first_name" json:"first_name"`
	LastName        string `form:"last_name" json:"last_name"`
	Email           string `form:"email" json:"email"`
	Phone           string `form:"phone" json:"phone"`
	Faculty         string `form:"faculty" json:"faculty"`
	StudyYear       string `form:"study_year" json:"study_year"`
	AcceptedPrivacy Consent `form:"accepted_rgpd" json:"accepted_rgpd"`
	AcceptedRules   Consent `form:"accepted_rules" json:"accepted_rules"`

	Text  domain.Document `form:"-" json:"text_pdf"`
	Proof domain.Document `form:"-" json:"proof_pdf"`
}

func (req *CandidateRegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.Required, notBlank, validation.Length(1, 255)),
		validation.Field(&req.LastName, validation.Required, notBlank, validation.Length(1, 255)),
		validation.Field(&req.Email, validation.Required, is.Email, validation.Length(1, 255)),
		validation.Field(&req.Phone, validation.Required, notBlank, validation.Length(1, 50)),
		validation.Field(&req.Faculty, validation.Required, validation.In(Faculties...)),
		validation.Field(&req.StudyYear, validation.In(StudyYears...)),
		validation.Field(&req.AcceptedPrivacy, validation.By(mustAccept)),
		validation.Field(&req.AcceptedRules, validation.By(mustAccept)),
		validation.Field(&req.Text, validation.By(documentOf(contentTypePDF))),
		validation.Field(&req.Proof, validation.By(documentOf(proofContentTypes...))),
	)
}

// FullName joins the trimmed first and last names.
func (req *CandidateRegistrationRequest) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName))
}

func (req *CandidateRegistrationRequest) TrimmedPhone() string {
	return strings.TrimSpace(req.Phone)
}

// NormalizedEmail is the form under which candidate emails are stored and
// compared.
func (req *CandidateRegistrationRequest) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(req.Email))
}

func documentOf(contentTypes ...string) validation.RuleFunc {
	return func(value interface{}) error {
		doc, _ := value.(domain.Document)
		if len(doc.Data) == 0 {
			return errEmptyDocument
		}
		for _, ct := range contentTypes {
			if doc.ContentType == ct {
				return nil
			}
		}

		return fmt.Errorf("unsupported file type %q, expected one of %s", doc.ContentType, strings.Join(contentTypes, ", "))
	}
}

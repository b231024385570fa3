package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/vietanh2810/eloquence-api/internal/domain"
)

const maxCapacity = 100000

// UpdateSettingsRequest replaces every editable setting at once. Empty end
// times clear the deadline.
type UpdateSettingsRequest struct {
	EventTitle       string `json:"event_title"`
	EventTheme       string `json:"event_theme"`
	EventDate        string `json:"event_date"`
	EventLocation    string `json:"event_location"`
	InstagramURL     string `json:"instagram_url"`
	PrivacyPolicyURL string `json:"privacy_policy_url"`
	RulesURL         string `json:"rules_url"`

	SpectatorCapacity             *int       `json:"spectator_capacity"`
	SpectatorRegistrationsEnabled bool       `json:"spectator_registrations_enabled"`
	SpectatorRegistrationsEndAt   *time.Time `json:"spectator_registrations_end_at"`
	SpectatorCustomFormEnabled    bool       `json:"spectator_custom_form_enabled"`
	SpectatorCustomFormURL        string     `json:"spectator_custom_form_url"`

	CandidateCapacity             *int       `json:"candidate_capacity"`
	CandidateRegistrationsEnabled bool       `json:"candidate_registrations_enabled"`
	CandidateRegistrationsEndAt   *time.Time `json:"candidate_registrations_end_at"`
	CandidateCustomFormEnabled    bool       `json:"candidate_custom_form_enabled"`
	CandidateCustomFormURL        string     `json:"candidate_custom_form_url"`
}

func (req *UpdateSettingsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventTitle, validation.Length(0, 255)),
		validation.Field(&req.EventTheme, validation.Length(0, 255)),
		validation.Field(&req.EventDate, validation.Length(0, 255)),
		validation.Field(&req.EventLocation, validation.Length(0, 255)),
		validation.Field(&req.InstagramURL, is.URL, validation.Length(0, 255)),
		validation.Field(&req.PrivacyPolicyURL, is.URL, validation.Length(0, 2000)),
		validation.Field(&req.RulesURL, is.URL, validation.Length(0, 2000)),
		validation.Field(&req.SpectatorCapacity, validation.NotNil, validation.Min(0), validation.Max(maxCapacity)),
		validation.Field(&req.CandidateCapacity, validation.NotNil, validation.Min(0), validation.Max(maxCapacity)),
		validation.Field(&req.SpectatorCustomFormURL, is.URL, validation.Length(0, 2000),
			validation.By(requiredWhen(req.SpectatorCustomFormEnabled))),
		validation.Field(&req.CandidateCustomFormURL, is.URL, validation.Length(0, 2000),
			validation.By(requiredWhen(req.CandidateCustomFormEnabled))),
	)
}

// Apply copies the request onto current, keeping identity and timestamps.
func (req *UpdateSettingsRequest) Apply(current domain.EventSettings) domain.EventSettings {
	updated := current

	updated.EventTitle = req.EventTitle
	updated.EventTheme = req.EventTheme
	updated.EventDate = req.EventDate
	updated.EventLocation = req.EventLocation
	updated.InstagramURL = req.InstagramURL
	updated.PrivacyPolicyURL = req.PrivacyPolicyURL
	updated.RulesURL = req.RulesURL

	if req.SpectatorCapacity != nil {
		updated.SpectatorCapacity = *req.SpectatorCapacity
	}
	updated.SpectatorRegistrationsEnabled = req.SpectatorRegistrationsEnabled
	updated.SpectatorRegistrationsEndAt = req.SpectatorRegistrationsEndAt
	updated.SpectatorCustomFormEnabled = req.SpectatorCustomFormEnabled
	updated.SpectatorCustomFormURL = req.SpectatorCustomFormURL

	if req.CandidateCapacity != nil {
		updated.CandidateCapacity = *req.CandidateCapacity
	}
	updated.CandidateRegistrationsEnabled = req.CandidateRegistrationsEnabled
	updated.CandidateRegistrationsEndAt = req.CandidateRegistrationsEndAt
	updated.CandidateCustomFormEnabled = req.CandidateCustomFormEnabled
	updated.CandidateCustomFormURL = req.CandidateCustomFormURL

	return updated
}

func requiredWhen(condition bool) validation.RuleFunc {
	return func(value interface{}) error {
		if !condition {
			return nil
		}

		return validation.Validate(value, validation.Required)
	}
}

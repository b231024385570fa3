package domain

import "time"

const (
	DefaultSettingsKey = "default"

	DefaultSpectatorCapacity = 200
	DefaultCandidateCapacity = 40
)

type EventSettings struct {
	ID  uint   `json:"id"`
	Key string `json:"key"`

	EventTitle       string `json:"event_title"`
	EventTheme       string `json:"event_theme"`
	EventDate        string `json:"event_date"`
	EventLocation    string `json:"event_location"`
	InstagramURL     string `json:"instagram_url"`
	PrivacyPolicyURL string `json:"privacy_policy_url"`
	RulesURL         string `json:"rules_url"`

	SpectatorCapacity             int        `json:"spectator_capacity"`
	SpectatorRegistrationsEnabled bool       `json:"spectator_registrations_enabled"`
	SpectatorRegistrationsEndAt   *time.Time `json:"spectator_registrations_end_at"`
	SpectatorCustomFormEnabled    bool       `json:"spectator_custom_form_enabled"`
	SpectatorCustomFormURL        string     `json:"spectator_custom_form_url"`

	CandidateCapacity             int        `json:"candidate_capacity"`
	CandidateRegistrationsEnabled bool       `json:"candidate_registrations_enabled"`
	CandidateRegistrationsEndAt   *time.Time `json:"candidate_registrations_end_at"`
	CandidateCustomFormEnabled    bool       `json:"candidate_custom_form_enabled"`
	CandidateCustomFormURL        string     `json:"candidate_custom_form_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultEventSettings is the row written by the bootstrap when none exists.
func DefaultEventSettings() EventSettings {
	return EventSettings{
		Key:                           DefaultSettingsKey,
		SpectatorCapacity:             DefaultSpectatorCapacity,
		SpectatorRegistrationsEnabled: true,
		CandidateCapacity:             DefaultCandidateCapacity,
		CandidateRegistrationsEnabled: true,
	}
}

// RegistrationsOpen reports whether the stored flag is set and the optional
// deadline has not been reached.
func (s EventSettings) RegistrationsOpen(pool Pool, now time.Time) bool {
	switch pool {
	case PoolSpectators:
		return open(s.SpectatorRegistrationsEnabled, s.SpectatorRegistrationsEndAt, now)
	case PoolCandidates:
		return open(s.CandidateRegistrationsEnabled, s.CandidateRegistrationsEndAt, now)
	default:
		return false
	}
}

// ExternalFormURL returns the URL of the external form replacing the built-in
// one for the pool, or "" when the built-in form is in use.
func (s EventSettings) ExternalFormURL(pool Pool) string {
	switch pool {
	case PoolSpectators:
		if s.SpectatorCustomFormEnabled {
			return s.SpectatorCustomFormURL
		}
	case PoolCandidates:
		if s.CandidateCustomFormEnabled {
			return s.CandidateCustomFormURL
		}
	}

	return ""
}

func (s EventSettings) Capacity(pool Pool) int {
	switch pool {
	case PoolSpectators:
		return s.SpectatorCapacity
	case PoolCandidates:
		return s.CandidateCapacity
	default:
		return 0
	}
}

func open(enabled bool, endAt *time.Time, now time.Time) bool {
	if !enabled {
		return false
	}

	return endAt == nil || now.Before(*endAt)
}

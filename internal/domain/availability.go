package domain

import "time"

// Pool is a capacity pool against which admissions are serialized.
type Pool string

const (
	PoolSpectators Pool = "spectators"
	PoolCandidates Pool = "candidates"
)

type Availability struct {
	Pool         Pool   `json:"pool"`
	Capacity     int    `json:"capacity"`
	Used         int    `json:"used"`
	Remaining    int    `json:"remaining"`
	Open         bool   `json:"open"`
	ExternalForm string `json:"external_form_url,omitempty"`
}

func NewAvailability(settings EventSettings, pool Pool, used int, now time.Time) Availability {
	capacity := settings.Capacity(pool)
	remaining := capacity - used
	if remaining < 0 {
		remaining = 0
	}

	return Availability{
		Pool:         pool,
		Capacity:     capacity,
		Used:         used,
		Remaining:    remaining,
		Open:         settings.RegistrationsOpen(pool, now),
		ExternalForm: settings.ExternalFormURL(pool),
	}
}

type RegistrationEventType string

const (
	RegistrationAdmitted RegistrationEventType = "registration.admitted"
	RegistrationDeleted  RegistrationEventType = "registration.deleted"
)

// RegistrationEvent is emitted after a registration was durably admitted or
// removed. Availability is the state of the pool right after the change.
// Seq follows the order in which changes were committed; a consumer holding
// a higher Seq for the same pool can ignore the event.
type RegistrationEvent struct {
	Seq            uint64                `json:"seq"`
	Type           RegistrationEventType `json:"type"`
	Pool           Pool                  `json:"pool"`
	RegistrationID uint                  `json:"registration_id"`
	FullName       string                `json:"full_name"`
	Email          string                `json:"email"`
	Units          int                   `json:"units"`
	Availability   Availability          `json:"availability"`
	OccurredAt     time.Time             `json:"occurred_at"`
}

type Dashboard struct {
	SeatsUsed           int `json:"seats_used"`
	SeatsRemaining      int `json:"seats_remaining"`
	CandidatesUsed      int `json:"candidates_used"`
	CandidatesRemaining int `json:"candidates_remaining"`
	FoodOptionsActive   int `json:"food_options_active"`
}

type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type Recap struct {
	Dashboard
	CandidatesByFaculty []GroupCount `json:"candidates_by_faculty"`
	CandidatesByYear    []GroupCount `json:"candidates_by_year"`
	FoodOptions         []FoodOption `json:"food_options"`
	TotalFoodOrdered    int          `json:"total_food_ordered"`
}

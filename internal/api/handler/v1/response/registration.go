package response

import "github.com/vietanh2810/eloquence-api/internal/domain"

type SpectatorRegistrationResponse struct {
	Registration domain.SpectatorRegistration `json:"registration"`
	Availability domain.Availability          `json:"availability"`
}

type CandidateRegistrationResponse struct {
	Registration domain.CandidateRegistration `json:"registration"`
	Availability domain.Availability          `json:"availability"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

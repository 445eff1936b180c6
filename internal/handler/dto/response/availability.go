package response

import "tripdesk/internal/usecase/queries"

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func FromAvailabilityResult(rm *queries.AvailabilityResult) *AvailabilityResponse {
	return &AvailabilityResponse{
		Available: rm.Available,
		Reason:    rm.Reason,
	}
}

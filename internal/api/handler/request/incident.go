package request

type CreateIncidentDTO struct {
	Description string `json:"description" validate:"required"`
	Severity    string `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	ImageURL    string `json:"imageUrl"`
}

type UpdateIncidentDTO struct {
	Status     *string `json:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
	Severity   *string `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	Resolution *string `json:"resolution"`
}

package response

import "time"

type IncidentResponseDTO struct {
	ID          uint       `json:"id"`
	Description string     `json:"description"`
	Severity    string     `json:"severity"`
	Status      string     `json:"status"`
	Resolution  string     `json:"resolution,omitempty"`
	ReportedBy  uint       `json:"reportedBy"`
	TeamID      uint       `json:"teamId"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
}

type IncidentStatsDTO struct {
	Total      int64            `json:"total"`
	BySeverity map[string]int64 `json:"bySeverity"`
}

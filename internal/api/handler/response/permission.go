package response

import "time"

type PermissionResponseDTO struct {
	ID              uint       `json:"id"`
	UserID          uint       `json:"userId"`
	RequesterName   string     `json:"requesterName,omitempty"`
	RequestType     string     `json:"requestType"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	RequestedDate   *time.Time `json:"requestedDate,omitempty"`
	RequestedHours  string     `json:"requestedHours,omitempty"`
	Status          string     `json:"status"`
	ManagerResponse string     `json:"managerResponse,omitempty"`
	ApprovedBy      uint       `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	Priority        string     `json:"priority"`
	IsUrgent        bool       `json:"isUrgent"`
	CreatedAt       time.Time  `json:"createdAt"`
}

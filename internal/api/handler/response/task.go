package response

import "time"

type TaskResponseDTO struct {
	ID                 uint       `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	AssignedTo         []uint     `json:"assignedTo"`
	AssignedBy         uint       `json:"assignedBy"`
	TeamID             uint       `json:"teamId"`
	Status             string     `json:"status"`
	Priority           string     `json:"priority"`
	DueDate            *time.Time `json:"dueDate"`
	StartedAt          *time.Time `json:"startedAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	EstimatedHours     *float64   `json:"estimatedHours,omitempty"`
	ActualHours        *float64   `json:"actualHours,omitempty"`
	Location           string     `json:"location,omitempty"`
	EquipmentNeeded    string     `json:"equipmentNeeded,omitempty"`
	IsUrgent           bool       `json:"isUrgent"`
	ProgressPercentage int        `json:"progressPercentage"`
	LastUpdate         string     `json:"lastUpdate,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

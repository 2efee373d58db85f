package request

import "time"

type CreateTaskDTO struct {
	Title           string     `json:"title" validate:"required"`
	Description     string     `json:"description"`
	AssignedTo      []uint     `json:"assignedTo" validate:"required,min=1"`
	Priority        string     `json:"priority" validate:"omitempty,oneof=urgent high normal low"`
	DueDate         *time.Time `json:"dueDate"`
	EstimatedHours  *float64   `json:"estimatedHours"`
	Location        string     `json:"location"`
	EquipmentNeeded string     `json:"equipmentNeeded"`
	IsUrgent        bool       `json:"isUrgent"`
}

type UpdateTaskDTO struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	AssignedTo      []uint     `json:"assignedTo"`
	Priority        *string    `json:"priority" validate:"omitempty,oneof=urgent high normal low"`
	DueDate         *time.Time `json:"dueDate"`
	EstimatedHours  *float64   `json:"estimatedHours"`
	Location        *string    `json:"location"`
	EquipmentNeeded *string    `json:"equipmentNeeded"`
	IsUrgent        *bool      `json:"isUrgent"`
}

type TaskStatusDTO struct {
	Status             string   `json:"status" validate:"required,oneof=upcoming ongoing completed on_hold cancelled"`
	ProgressPercentage *int     `json:"progressPercentage" validate:"omitempty,min=0,max=100"`
	ActualHours        *float64 `json:"actualHours"`
	LastUpdate         string   `json:"lastUpdate"`
}

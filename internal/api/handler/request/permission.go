package request

import "time"

type CreatePermissionDTO struct {
	RequestType    string     `json:"requestType" validate:"required,oneof=overtime vacation sick_leave special_access early_leave"`
	Title          string     `json:"title" validate:"required"`
	Description    string     `json:"description" validate:"required"`
	RequestedDate  *time.Time `json:"requestedDate"`
	RequestedHours string     `json:"requestedHours"`
	Priority       string     `json:"priority" validate:"omitempty,oneof=urgent high normal low"`
	IsUrgent       bool       `json:"isUrgent"`
}

type DecidePermissionDTO struct {
	Status          string `json:"status" validate:"required,oneof=approved rejected under_review"`
	ManagerResponse string `json:"managerResponse"`
}

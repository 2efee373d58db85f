package response

import "time"

type AttendanceResponseDTO struct {
	ID           uint       `json:"id"`
	UserID       uint       `json:"userId"`
	CheckInTime  *time.Time `json:"checkInTime"`
	CheckOutTime *time.Time `json:"checkOutTime"`
	BreakStart   *time.Time `json:"breakStart,omitempty"`
	BreakEnd     *time.Time `json:"breakEnd,omitempty"`
	Location     string     `json:"location,omitempty"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes,omitempty"`
	WorkHours    string     `json:"workHours,omitempty"`
}

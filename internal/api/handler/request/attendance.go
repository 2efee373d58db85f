package request

type CheckInDTO struct {
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

type CheckOutDTO struct {
	Notes string `json:"notes"`
}

package response

type UserResponseDTO struct {
	ID       uint   `json:"id"`
	TeamID   uint   `json:"teamId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	Actif    bool   `json:"actif"`
}

type AuthResponseDTO struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken"`
	ForceReset   bool            `json:"forceReset"`
	User         UserResponseDTO `json:"user"`
}

type PresenceResponseDTO struct {
	UserID         uint   `json:"userId"`
	FullName       string `json:"fullName"`
	Role           string `json:"role"`
	Online         bool   `json:"online"`
	LastTransition string `json:"lastTransition,omitempty"`
}

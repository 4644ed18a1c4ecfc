package models

// LoginRequest is the credentials body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the token pair plus a snapshot of the account, enough
// to seed a session without a second profile fetch.
type LoginResponse struct {
	Token        string `json:"token"`
	Type         string `json:"type,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	UserID       int64  `json:"userId"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         string `json:"role"`
	Phone        string `json:"phone,omitempty"`
}

// RegisterRequest creates a customer or technician account. Description and
// Specialties are only meaningful when Role is TECHNICIAN.
type RegisterRequest struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Phone       string   `json:"phone"`
	Role        Role     `json:"role"`
	Description string   `json:"description,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

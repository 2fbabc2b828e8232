package models

// User represents an account that can authenticate against the API.
// The password is stored only as a bcrypt hash.
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Email        string `json:"email"` // globally unique
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
	PhoneNo      string `json:"phone_no,omitempty"`
}

package entity

// User is the normalized identity stored in the session, either the profile
// returned by the OAuth provider or the fixed guest placeholder.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	IsGuest bool   `json:"is_guest"`
}

package models

// Credentials holds the backend project URL and keys.
type Credentials struct {
	ProjectURL  string
	AnonKey     string
	AccessToken string // optional; present when the user is signed in
}

// IsValid returns true if both ProjectURL and AnonKey are non-empty.
func (c Credentials) IsValid() bool {
	return c.ProjectURL != "" && c.AnonKey != ""
}

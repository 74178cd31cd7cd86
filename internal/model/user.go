package model

// UserProfile is a registered user, keyed by email in storage.
// PasswordHash is produced by the auth package's verifier; the raw
// password is never persisted.
type UserProfile struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}

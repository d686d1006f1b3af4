package models

import "time"

// User is an identity record. Username and the profile fields are
// optional at registration.
type User struct {
	ID           string
	Email        string
	Username     *string
	PasswordHash string
	FirstName    *string
	LastName     *string
	CreatedAt    time.Time
	LastLogin    *time.Time
}

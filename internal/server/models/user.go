// Package models holds server-side domain records.
package models

import "time"

// User is an account record. ID is assigned by the store on creation and
// never changes. PasswordHash is an opaque salted digest, never the raw
// password.
type User struct {
	ID           int64
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}

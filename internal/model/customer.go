package model

import "time"

// Customer is a record of the in-memory customer registry.
//
// Records are append-only: once created nothing about them changes.
type Customer struct {
	ID          int       `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}

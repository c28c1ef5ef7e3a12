package repository

import (
	"errors"
	"time"
)

// ErrDuplicateID is returned when a contact is created with an ID that is already stored.
var ErrDuplicateID = errors.New("repository: duplicate contact id")

// Contact represents a contact row.
type Contact struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
}

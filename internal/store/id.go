package store

import "github.com/google/uuid"

// newID generates ids for catalog entities. Orders use their own 6-digit
// numeric scheme instead.
func newID() string {
	return uuid.NewString()
}

package utils

import "github.com/google/uuid"

// UUIDGenerator mints process-unique identifiers for records that arrive
// without one (track points and catches created offline). UUIDv7 is
// preferred because its time-ordered prefix keeps primary key indexes
// append-mostly; v4 is the fallback if the system entropy source fails.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

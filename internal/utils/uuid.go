package utils

import "github.com/google/uuid"

// UUIDGenerator issues record change tags. Tags are UUIDv7 so they sort by
// creation time, which keeps server logs readable.
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

package resettoken

import (
	"authsvc/internal/core/domain/user"

	"github.com/google/uuid"
)

// UUID generates version 4 UUID reset tokens (122 bits of entropy).
type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) GenerateResetToken() user.ResetToken {
	return user.ResetToken(uuid.New().String())
}

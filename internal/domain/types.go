package domain

import (
	"time"

	"github.com/google/uuid"
)

type TopicID string
type MessageID string

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

type Timestamp = time.Time

// NewID mints a time-ordered opaque identifier.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the entropy source does; fall back to random.
		return uuid.NewString()
	}
	return id.String()
}

package uuid

import (
	"github.com/google/uuid"
)

// UUID is a thin wrapper around google's uuid.UUID used to correlate a batch run
// across log lines and queued tasks.
type UUID uuid.UUID

// NewUUID creates a new random UUID.
func NewUUID() UUID {
	return UUID(uuid.New())
}

// Parse parses the canonical string form.
func Parse(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, err
	}
	return UUID(id), nil
}

func (u UUID) String() string {
	return uuid.UUID(u).String()
}

func (u UUID) IsZero() bool {
	return uuid.UUID(u) == uuid.Nil
}

func (u UUID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(u).String()), nil
}

func (u *UUID) UnmarshalText(text []byte) error {
	parsed, err := uuid.ParseBytes(text)
	if err != nil {
		return err
	}
	*u = UUID(parsed)
	return nil
}

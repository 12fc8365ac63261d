package models

import (
	"time"

	"github.com/google/uuid"
)

// Start представляет стартовую волну внутри гонки.
type Start struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Name   string    `json:"name" db:"name"`
	Time   time.Time `json:"time" db:"time"`
	RaceID uuid.UUID `json:"race_id" db:"race_id"`

	Categories []Category `json:"categories,omitempty" db:"-"`
}

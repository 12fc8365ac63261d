package models

import (
	"time"

	"github.com/google/uuid"
)

// Competition представляет соревнование (событие верхнего уровня).
type Competition struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Date         time.Time `json:"date" db:"date"`
	Location     string    `json:"location" db:"location"`
	Announcement string    `json:"announcement" db:"announcement"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Races []Race `json:"races,omitempty" db:"-"`
}

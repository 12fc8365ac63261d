package models

import "github.com/google/uuid"

// Category представляет возрастную/гендерную группу внутри старта.
// Диапазон возрастов включительный с обеих сторон.
type Category struct {
	ID      uuid.UUID `json:"id" db:"id"`
	Label   string    `json:"label" db:"label"`
	FromAge int       `json:"from_age" db:"from_age"`
	ToAge   int       `json:"to_age" db:"to_age"`
	Male    bool      `json:"male" db:"male"`
	StartID uuid.UUID `json:"start_id" db:"start_id"`
}

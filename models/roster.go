package models

import (
	"time"

	"github.com/google/uuid"
)

// RosterParticipant — строка участника в стартовом протоколе.
// RaceID используется как ключ группировки при сборке протокола.
type RosterParticipant struct {
	ID            uuid.UUID `json:"-" db:"id"`
	FirstName     string    `json:"first_name" db:"first_name"`
	LastName      string    `json:"last_name" db:"last_name"`
	Club          *string   `json:"club,omitempty" db:"club"`
	BirthYear     int       `json:"birth_year" db:"birth_year"`
	StartTime     time.Time `json:"start_time" db:"start_time"`
	CategoryLabel string    `json:"category" db:"category_label"`
	RaceID        uuid.UUID `json:"-" db:"race_id"`
	RaceName      string    `json:"-" db:"race_name"`
}

// RosterEntry — участник с флагами принадлежности к особым зачётам.
// Порядок флагов совпадает с порядком RaceRoster.SpecialCategories.
type RosterEntry struct {
	RosterParticipant
	SpecialCategoryFlags []bool `json:"special_categories"`
}

// RaceRoster — протокол одной гонки: участники и особые зачёты гонки.
type RaceRoster struct {
	RaceName          string            `json:"race_name"`
	SpecialCategories []SpecialCategory `json:"special_categories"`
	Participants      []RosterEntry     `json:"participants"`
}

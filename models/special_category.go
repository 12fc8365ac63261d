package models

import "github.com/google/uuid"

// SpecialCategory — особый зачёт в рамках гонки (не старта):
// участник может быть заявлен в несколько таких зачётов сразу.
type SpecialCategory struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ShortName string    `json:"short_name" db:"short_name"`
	Name      string    `json:"name" db:"name"`
	RaceID    uuid.UUID `json:"race_id" db:"race_id"`
}

// SpecialCategoryLink — связь участника с особым зачётом.
type SpecialCategoryLink struct {
	ParticipantID     uuid.UUID `json:"participant_id" db:"participant_id"`
	SpecialCategoryID uuid.UUID `json:"special_category_id" db:"special_category_id"`
}

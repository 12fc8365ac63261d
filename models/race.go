package models

import "github.com/google/uuid"

// Race представляет гонку внутри соревнования.
type Race struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	CompetitionID uuid.UUID `json:"competition_id" db:"competition_id"`

	Starts            []Start           `json:"starts,omitempty" db:"-"`
	SpecialCategories []SpecialCategory `json:"special_categories,omitempty" db:"-"`
}

// RaceWithAgeRange дополняет гонку минимальным и максимальным возрастом
// участников, вычисленным из её категорий. Используется для формы регистрации.
type RaceWithAgeRange struct {
	Race
	MinAge int `json:"min_age"`
	MaxAge int `json:"max_age"`
}

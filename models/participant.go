package models

import "github.com/google/uuid"

// Participant представляет зарегистрированного участника.
// Участник принадлежит ровно одной категории (и через неё старту,
// гонке и соревнованию).
type Participant struct {
	ID         uuid.UUID `json:"id" db:"id"`
	LastName   string    `json:"last_name" db:"last_name"`
	FirstName  string    `json:"first_name" db:"first_name"`
	Club       *string   `json:"club,omitempty" db:"club"`
	BirthYear  int       `json:"birth_year" db:"birth_year"`
	ConsentAGB bool      `json:"consent_agb" db:"consent_agb"`
	CategoryID uuid.UUID `json:"category_id" db:"category_id"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Category           *Category   `json:"category,omitempty" db:"-"`
	SpecialCategoryIDs []uuid.UUID `json:"special_category_ids,omitempty" db:"-"`
}

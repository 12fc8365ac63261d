package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed     = errors.New("validation failed")
	ErrConsentRequired      = errors.New("consent to the participation conditions is required")
	ErrNoCategoryForAge     = errors.New("no category configured for this age and gender on this race")
	ErrNameRequired         = errors.New("name is required")
	ErrInvalidAgeRange      = errors.New("category from_age must not exceed to_age")
	ErrInvalidBirthYear     = errors.New("birth year is out of range")
	ErrUploadsNotConfigured = errors.New("announcement uploads are not configured")

	// Ошибки аутентификации
	ErrAuthInvalidCredentials = errors.New("invalid user name or password")
	ErrUserNameTaken          = errors.New("user name is already taken")

	// Ошибки, специфичные для сущностей (дают больше контекста, чем ErrNotFound)
	ErrCompetitionNotFound     = errors.New("competition not found")
	ErrRaceNotFound            = errors.New("race not found")
	ErrStartNotFound           = errors.New("start not found")
	ErrCategoryNotFound        = errors.New("category not found")
	ErrSpecialCategoryNotFound = errors.New("special category not found")
	ErrParticipantNotFound     = errors.New("participant not found")
)

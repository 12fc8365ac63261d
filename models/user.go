package models

import "github.com/google/uuid"

// User — учётная запись администратора.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password"`
}

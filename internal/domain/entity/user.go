package entity

import "time"

// User usuario autenticado (owner de clientes, recordatorios y settings).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package models

import "time"

// Usuario is a registered account. Password always holds the bcrypt hash.
type Usuario struct {
	ID        string
	Nombre    string
	Apellido  string
	Celular   string
	Email     string
	Usuario   string
	Password  string
	CreatedAt time.Time
}

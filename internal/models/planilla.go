package models

import "time"

// RegistroPlanilla is one row of the payroll sheet. The typed columns are
// pointers so a value that failed conversion is stored as null.
type RegistroPlanilla struct {
	ID           string
	Nombre       string
	Apellido     string
	Sexo         string
	DNI          string
	EstadoCivil  string
	Deporte      string
	Sueldo       *float64
	FechaIngreso *time.Time
	NHijos       *int
	Profesion    string
}

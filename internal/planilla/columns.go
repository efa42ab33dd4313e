package planilla

import "strings"

// CSV headers, in file order.
const (
	ColNombre       = "Nombre"
	ColApellido     = "Apellido"
	ColSexo         = "SEXO (M/F)"
	ColDNI          = "DNI"
	ColEstadoCivil  = "ESTADO CIVIL"
	ColDeporte      = "DEPORTE"
	ColSueldo       = "SUELDO"
	ColFechaIngreso = "FECHA INGRESO"
	ColHijos        = "N° HIJOS"
	ColProfesion    = "PROFESIÓN"
)

var Headers = []string{
	ColNombre, ColApellido, ColSexo, ColDNI, ColEstadoCivil,
	ColDeporte, ColSueldo, ColFechaIngreso, ColHijos, ColProfesion,
}

// both the degree sign and the masculine ordinal show up as "N° / Nº"
var fieldNameCleaner = strings.NewReplacer(" ", "_", "(", "", ")", "", "°", "", "º", "")

// NormalizeFieldName turns a CSV header into the stored field name:
// lowercase, spaces to underscores, parentheses and the ordinal marker removed.
// "SEXO (M/F)" becomes "sexo_m/f" and "N° HIJOS" becomes "n_hijos".
func NormalizeFieldName(header string) string {
	return strings.ToLower(fieldNameCleaner.Replace(strings.TrimSpace(header)))
}

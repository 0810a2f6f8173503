package entity

// Actor identifica quién ejecuta la operación y sobre qué empresa (tenant).
// Se pasa explícitamente a cada caso de uso en lugar de leerlo del request.
type Actor struct {
	UserID    string
	CompanyID string
}

// Valid indica si el actor trae usuario y empresa.
func (a Actor) Valid() bool {
	return a.UserID != "" && a.CompanyID != ""
}

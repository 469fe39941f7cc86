package entity

import "time"

// Department representa un departamento de la organización: es la frontera de
// autorización del inventario (cada Part pertenece a exactamente uno).
type Department struct {
	ID        string
	Name      string
	Code      string // código corto único (ej. MANT, ELEC)
	Manager   string
	Location  string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

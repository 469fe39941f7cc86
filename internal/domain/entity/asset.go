package entity

import "time"

// Asset representa un equipo o activo de la instalación sobre el que se hace
// mantenimiento (una transacción o una orden de trabajo pueden referenciarlo).
type Asset struct {
	ID           string
	DepartmentID string
	AssetNumber  string // único
	Name         string
	Category     string
	Location     string
	Status       string // operational, under_maintenance, retired
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

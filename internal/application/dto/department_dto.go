package dto

import "time"

// CreateDepartmentRequest entrada para crear un departamento.
type CreateDepartmentRequest struct {
	Name     string `json:"name" validate:"required"`
	Code     string `json:"code" validate:"required,min=1,max=20"`
	Manager  string `json:"manager"`
	Location string `json:"location"`
}

// UpdateDepartmentRequest entrada para actualizar un departamento.
type UpdateDepartmentRequest struct {
	Name     *string `json:"name"`
	Manager  *string `json:"manager"`
	Location *string `json:"location"`
	Status   *string `json:"status"`
}

// DepartmentResponse salida de un departamento.
type DepartmentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Manager   string    `json:"manager"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DepartmentListResponse lista paginada de departamentos.
type DepartmentListResponse struct {
	Items []DepartmentResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

package dto

import "time"

// CreateAssetRequest entrada para crear un activo.
type CreateAssetRequest struct {
	AssetNumber string `json:"asset_number" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category"`
	Location    string `json:"location"`
}

// UpdateAssetRequest entrada para actualizar un activo.
type UpdateAssetRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Location *string `json:"location"`
	Status   *string `json:"status"`
}

// AssetResponse salida de un activo.
type AssetResponse struct {
	ID           string    `json:"id"`
	DepartmentID string    `json:"department_id"`
	AssetNumber  string    `json:"asset_number"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Location     string    `json:"location"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AssetListResponse lista paginada de activos.
type AssetListResponse struct {
	Items []AssetResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

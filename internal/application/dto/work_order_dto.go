package dto

import "time"

// CreateWorkOrderRequest entrada para crear una orden de trabajo.
type CreateWorkOrderRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	AssetID     string `json:"asset_id,omitempty"`
	Priority    string `json:"priority,omitempty"` // low, medium, high, critical
	AssignedTo  string `json:"assigned_to,omitempty"`
}

// UpdateWorkOrderRequest entrada para actualizar una orden de trabajo.
type UpdateWorkOrderRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	AssignedTo  *string `json:"assigned_to"`
	Status      *string `json:"status"`
}

// WorkOrderResponse salida de una orden de trabajo.
type WorkOrderResponse struct {
	ID           string     `json:"id"`
	DepartmentID string     `json:"department_id"`
	OrderNumber  string     `json:"order_number"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	AssetID      string     `json:"asset_id,omitempty"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	AssignedTo   string     `json:"assigned_to,omitempty"`
	CreatedBy    string     `json:"created_by"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// WorkOrderListResponse lista paginada de órdenes.
type WorkOrderListResponse struct {
	Items []WorkOrderResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

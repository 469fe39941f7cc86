package entity

import "time"

// Estados de una orden de trabajo.
const (
	WorkOrderStatusOpen       = "open"
	WorkOrderStatusInProgress = "in_progress"
	WorkOrderStatusCompleted  = "completed"
	WorkOrderStatusClosed     = "closed"
)

// WorkOrder representa un ticket/orden de trabajo de mantenimiento. Las salidas
// de repuestos (issue) suelen vincularse a una orden vía StockTransaction.WorkOrderID.
type WorkOrder struct {
	ID           string
	DepartmentID string
	OrderNumber  string // único
	Title        string
	Description  string
	AssetID      string
	Priority     string // low, medium, high, critical
	Status       string // ver WorkOrderStatus*
	AssignedTo   string
	CreatedBy    string
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

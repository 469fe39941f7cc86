package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartRequest entrada para crear un repuesto. Si Quantity > 0 se genera
// una entrada "initial" en el ledger con la cantidad de carga.
type CreatePartRequest struct {
	PartNumber    string          `json:"part_number" validate:"required,min=1,max=100"`
	SKU           string          `json:"sku" validate:"required,min=1,max=100"`
	MaterialCode  string          `json:"material_code"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Location      string          `json:"location"`
	Quantity      int64           `json:"quantity" validate:"min=0"`
	MinStockLevel int64           `json:"min_stock_level" validate:"min=0"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

// UpdatePartRequest entrada para actualizar metadatos de un repuesto.
// Quantity y los campos derivados no se tocan por aquí: solo vía movimientos.
type UpdatePartRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	Category      *string          `json:"category"`
	Location      *string          `json:"location"`
	MaterialCode  *string          `json:"material_code"`
	MinStockLevel *int64           `json:"min_stock_level" validate:"omitempty,min=0"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	Status        *string          `json:"status"`
}

// PartResponse salida de un repuesto.
type PartResponse struct {
	ID                  string          `json:"id"`
	DepartmentID        string          `json:"department_id"`
	PartNumber          string          `json:"part_number"`
	SKU                 string          `json:"sku"`
	MaterialCode        string          `json:"material_code"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	Category            string          `json:"category"`
	Location            string          `json:"location"`
	Quantity            int64           `json:"quantity"`
	MinStockLevel       int64           `json:"min_stock_level"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	TotalValue          decimal.Decimal `json:"total_value"`
	StockStatus         string          `json:"stock_status"`
	TotalConsumed       int64           `json:"total_consumed"`
	AverageMonthlyUsage decimal.Decimal `json:"average_monthly_usage"`
	LastUsedDate        *time.Time      `json:"last_used_date,omitempty"`
	Status              string          `json:"status"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// PartListResponse lista paginada de repuestos.
type PartListResponse struct {
	Items []PartResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock derivados de Quantity y MinStockLevel.
const (
	StockStatusInStock    = "in_stock"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// Part representa un repuesto almacenable del inventario de mantenimiento.
// Quantity solo se modifica por la vía atómica del motor de inventario
// (movimientos + ledger); las ediciones directas son solo de metadatos.
type Part struct {
	ID            string
	DepartmentID  string
	PartNumber    string // único
	SKU           string // único
	MaterialCode  string
	Name          string
	Description   string
	Category      string
	Location      string // ubicación física (bodega, estante)
	Quantity      int64  // unidades en mano, siempre >= 0
	MinStockLevel int64
	UnitPrice     decimal.Decimal
	TotalValue    decimal.Decimal // Quantity * UnitPrice, materializado
	StockStatus   string          // ver StockStatus*
	// Seguimiento de uso: acumulado de salidas y consumo mensual derivado.
	TotalConsumed       int64
	AverageMonthlyUsage decimal.Decimal
	LastUsedDate        *time.Time
	Status              string // active, inactive (soft-disable; nunca borrado duro con historial)
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

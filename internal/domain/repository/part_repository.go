package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
)

// StockUpdate agrupa los campos materializados que el motor de inventario
// escribe en una sola operación sobre el repuesto.
type StockUpdate struct {
	Quantity            int64
	TotalValue          decimal.Decimal
	StockStatus         string
	TotalConsumed       int64
	AverageMonthlyUsage decimal.Decimal
	LastUsedDate        *time.Time
}

// PartRepository define el puerto de persistencia para Part (DIP).
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y solo tiene sentido dentro
// de una transacción del TxRunner; UpdateStock es la única vía que toca Quantity.
type PartRepository interface {
	Create(part *entity.Part) error
	GetByID(id string) (*entity.Part, error)
	GetForUpdate(id string) (*entity.Part, error)
	GetByPartNumber(partNumber string) (*entity.Part, error)
	GetBySKU(sku string) (*entity.Part, error)
	Update(part *entity.Part) error
	UpdateStock(partID string, update StockUpdate) error
	ListByDepartment(departmentID string, limit, offset int) ([]*entity.Part, error)
	List(limit, offset int) ([]*entity.Part, error)
	Deactivate(id string) error
}

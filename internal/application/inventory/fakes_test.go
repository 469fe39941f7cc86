package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// memPartRepo repositorio de repuestos en memoria para pruebas.
type memPartRepo struct {
	parts map[string]*entity.Part
	// Errores inyectables por repuesto.
	failGetForUpdate map[string]error
	failUpdateStock  map[string]error
}

func newMemPartRepo(parts ...*entity.Part) *memPartRepo {
	r := &memPartRepo{
		parts:            make(map[string]*entity.Part),
		failGetForUpdate: make(map[string]error),
		failUpdateStock:  make(map[string]error),
	}
	for _, p := range parts {
		cp := *p
		r.parts[p.ID] = &cp
	}
	return r
}

func (r *memPartRepo) Create(part *entity.Part) error {
	if _, ok := r.parts[part.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *part
	r.parts[part.ID] = &cp
	return nil
}

func (r *memPartRepo) GetByID(id string) (*entity.Part, error) {
	p, ok := r.parts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPartRepo) GetForUpdate(id string) (*entity.Part, error) {
	if err := r.failGetForUpdate[id]; err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

func (r *memPartRepo) GetByPartNumber(partNumber string) (*entity.Part, error) {
	for _, p := range r.parts {
		if p.PartNumber == partNumber {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memPartRepo) GetBySKU(sku string) (*entity.Part, error) {
	for _, p := range r.parts {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memPartRepo) Update(part *entity.Part) error {
	if _, ok := r.parts[part.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *part
	r.parts[part.ID] = &cp
	return nil
}

func (r *memPartRepo) UpdateStock(partID string, update repository.StockUpdate) error {
	if err := r.failUpdateStock[partID]; err != nil {
		return err
	}
	p, ok := r.parts[partID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = update.Quantity
	p.TotalValue = update.TotalValue
	p.StockStatus = update.StockStatus
	p.TotalConsumed = update.TotalConsumed
	p.AverageMonthlyUsage = update.AverageMonthlyUsage
	p.LastUsedDate = update.LastUsedDate
	p.UpdatedAt = time.Now()
	return nil
}

func (r *memPartRepo) ListByDepartment(departmentID string, limit, offset int) ([]*entity.Part, error) {
	var out []*entity.Part
	for _, p := range r.parts {
		if p.DepartmentID == departmentID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (r *memPartRepo) List(limit, offset int) ([]*entity.Part, error) {
	var out []*entity.Part
	for _, p := range r.parts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (r *memPartRepo) Deactivate(id string) error {
	p, ok := r.parts[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = "inactive"
	return nil
}

func page(parts []*entity.Part, limit, offset int) []*entity.Part {
	if offset >= len(parts) {
		return nil
	}
	parts = parts[offset:]
	if limit > 0 && limit < len(parts) {
		parts = parts[:limit]
	}
	return parts
}

// memHistoryRepo ledger en memoria, append-only.
type memHistoryRepo struct {
	entries []*entity.InventoryHistory
	failing error
}

func newMemHistoryRepo() *memHistoryRepo { return &memHistoryRepo{} }

func (r *memHistoryRepo) Create(entry *entity.InventoryHistory) error {
	if r.failing != nil {
		return r.failing
	}
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *memHistoryRepo) ListByPart(partID string, limit, offset int) ([]*entity.InventoryHistory, error) {
	var out []*entity.InventoryHistory
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].PartID == partID {
			cp := *r.entries[i]
			out = append(out, &cp)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memHistoryRepo) CountByPart(partID string) (int, error) {
	n := 0
	for _, e := range r.entries {
		if e.PartID == partID {
			n++
		}
	}
	return n, nil
}

func (r *memHistoryRepo) SumChanges(partID string) (int64, error) {
	var sum int64
	for _, e := range r.entries {
		if e.PartID == partID {
			sum += e.QuantityChange
		}
	}
	return sum, nil
}

func (r *memHistoryRepo) ExistsForTransaction(partID, transactionID string) (bool, error) {
	for _, e := range r.entries {
		if e.PartID == partID && e.TransactionID == transactionID {
			return true, nil
		}
	}
	return false, nil
}

// memTxRunner ejecuta la función directamente contra los repos en memoria.
type memTxRunner struct {
	parts   *memPartRepo
	history *memHistoryRepo
}

func (t *memTxRunner) Run(ctx context.Context, fn func(repository.PartRepository, repository.InventoryHistoryRepository) error) error {
	return fn(t.parts, t.history)
}

var (
	_ repository.PartRepository             = (*memPartRepo)(nil)
	_ repository.InventoryHistoryRepository = (*memHistoryRepo)(nil)
	_ TxRunner                              = (*memTxRunner)(nil)
)

func testPart(id string, qty, minLevel int64) *entity.Part {
	return &entity.Part{
		ID:            id,
		PartNumber:    "PN-" + id,
		Name:          "Rodamiento " + id,
		SKU:           "SKU-" + id,
		DepartmentID:  "dept-1",
		Quantity:      qty,
		MinStockLevel: minLevel,
		UnitPrice:     decimal.NewFromFloat(12.50),
		TotalValue:    decimal.NewFromFloat(12.50).Mul(decimal.NewFromInt(qty)),
		StockStatus:   entity.StockStatusInStock,
		Status:        "active",
		CreatedAt:     time.Now().AddDate(0, -3, 0),
		UpdatedAt:     time.Now(),
	}
}

func testActor() entity.Actor {
	return entity.Actor{
		ID:           "user-1",
		Name:         "Carlos Mendoza",
		DepartmentID: "dept-1",
		Role:         entity.RoleDepartmentAdmin,
	}
}

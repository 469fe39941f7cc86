package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

var _ repository.InventoryHistoryRepository = (*InventoryHistoryRepo)(nil)

const historyColumns = `id, part_id, part_number, part_name, change_type, transaction_type,
		transaction_id, transaction_number, previous_quantity, quantity_change, new_quantity,
		reason, notes, cost, performed_by, performed_by_name, performed_at`

// InventoryHistoryRepo implementación del ledger sobre PostgreSQL (usable con
// pool o tx). La tabla es append-only: aquí no existen UPDATE ni DELETE.
type InventoryHistoryRepo struct {
	q Querier
}

// NewInventoryHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryHistoryRepository(q Querier) *InventoryHistoryRepo {
	return &InventoryHistoryRepo{q: q}
}

// Create persiste una entrada del ledger.
func (r *InventoryHistoryRepo) Create(entry *entity.InventoryHistory) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_history (` + historyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	txID := (*string)(nil)
	if entry.TransactionID != "" {
		txID = &entry.TransactionID
	}
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.PartID, entry.PartNumber, entry.PartName,
		entry.ChangeType, entry.TransactionType, txID, entry.TransactionNumber,
		entry.PreviousQuantity, entry.QuantityChange, entry.NewQuantity,
		entry.Reason, entry.Notes, entry.Cost,
		entry.PerformedBy, entry.PerformedByName, entry.PerformedAt,
	)
	if err != nil {
		return fmt.Errorf("create history entry: %w", err)
	}
	return nil
}

// ListByPart historial de un repuesto, más reciente primero, con paginación.
func (r *InventoryHistoryRepo) ListByPart(partID string, limit, offset int) ([]*entity.InventoryHistory, error) {
	query := `SELECT ` + historyColumns + `
		FROM inventory_history WHERE part_id = $1
		ORDER BY performed_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, partID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryHistory
	for rows.Next() {
		var e entity.InventoryHistory
		var txID *string
		if err := rows.Scan(
			&e.ID, &e.PartID, &e.PartNumber, &e.PartName,
			&e.ChangeType, &e.TransactionType, &txID, &e.TransactionNumber,
			&e.PreviousQuantity, &e.QuantityChange, &e.NewQuantity,
			&e.Reason, &e.Notes, &e.Cost,
			&e.PerformedBy, &e.PerformedByName, &e.PerformedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		if txID != nil {
			e.TransactionID = *txID
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// CountByPart total de entradas del ledger de un repuesto.
func (r *InventoryHistoryRepo) CountByPart(partID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM inventory_history WHERE part_id = $1`, partID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return count, nil
}

// SumChanges reproduce la cantidad materializada sumando todos los cambios del
// repuesto (oráculo de consistencia del ledger).
func (r *InventoryHistoryRepo) SumChanges(partID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(context.Background(),
		`SELECT coalesce(sum(quantity_change), 0) FROM inventory_history WHERE part_id = $1`,
		partID).Scan(&sum)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("sum history changes: %w", err)
	}
	return sum, nil
}

// ExistsForTransaction indica si la transacción ya dejó una entrada para el
// repuesto (reconciliación antes de reintentar una aplicación).
func (r *InventoryHistoryRepo) ExistsForTransaction(partID, transactionID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT exists(SELECT 1 FROM inventory_history WHERE part_id = $1 AND transaction_id = $2)`,
		partID, transactionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check history for transaction: %w", err)
	}
	return exists, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

const transactionColumns = `id, transaction_number, transaction_type, status, department_id,
		source_location, destination_location, supplier, recipient, asset_id, work_order_id,
		description, total_amount, total_items, total_quantity,
		created_by, created_by_name, approved_by, approved_by_name, approved_at,
		created_at, updated_at`

// StockTransactionRepo implementación sobre PostgreSQL. Las líneas viven en
// stock_transaction_items; para que cabecera y líneas se escriban juntas,
// Create debe correr con un Querier de transacción (vía TxRunner).
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create persiste la transacción con sus líneas.
func (r *StockTransactionRepo) Create(tx *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.TransactionNumber, tx.TransactionType, tx.Status, tx.DepartmentID,
		tx.SourceLocation, tx.DestinationLocation, tx.Supplier, tx.Recipient,
		nullable(tx.AssetID), nullable(tx.WorkOrderID),
		tx.Description, tx.TotalAmount, tx.TotalItems, tx.TotalQuantity,
		tx.CreatedBy, tx.CreatedByName, nullable(tx.ApprovedBy), tx.ApprovedByName, tx.ApprovedAt,
		tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		// asset_id / work_order_id referencian filas que pueden no existir
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referencia a activo u orden de trabajo inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	for i, item := range tx.Items {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO stock_transaction_items
				(transaction_id, line_no, part_id, part_number, part_name, quantity,
				 unit_cost, total_cost, from_location, to_location, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			tx.ID, i+1, item.PartID, item.PartNumber, item.PartName, item.Quantity,
			item.UnitCost, item.TotalCost, item.FromLocation, item.ToLocation, item.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert transaction item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una transacción con sus líneas.
func (r *StockTransactionRepo) GetByID(id string) (*entity.StockTransaction, error) {
	return r.getOne(`SELECT `+transactionColumns+` FROM stock_transactions WHERE id = $1`, id)
}

// GetByNumber obtiene una transacción por su consecutivo.
func (r *StockTransactionRepo) GetByNumber(transactionNumber string) (*entity.StockTransaction, error) {
	return r.getOne(`SELECT `+transactionColumns+` FROM stock_transactions WHERE transaction_number = $1`, transactionNumber)
}

func (r *StockTransactionRepo) getOne(query string, arg any) (*entity.StockTransaction, error) {
	tx, err := r.scanOne(r.q.QueryRow(context.Background(), query, arg))
	if err != nil || tx == nil {
		return tx, err
	}
	if err := r.loadItems(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *StockTransactionRepo) scanOne(row pgx.Row) (*entity.StockTransaction, error) {
	var t entity.StockTransaction
	var assetID, workOrderID, approvedBy *string
	err := row.Scan(
		&t.ID, &t.TransactionNumber, &t.TransactionType, &t.Status, &t.DepartmentID,
		&t.SourceLocation, &t.DestinationLocation, &t.Supplier, &t.Recipient,
		&assetID, &workOrderID,
		&t.Description, &t.TotalAmount, &t.TotalItems, &t.TotalQuantity,
		&t.CreatedBy, &t.CreatedByName, &approvedBy, &t.ApprovedByName, &t.ApprovedAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transaction: %w", err)
	}
	if assetID != nil {
		t.AssetID = *assetID
	}
	if workOrderID != nil {
		t.WorkOrderID = *workOrderID
	}
	if approvedBy != nil {
		t.ApprovedBy = *approvedBy
	}
	return &t, nil
}

func (r *StockTransactionRepo) loadItems(tx *entity.StockTransaction) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT part_id, part_number, part_name, quantity, unit_cost, total_cost,
		       from_location, to_location, notes
		FROM stock_transaction_items WHERE transaction_id = $1 ORDER BY line_no`, tx.ID)
	if err != nil {
		return fmt.Errorf("list transaction items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.TransactionItem
		if err := rows.Scan(&it.PartID, &it.PartNumber, &it.PartName, &it.Quantity,
			&it.UnitCost, &it.TotalCost, &it.FromLocation, &it.ToLocation, &it.Notes); err != nil {
			return fmt.Errorf("scan transaction item: %w", err)
		}
		tx.Items = append(tx.Items, it)
	}
	return rows.Err()
}

// Update persiste estado, aprobación y totales; las líneas y el tipo son
// inmutables después de crear.
func (r *StockTransactionRepo) Update(tx *entity.StockTransaction) error {
	query := `
		UPDATE stock_transactions SET status = $2, description = $3,
			total_amount = $4, total_items = $5, total_quantity = $6,
			approved_by = $7, approved_by_name = $8, approved_at = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.Status, tx.Description,
		tx.TotalAmount, tx.TotalItems, tx.TotalQuantity,
		nullable(tx.ApprovedBy), tx.ApprovedByName, tx.ApprovedAt, tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByDepartment lista transacciones de un departamento, opcionalmente por estado.
func (r *StockTransactionRepo) ListByDepartment(departmentID, status string, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM stock_transactions WHERE department_id = $1`
	args := []any{departmentID}
	pos := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(query, args...)
}

// List lista transacciones de todos los departamentos (superadmin).
func (r *StockTransactionRepo) List(status string, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM stock_transactions`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(query, args...)
}

func (r *StockTransactionRepo) list(query string, args ...any) ([]*entity.StockTransaction, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		tx, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, tx := range list {
		if err := r.loadItems(tx); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Delete borra la transacción y sus líneas (solo draft/pending; la regla la
// valida el caso de uso, aquí solo se ejecuta).
func (r *StockTransactionRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_transaction_items WHERE transaction_id = $1`, id); err != nil {
		return fmt.Errorf("delete transaction items: %w", err)
	}
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// nullable convierte "" a NULL para columnas con FK opcional.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

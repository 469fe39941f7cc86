package repository

import "github.com/jhoicas/Mantenimiento-api/internal/domain/entity"

// StockTransactionRepository define el puerto de persistencia para
// StockTransaction y sus líneas (DIP).
type StockTransactionRepository interface {
	Create(tx *entity.StockTransaction) error
	GetByID(id string) (*entity.StockTransaction, error)
	GetByNumber(transactionNumber string) (*entity.StockTransaction, error)
	// Update persiste estado, aprobación y totales; los Items y el tipo son
	// inmutables después de crear.
	Update(tx *entity.StockTransaction) error
	ListByDepartment(departmentID, status string, limit, offset int) ([]*entity.StockTransaction, error)
	List(status string, limit, offset int) ([]*entity.StockTransaction, error)
	Delete(id string) error
}

package repository

import "github.com/jhoicas/Mantenimiento-api/internal/domain/entity"

// WorkOrderRepository define el puerto de persistencia para WorkOrder (DIP).
type WorkOrderRepository interface {
	Create(order *entity.WorkOrder) error
	GetByID(id string) (*entity.WorkOrder, error)
	ListByDepartment(departmentID, status string, limit, offset int) ([]*entity.WorkOrder, error)
	Update(order *entity.WorkOrder) error
}

package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Mantenimiento-api/internal/application/dto"
	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// WorkOrderUseCase órdenes de trabajo de mantenimiento. Las salidas de
// repuestos se vinculan a una orden vía StockTransaction.WorkOrderID.
type WorkOrderUseCase struct {
	orderRepo repository.WorkOrderRepository
	assetRepo repository.AssetRepository
}

// NewWorkOrderUseCase construye el caso de uso.
func NewWorkOrderUseCase(orderRepo repository.WorkOrderRepository, assetRepo repository.AssetRepository) *WorkOrderUseCase {
	return &WorkOrderUseCase{orderRepo: orderRepo, assetRepo: assetRepo}
}

// Create crea una orden en open, validando el activo si viene referenciado.
func (uc *WorkOrderUseCase) Create(actor entity.Actor, in dto.CreateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	priority := in.Priority
	switch priority {
	case "":
		priority = "medium"
	case "low", "medium", "high", "critical":
	default:
		return nil, domain.ErrInvalidInput
	}

	if in.AssetID != "" {
		asset, err := uc.assetRepo.GetByID(in.AssetID)
		if err != nil {
			return nil, err
		}
		if asset == nil {
			return nil, domain.ErrNotFound
		}
		if !actor.CanAccessDepartment(asset.DepartmentID) {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now()
	order := &entity.WorkOrder{
		ID:           uuid.New().String(),
		DepartmentID: actor.DepartmentID,
		OrderNumber:  newOrderNumber(now),
		Title:        in.Title,
		Description:  in.Description,
		AssetID:      in.AssetID,
		Priority:     priority,
		Status:       entity.WorkOrderStatusOpen,
		AssignedTo:   in.AssignedTo,
		CreatedBy:    actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return toWorkOrderResponse(order), nil
}

// GetByID obtiene una orden con el alcance del actor.
func (uc *WorkOrderUseCase) GetByID(actor entity.Actor, id string) (*dto.WorkOrderResponse, error) {
	order, err := uc.scoped(actor, id)
	if err != nil {
		return nil, err
	}
	return toWorkOrderResponse(order), nil
}

// List lista las órdenes del departamento del actor, opcionalmente por estado.
func (uc *WorkOrderUseCase) List(actor entity.Actor, status string, limit, offset int) (*dto.WorkOrderListResponse, error) {
	orders, err := uc.orderRepo.ListByDepartment(actor.DepartmentID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WorkOrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *toWorkOrderResponse(o))
	}
	return &dto.WorkOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update modifica una orden; al pasar a completed se estampa CompletedAt.
func (uc *WorkOrderUseCase) Update(actor entity.Actor, id string, in dto.UpdateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	order, err := uc.scoped(actor, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		order.Title = *in.Title
	}
	if in.Description != nil {
		order.Description = *in.Description
	}
	if in.Priority != nil {
		switch *in.Priority {
		case "low", "medium", "high", "critical":
			order.Priority = *in.Priority
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if in.AssignedTo != nil {
		order.AssignedTo = *in.AssignedTo
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.WorkOrderStatusOpen, entity.WorkOrderStatusInProgress,
			entity.WorkOrderStatusCompleted, entity.WorkOrderStatusClosed:
		default:
			return nil, domain.ErrInvalidInput
		}
		if *in.Status == entity.WorkOrderStatusCompleted && order.CompletedAt == nil {
			now := time.Now()
			order.CompletedAt = &now
		}
		order.Status = *in.Status
	}
	order.UpdatedAt = time.Now()

	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return toWorkOrderResponse(order), nil
}

func (uc *WorkOrderUseCase) scoped(actor entity.Actor, id string) (*entity.WorkOrder, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanAccessDepartment(order.DepartmentID) {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("WO-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.New().String()[:6]))
}

func toWorkOrderResponse(o *entity.WorkOrder) *dto.WorkOrderResponse {
	return &dto.WorkOrderResponse{
		ID:           o.ID,
		DepartmentID: o.DepartmentID,
		OrderNumber:  o.OrderNumber,
		Title:        o.Title,
		Description:  o.Description,
		AssetID:      o.AssetID,
		Priority:     o.Priority,
		Status:       o.Status,
		AssignedTo:   o.AssignedTo,
		CreatedBy:    o.CreatedBy,
		CompletedAt:  o.CompletedAt,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

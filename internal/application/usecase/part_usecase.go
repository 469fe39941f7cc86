package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenimiento-api/internal/application/dto"
	appinv "github.com/jhoicas/Mantenimiento-api/internal/application/inventory"
	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Mantenimiento-api/internal/domain/inventory"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// PartUseCase CRUD de repuestos. La cantidad solo se fija aquí en la creación
// (con su entrada initial en el ledger); después, todo cambio de stock pasa por
// el motor de inventario. Update es solo de metadatos.
type PartUseCase struct {
	partRepo repository.PartRepository
	txRunner appinv.TxRunner
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(partRepo repository.PartRepository, txRunner appinv.TxRunner) *PartUseCase {
	return &PartUseCase{partRepo: partRepo, txRunner: txRunner}
}

// Create crea el repuesto en el departamento del actor. Si la cantidad inicial
// es mayor que cero, el repuesto y su entrada initial del ledger se escriben en
// la misma transacción de BD.
func (uc *PartUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreatePartRequest) (*dto.PartResponse, error) {
	if in.Quantity < 0 || in.MinStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.partRepo.GetByPartNumber(in.PartNumber); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if existing, err := uc.partRepo.GetBySKU(in.SKU); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	part := &entity.Part{
		ID:            uuid.New().String(),
		DepartmentID:  actor.DepartmentID,
		PartNumber:    in.PartNumber,
		SKU:           in.SKU,
		MaterialCode:  in.MaterialCode,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Location:      in.Location,
		Quantity:      in.Quantity,
		MinStockLevel: in.MinStockLevel,
		UnitPrice:     in.UnitPrice,
		TotalValue:    in.UnitPrice.Mul(decimal.NewFromInt(in.Quantity)),
		StockStatus:   domaininv.StockStatusFor(in.Quantity, in.MinStockLevel),
		Status:        "active",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := uc.txRunner.Run(ctx, func(partRepo repository.PartRepository, historyRepo repository.InventoryHistoryRepository) error {
		if err := partRepo.Create(part); err != nil {
			return err
		}
		if part.Quantity == 0 {
			return nil
		}
		return historyRepo.Create(&entity.InventoryHistory{
			ID:               uuid.New().String(),
			PartID:           part.ID,
			PartNumber:       part.PartNumber,
			PartName:         part.Name,
			ChangeType:       entity.ChangeTypeInitial,
			PreviousQuantity: 0,
			QuantityChange:   part.Quantity,
			NewQuantity:      part.Quantity,
			Reason:           "Stock inicial",
			PerformedBy:      actor.ID,
			PerformedByName:  actor.Name,
			PerformedAt:      now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// GetByID obtiene un repuesto con el alcance del actor.
func (uc *PartUseCase) GetByID(actor entity.Actor, id string) (*dto.PartResponse, error) {
	part, err := uc.scoped(actor, id)
	if err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// List lista repuestos; superadmin ve todos los departamentos.
func (uc *PartUseCase) List(actor entity.Actor, limit, offset int) (*dto.PartListResponse, error) {
	var (
		parts []*entity.Part
		err   error
	)
	if actor.Role == entity.RoleSuperAdmin {
		parts, err = uc.partRepo.List(limit, offset)
	} else {
		parts, err = uc.partRepo.ListByDepartment(actor.DepartmentID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartResponse, 0, len(parts))
	for _, p := range parts {
		items = append(items, *toPartResponse(p))
	}
	return &dto.PartListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update modifica metadatos. Cantidad, valor total y estado de stock jamás se
// editan por aquí; si cambia MinStockLevel o UnitPrice se recalculan los
// derivados sin tocar la cantidad.
func (uc *PartUseCase) Update(actor entity.Actor, id string, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	part, err := uc.scoped(actor, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		part.Name = *in.Name
	}
	if in.Description != nil {
		part.Description = *in.Description
	}
	if in.Category != nil {
		part.Category = *in.Category
	}
	if in.Location != nil {
		part.Location = *in.Location
	}
	if in.MaterialCode != nil {
		part.MaterialCode = *in.MaterialCode
	}
	if in.MinStockLevel != nil {
		if *in.MinStockLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		part.MinStockLevel = *in.MinStockLevel
		part.StockStatus = domaininv.StockStatusFor(part.Quantity, part.MinStockLevel)
	}
	if in.UnitPrice != nil {
		part.UnitPrice = *in.UnitPrice
		part.TotalValue = in.UnitPrice.Mul(decimal.NewFromInt(part.Quantity))
	}
	if in.Status != nil {
		if *in.Status != "active" && *in.Status != "inactive" {
			return nil, domain.ErrInvalidInput
		}
		part.Status = *in.Status
	}
	part.UpdatedAt = time.Now()

	if err := uc.partRepo.Update(part); err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// Deactivate desactiva el repuesto (soft-disable). Con historial en el ledger
// nunca hay borrado duro.
func (uc *PartUseCase) Deactivate(actor entity.Actor, id string) error {
	if !actor.IsElevated() {
		return domain.ErrForbidden
	}
	if _, err := uc.scoped(actor, id); err != nil {
		return err
	}
	return uc.partRepo.Deactivate(id)
}

func (uc *PartUseCase) scoped(actor entity.Actor, id string) (*entity.Part, error) {
	part, err := uc.partRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanAccessDepartment(part.DepartmentID) {
		return nil, domain.ErrForbidden
	}
	return part, nil
}

func toPartResponse(p *entity.Part) *dto.PartResponse {
	return &dto.PartResponse{
		ID:                  p.ID,
		DepartmentID:        p.DepartmentID,
		PartNumber:          p.PartNumber,
		SKU:                 p.SKU,
		MaterialCode:        p.MaterialCode,
		Name:                p.Name,
		Description:         p.Description,
		Category:            p.Category,
		Location:            p.Location,
		Quantity:            p.Quantity,
		MinStockLevel:       p.MinStockLevel,
		UnitPrice:           p.UnitPrice,
		TotalValue:          p.TotalValue,
		StockStatus:         p.StockStatus,
		TotalConsumed:       p.TotalConsumed,
		AverageMonthlyUsage: p.AverageMonthlyUsage,
		LastUsedDate:        p.LastUsedDate,
		Status:              p.Status,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

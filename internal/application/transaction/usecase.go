package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenimiento-api/internal/application/dto"
	appinv "github.com/jhoicas/Mantenimiento-api/internal/application/inventory"
	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// TxRunner ejecuta fn con un repositorio de transacciones atado a una
// transacción de BD: la cabecera y sus líneas se escriben juntas o ninguna.
type TxRunner interface {
	RunStockTransaction(ctx context.Context, fn func(txRepo repository.StockTransactionRepository) error) error
}

// UseCase ciclo de vida de las transacciones de stock:
// draft → pending → approved → completed; draft|pending → cancelled.
// La compuerta de disponibilidad corre al aprobar salidas y los efectos de
// inventario se aplican exactamente en la arista approved→completed, que es
// lo que garantiza como-máximo-una-vez frente al orquestador sin guarda.
type UseCase struct {
	txRepo    repository.StockTransactionRepository
	txRunner  TxRunner
	partRepo  repository.PartRepository
	validator *appinv.AvailabilityValidator
	applyUC   *appinv.ApplyTransactionUseCase
	reverseUC *appinv.ReverseTransactionUseCase
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRepo repository.StockTransactionRepository,
	txRunner TxRunner,
	partRepo repository.PartRepository,
	validator *appinv.AvailabilityValidator,
	applyUC *appinv.ApplyTransactionUseCase,
	reverseUC *appinv.ReverseTransactionUseCase,
) *UseCase {
	return &UseCase{
		txRepo:    txRepo,
		txRunner:  txRunner,
		partRepo:  partRepo,
		validator: validator,
		applyUC:   applyUC,
		reverseUC: reverseUC,
	}
}

// Create crea una transacción en draft (o pending). Resuelve cada línea contra
// el repuesto (alcance incluido), materializa los totales y persiste cabecera
// y líneas en una sola transacción de BD.
func (uc *UseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if !entity.ValidTransactionType(in.TransactionType) {
		return nil, domain.ErrInvalidTransactionType
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.TransactionStatusDraft
	}
	if status != entity.TransactionStatusDraft && status != entity.TransactionStatusPending {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	tx := &entity.StockTransaction{
		ID:                  uuid.New().String(),
		TransactionNumber:   newTransactionNumber(now),
		TransactionType:     in.TransactionType,
		Status:              status,
		DepartmentID:        actor.DepartmentID,
		SourceLocation:      in.SourceLocation,
		DestinationLocation: in.DestinationLocation,
		Supplier:            in.Supplier,
		Recipient:           in.Recipient,
		AssetID:             in.AssetID,
		WorkOrderID:         in.WorkOrderID,
		Description:         in.Description,
		CreatedBy:           actor.ID,
		CreatedByName:       actor.Name,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	for _, itemIn := range in.Items {
		if in.TransactionType == entity.TransactionTypeAdjustment {
			if itemIn.Quantity == 0 {
				return nil, domain.ErrInvalidInput
			}
		} else if itemIn.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		part, err := uc.partRepo.GetByID(itemIn.PartID)
		if err != nil {
			return nil, err
		}
		if part == nil {
			return nil, domain.ErrNotFound
		}
		if !actor.CanAccessDepartment(part.DepartmentID) {
			return nil, domain.ErrForbidden
		}
		// Superadmin sin departamento propio: la transacción hereda el del repuesto.
		if tx.DepartmentID == "" {
			tx.DepartmentID = part.DepartmentID
		}

		qty := itemIn.Quantity
		if qty < 0 {
			qty = -qty
		}
		tx.Items = append(tx.Items, entity.TransactionItem{
			PartID:       part.ID,
			PartNumber:   part.PartNumber,
			PartName:     part.Name,
			Quantity:     itemIn.Quantity,
			UnitCost:     itemIn.UnitCost,
			TotalCost:    itemIn.UnitCost.Mul(decimal.NewFromInt(qty)),
			FromLocation: itemIn.FromLocation,
			ToLocation:   itemIn.ToLocation,
			Notes:        itemIn.Notes,
		})
	}
	tx.RecalcTotals()

	err := uc.txRunner.RunStockTransaction(ctx, func(txRepo repository.StockTransactionRepository) error {
		return txRepo.Create(tx)
	})
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(tx), nil
}

// GetByID obtiene una transacción con el alcance del actor.
func (uc *UseCase) GetByID(actor entity.Actor, id string) (*dto.TransactionResponse, error) {
	tx, err := uc.scoped(actor, id)
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(tx), nil
}

// List lista transacciones; superadmin ve todos los departamentos.
func (uc *UseCase) List(actor entity.Actor, status string, limit, offset int) (*dto.TransactionListResponse, error) {
	var (
		list []*entity.StockTransaction
		err  error
	)
	if actor.Role == entity.RoleSuperAdmin {
		list, err = uc.txRepo.List(status, limit, offset)
	} else {
		list, err = uc.txRepo.ListByDepartment(actor.DepartmentID, status, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		items = append(items, *toTransactionResponse(tx))
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Validate corre el pre-chequeo de disponibilidad sin cambiar nada.
func (uc *UseCase) Validate(actor entity.Actor, id string) (*dto.AvailabilityResponse, error) {
	tx, err := uc.scoped(actor, id)
	if err != nil {
		return nil, err
	}
	res := uc.validator.ValidateAvailability(tx)
	return &dto.AvailabilityResponse{Valid: res.Valid, Issues: res.Issues}, nil
}

// Transition mueve la transacción por el ciclo de vida. Aprobar y completar
// exigen alcance elevado; aprobar una salida exige pasar disponibilidad;
// completar aplica los efectos de inventario y reporta el lote.
func (uc *UseCase) Transition(ctx context.Context, actor entity.Actor, id, next string) (*dto.TransitionResponse, error) {
	tx, err := uc.scoped(actor, id)
	if err != nil {
		return nil, err
	}
	if !tx.CanTransition(next) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidState, tx.Status, next)
	}

	now := time.Now()
	var batch *appinv.BatchResult

	switch next {
	case entity.TransactionStatusApproved:
		if !actor.IsElevated() {
			return nil, domain.ErrForbidden
		}
		if res := uc.validator.ValidateAvailability(tx); !res.Valid {
			return nil, fmt.Errorf("%w: %s", domain.ErrInsufficientStock, strings.Join(res.Issues, "; "))
		}
		tx.ApprovedBy = actor.ID
		tx.ApprovedByName = actor.Name
		tx.ApprovedAt = &now

	case entity.TransactionStatusCompleted:
		if !actor.IsElevated() {
			return nil, domain.ErrForbidden
		}
		batch, err = uc.applyUC.ApplyTransaction(ctx, tx, actor)
		if err != nil {
			return nil, err
		}
		// Los efectos ya ocurrieron para las líneas que aplicaron: el estado
		// avanza igual ante fallo parcial (no hay atomicidad entre líneas) y
		// el lote reporta línea a línea qué falló y por qué.
	}

	tx.Status = next
	tx.UpdatedAt = now
	if err := uc.txRepo.Update(tx); err != nil {
		return nil, err
	}

	out := &dto.TransitionResponse{Transaction: *toTransactionResponse(tx)}
	if batch != nil {
		out.Batch = toBatchResponse(batch)
	}
	return out, nil
}

// CancelCompleted revierte una transacción completada y, solo si la reversa
// aplicó en su totalidad, la marca cancelled. Una completada jamás se cancela
// sin reversa.
func (uc *UseCase) CancelCompleted(ctx context.Context, actor entity.Actor, id string) (*dto.TransitionResponse, error) {
	if !actor.IsElevated() {
		return nil, domain.ErrForbidden
	}
	tx, err := uc.scoped(actor, id)
	if err != nil {
		return nil, err
	}

	batch, err := uc.reverseUC.ReverseTransaction(ctx, tx, actor)
	if err != nil {
		return nil, err
	}

	out := &dto.TransitionResponse{Batch: toBatchResponse(batch)}
	if batch.Success() {
		tx.Status = entity.TransactionStatusCancelled
		tx.UpdatedAt = time.Now()
		if err := uc.txRepo.Update(tx); err != nil {
			return nil, err
		}
	}
	out.Transaction = *toTransactionResponse(tx)
	return out, nil
}

// Delete borra una transacción que aún no afectó inventario. Solo actores de
// alcance elevado, y solo en draft o pending.
func (uc *UseCase) Delete(actor entity.Actor, id string) error {
	if !actor.IsElevated() {
		return domain.ErrForbidden
	}
	tx, err := uc.scoped(actor, id)
	if err != nil {
		return err
	}
	if !tx.IsDeletable() {
		return fmt.Errorf("%w: la transacción ya afectó inventario", domain.ErrInvalidState)
	}
	return uc.txRepo.Delete(id)
}

func (uc *UseCase) scoped(actor entity.Actor, id string) (*entity.StockTransaction, error) {
	tx, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanAccessDepartment(tx.DepartmentID) {
		return nil, domain.ErrForbidden
	}
	return tx, nil
}

// newTransactionNumber genera un consecutivo legible: ST-AAAAMMDD-xxxxxx.
func newTransactionNumber(now time.Time) string {
	return fmt.Sprintf("ST-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.New().String()[:6]))
}

func toTransactionResponse(tx *entity.StockTransaction) *dto.TransactionResponse {
	items := make([]dto.TransactionItemResponse, 0, len(tx.Items))
	for _, it := range tx.Items {
		items = append(items, dto.TransactionItemResponse{
			PartID:       it.PartID,
			PartNumber:   it.PartNumber,
			PartName:     it.PartName,
			Quantity:     it.Quantity,
			UnitCost:     it.UnitCost,
			TotalCost:    it.TotalCost,
			FromLocation: it.FromLocation,
			ToLocation:   it.ToLocation,
			Notes:        it.Notes,
		})
	}
	return &dto.TransactionResponse{
		ID:                  tx.ID,
		TransactionNumber:   tx.TransactionNumber,
		TransactionType:     tx.TransactionType,
		Status:              tx.Status,
		DepartmentID:        tx.DepartmentID,
		Items:               items,
		SourceLocation:      tx.SourceLocation,
		DestinationLocation: tx.DestinationLocation,
		Supplier:            tx.Supplier,
		Recipient:           tx.Recipient,
		AssetID:             tx.AssetID,
		WorkOrderID:         tx.WorkOrderID,
		Description:         tx.Description,
		TotalAmount:         tx.TotalAmount,
		TotalItems:          tx.TotalItems,
		TotalQuantity:       tx.TotalQuantity,
		CreatedBy:           tx.CreatedBy,
		CreatedByName:       tx.CreatedByName,
		ApprovedBy:          tx.ApprovedBy,
		ApprovedByName:      tx.ApprovedByName,
		ApprovedAt:          tx.ApprovedAt,
		CreatedAt:           tx.CreatedAt,
		UpdatedAt:           tx.UpdatedAt,
	}
}

func toBatchResponse(b *appinv.BatchResult) *dto.BatchResultResponse {
	out := &dto.BatchResultResponse{
		Success:      b.Success(),
		TotalUpdated: b.TotalUpdated,
		TotalFailed:  b.TotalFailed,
		Results:      make([]dto.ItemResultResponse, 0, len(b.Results)),
	}
	for _, r := range b.Results {
		item := dto.ItemResultResponse{
			PartID:      r.PartID,
			PartNumber:  r.PartNumber,
			Success:     r.Success(),
			NewQuantity: r.NewQuantity,
		}
		if r.Err != nil {
			item.Code = errorCode(r.Err)
			item.Message = r.Err.Error()
		}
		out.Results = append(out.Results, item)
	}
	return out
}

func errorCode(err error) string {
	switch {
	case appinv.IsInsufficientStock(err):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, domain.ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, domain.ErrInvalidTransactionType):
		return "INVALID_TYPE"
	}
	return "INTERNAL"
}

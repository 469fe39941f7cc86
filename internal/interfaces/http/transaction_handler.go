package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenimiento-api/internal/application/dto"
	"github.com/jhoicas/Mantenimiento-api/internal/application/transaction"
)

// TransactionHandler maneja las transacciones de stock (protegido).
type TransactionHandler struct {
	uc *transaction.UseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *transaction.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear transacción de stock
// @Description  Crea una transacción en draft (o pending). Crear nunca mueve
// @Description  inventario: los efectos se aplican al completar.
// @Tags         stock-transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "transaction_type, items, metadatos"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar transacciones de stock
// @Tags         stock-transactions
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "filtrar por estado"
// @Param        limit   query  int     false  "máximo por página (defecto 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/stock-transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	limit, offset := pageFrom(c)
	out, err := h.uc.List(GetActor(c), c.Query("status"), limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener transacción de stock
// @Tags         stock-transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "transaction ID"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetActor(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Pre-chequeo de disponibilidad
// @Description  Revisa línea a línea si una transacción de salida puede aplicarse
// @Description  con el stock actual, sin cambiar nada.
// @Tags         stock-transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "transaction ID"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-transactions/{id}/validate [get]
func (h *TransactionHandler) Validate(c *fiber.Ctx) error {
	out, err := h.uc.Validate(GetActor(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Transition godoc
// @Summary      Cambiar estado de la transacción
// @Description  Mueve la transacción por el ciclo draft → pending → approved →
// @Description  completed (draft|pending → cancelled). Aprobar una salida exige
// @Description  pasar disponibilidad; completar aplica los efectos de inventario
// @Description  y devuelve el resultado del lote, línea a línea.
// @Tags         stock-transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "transaction ID"
// @Param        body  body  dto.TransitionRequest  true  "status destino"
// @Success      200   {object}  dto.TransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-transactions/{id}/status [patch]
func (h *TransactionHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido"})
	}
	out, err := h.uc.Transition(c.Context(), GetActor(c), c.Params("id"), in.Status)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar transacción completada (con reversa)
// @Description  Revierte los efectos de inventario de una transacción completed
// @Description  y, si la reversa aplica en su totalidad, la marca cancelled.
// @Tags         stock-transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "transaction ID"
// @Success      200  {object}  dto.TransitionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-transactions/{id}/cancel [post]
func (h *TransactionHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.CancelCompleted(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar transacción
// @Description  Solo draft o pending: una transacción que ya afectó inventario
// @Description  no se borra, se cancela con reversa.
// @Tags         stock-transactions
// @Security     Bearer
// @Param        id  path  string  true  "transaction ID"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetActor(c), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package inventory

import (
	"fmt"

	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Mantenimiento-api/internal/domain/inventory"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// AvailabilityResult salida del pre-chequeo: válido solo si ningún ítem
// quedaría en negativo y todos los repuestos pudieron consultarse.
type AvailabilityResult struct {
	Valid  bool
	Issues []string
}

// AvailabilityValidator verifica, sin mutar nada, que una transacción de
// salida (issue, transfer_out, scrap) tenga stock suficiente en cada línea.
// Se usa como compuerta antes de permitir el paso a approved.
type AvailabilityValidator struct {
	partRepo repository.PartRepository
}

// NewAvailabilityValidator construye el validador.
func NewAvailabilityValidator(partRepo repository.PartRepository) *AvailabilityValidator {
	return &AvailabilityValidator{partRepo: partRepo}
}

// ValidateAvailability revisa cada línea de la transacción. Los tipos de
// entrada y adjustment pasan siempre. Un fallo de consulta (repuesto
// inexistente o error de BD) se reporta como issue: una validación que no se
// pudo resolver nunca se trata como válida.
func (v *AvailabilityValidator) ValidateAvailability(tx *entity.StockTransaction) AvailabilityResult {
	if tx == nil || !entity.IsOutbound(tx.TransactionType) {
		return AvailabilityResult{Valid: true}
	}

	var issues []string
	for _, item := range tx.Items {
		delta, err := domaininv.ComputeDelta(tx.TransactionType, item.Quantity)
		if err != nil {
			issues = append(issues, fmt.Sprintf("línea %s: %v", item.PartID, err))
			continue
		}
		part, err := v.partRepo.GetByID(item.PartID)
		if err != nil {
			issues = append(issues, fmt.Sprintf("no se pudo consultar el repuesto %s: %v", item.PartID, err))
			continue
		}
		if part == nil {
			issues = append(issues, fmt.Sprintf("repuesto %s no encontrado", item.PartID))
			continue
		}
		if part.Quantity+delta < 0 {
			issues = append(issues, fmt.Sprintf(
				"stock insuficiente para %s (%s): disponible %d, requerido %d",
				part.PartNumber, part.Name, part.Quantity, -delta,
			))
		}
	}
	return AvailabilityResult{Valid: len(issues) == 0, Issues: issues}
}

package inventory

import (
	"context"

	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es el alcance atómico por línea del motor de
// inventario: leer-calcular-escribir-anotar sin que otro update se intercale.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		partRepo repository.PartRepository,
		historyRepo repository.InventoryHistoryRepository,
	) error) error
}

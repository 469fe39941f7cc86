package inventory

import "github.com/jhoicas/Mantenimiento-api/internal/domain/entity"

// StockStatusFor deriva el estado de stock de un repuesto:
// out_of_stock si quantity == 0; low_stock si 0 < quantity <= minStockLevel;
// in_stock en cualquier otro caso.
func StockStatusFor(quantity, minStockLevel int64) string {
	switch {
	case quantity == 0:
		return entity.StockStatusOutOfStock
	case quantity <= minStockLevel:
		return entity.StockStatusLowStock
	}
	return entity.StockStatusInStock
}

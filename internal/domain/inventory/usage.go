package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// AverageMonthlyUsage deriva el consumo mensual promedio a partir del total
// consumido y la antigüedad del repuesto. Periodos menores a un mes cuentan
// como un mes completo para no inflar el promedio.
func AverageMonthlyUsage(totalConsumed int64, createdAt, now time.Time) decimal.Decimal {
	if totalConsumed <= 0 || !now.After(createdAt) {
		return decimal.Zero
	}
	months := decimal.NewFromFloat(now.Sub(createdAt).Hours() / (24 * 30))
	one := decimal.NewFromInt(1)
	if months.LessThan(one) {
		months = one
	}
	return decimal.NewFromInt(totalConsumed).Div(months).Round(2)
}

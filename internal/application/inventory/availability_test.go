package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
)

func TestValidateAvailability_OutboundWithEnoughStock(t *testing.T) {
	v := NewAvailabilityValidator(newMemPartRepo(testPart("p1", 10, 2)))
	tx := approvedTx(entity.TransactionTypeIssue, entity.TransactionItem{PartID: "p1", Quantity: 10})

	res := v.ValidateAvailability(tx)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Issues)
}

func TestValidateAvailability_FlagsOnlyTheShortItem(t *testing.T) {
	v := NewAvailabilityValidator(newMemPartRepo(
		testPart("p1", 10, 2),
		testPart("p2", 1, 2),
	))
	tx := approvedTx(entity.TransactionTypeIssue,
		entity.TransactionItem{PartID: "p1", PartNumber: "PN-p1", Quantity: 5},
		entity.TransactionItem{PartID: "p2", PartNumber: "PN-p2", Quantity: 3},
	)

	res := v.ValidateAvailability(tx)
	assert.False(t, res.Valid)
	require.Len(t, res.Issues, 1)
	assert.Contains(t, res.Issues[0], "PN-p2")
	assert.Contains(t, res.Issues[0], "disponible 1")
}

func TestValidateAvailability_InboundAlwaysPasses(t *testing.T) {
	// Las entradas no pueden dejar stock negativo; no hay nada que validar.
	v := NewAvailabilityValidator(newMemPartRepo())
	tx := approvedTx(entity.TransactionTypeReceipt, entity.TransactionItem{PartID: "desconocido", Quantity: 999})

	res := v.ValidateAvailability(tx)
	assert.True(t, res.Valid)
}

func TestValidateAvailability_MissingPartIsAnIssue(t *testing.T) {
	// Un fallo de consulta nunca se reporta como "sí hay stock".
	v := NewAvailabilityValidator(newMemPartRepo())
	tx := approvedTx(entity.TransactionTypeIssue, entity.TransactionItem{PartID: "fantasma", Quantity: 1})

	res := v.ValidateAvailability(tx)
	assert.False(t, res.Valid)
	require.Len(t, res.Issues, 1)
}

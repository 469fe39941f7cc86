package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
)

func newApplyFixture(parts ...*entity.Part) (*ApplyTransactionUseCase, *memPartRepo, *memHistoryRepo) {
	partRepo := newMemPartRepo(parts...)
	historyRepo := newMemHistoryRepo()
	uc := NewApplyTransactionUseCase(&memTxRunner{parts: partRepo, history: historyRepo})
	return uc, partRepo, historyRepo
}

func approvedTx(txType string, items ...entity.TransactionItem) *entity.StockTransaction {
	tx := &entity.StockTransaction{
		ID:                "tx-1",
		TransactionNumber: "ST-20260830-ABC123",
		TransactionType:   txType,
		Status:            entity.TransactionStatusApproved,
		DepartmentID:      "dept-1",
		Items:             items,
	}
	tx.RecalcTotals()
	return tx
}

func TestApplyTransaction_ReceiptIncreasesStock(t *testing.T) {
	uc, partRepo, historyRepo := newApplyFixture(testPart("p1", 10, 3))
	tx := approvedTx(entity.TransactionTypeReceipt, entity.TransactionItem{
		PartID: "p1", PartNumber: "PN-p1", Quantity: 5, TotalCost: decimal.NewFromInt(62),
	})

	batch, err := uc.ApplyTransaction(context.Background(), tx, testActor())
	require.NoError(t, err)
	require.True(t, batch.Success())
	assert.Equal(t, 1, batch.TotalUpdated)
	assert.Equal(t, int64(15), batch.Results[0].NewQuantity)

	part, _ := partRepo.GetByID("p1")
	assert.Equal(t, int64(15), part.Quantity)
	assert.Equal(t, entity.StockStatusInStock, part.StockStatus)
	assert.True(t, part.TotalValue.Equal(part.UnitPrice.Mul(decimal.NewFromInt(15))))

	entries, _ := historyRepo.ListByPart("p1", 10, 0)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(10), entries[0].PreviousQuantity)
	assert.Equal(t, int64(5), entries[0].QuantityChange)
	assert.Equal(t, int64(15), entries[0].NewQuantity)
	assert.Equal(t, entity.ChangeTypeTransaction, entries[0].ChangeType)
	assert.Equal(t, "tx-1", entries[0].TransactionID)
	assert.Equal(t, "Carlos Mendoza", entries[0].PerformedByName)
}

func TestApplyTransaction_IssueCrossesLowStockThreshold(t *testing.T) {
	uc, partRepo, _ := newApplyFixture(testPart("p1", 3, 5))
	tx := approvedTx(entity.TransactionTypeIssue, entity.TransactionItem{PartID: "p1", Quantity: 1})

	batch, err := uc.ApplyTransaction(context.Background(), tx, testActor())
	require.NoError(t, err)
	require.True(t, batch.Success())

	part, _ := partRepo.GetByID("p1")
	assert.Equal(t, int64(2), part.Quantity)
	assert.Equal(t, entity.StockStatusLowStock, part.StockStatus)
}

func TestApplyTransaction_IssueToZeroIsOutOfStock(t *testing.T) {
	uc, partRepo, _ := newApplyFixture(testPart("p1", 4, 2))
	tx := approvedTx(entity.TransactionTypeIssue, entity.TransactionItem{PartID: "p1", Quantity: 4})

	batch, err := uc.ApplyTransaction(context.Background(), tx, testActor())
	require.NoError(t, err)
	require.True(t, batch.Success())

	part, _ := partRepo.GetByID("p1")
	assert.Equal(t, int64(0), part.Quantity)
	assert.Equal(t, entity.StockStatusOutOfStock, part.StockStatus)
}

func TestApplyTransaction_InsufficientStockLeavesNoTrace(t *testing.T) {
	uc, partRepo, historyRepo := newApplyFixture(testPart("p1", 0, 2))
	tx := approvedTx(entity.TransactionTypeIssue, entity.TransactionItem{PartID: "p1", Quantity: 1})

	batch, err := uc.ApplyTransaction(context.Background(), tx, testActor())
	require.NoError(t, err)
	assert.False(t, batch.Success())
	assert.Equal(t, 1, batch.TotalFailed)
	assert.True(t, IsInsufficientStock(batch.Results[0].Err))
	assert.Contains(t, batch.Results[0].Err.Error(), "disponible 0")

	part, _ := partRepo.GetByID("p1")
	assert.Equal(t, int64(0), part.Quantity)
	count, _ := historyRepo.CountByPart("p1")
	assert.Zero(t, count)
}

func TestApplyTransaction_PartialFailureKeepsSucceededLines(t *testing.T) {
	uc, partRepo, historyRepo := newApplyFixture(testPart("p1", 10, 2), testPart("p2", 0, 2))
	tx := approvedTx(entity.TransactionTypeIssue,
		entity.TransactionItem{PartID: "p1", Quantity: 3},
		entity.TransactionItem{PartID: "p2", Quantity: 1},
	)

	batch, err := uc.ApplyTransaction(context.Background(), tx, testActor())
	require.NoError(t, err)
	assert.False(t, batch.Success())
	assert.Equal(t, 1, batch.TotalUpdated)
	assert.Equal(t, 1, batch.TotalFailed)

	// La línea que aplicó queda confirmada a pesar del fallo de la otra.
	p1, _ := partRepo.GetByID("p1")
	assert.Equal(t, int64(7), p1.Quantity)
	p2, _ := partRepo.GetByID("p2")
	assert.Equal(t, int64(0), p2.Quantity)

	c1, _ := historyRepo.CountByPart("p1")
	c2, _ := historyRepo.CountByPart("p2")
	assert.Equal(t, 1, c1)
	assert.Zero(t, c2)
}

func TestApplyTransaction_RejectsUnapprovedStatus(t *testing.T) {
	uc, _, _ := newApplyFixture(testPart("p1", 10, 2))
	for _, status := range []string{
		entity.TransactionStatusDraft,
		entity.TransactionStatusPending,
		entity.TransactionStatusCancelled,
	} {
		tx := approvedTx(entity.TransactionTypeReceipt, entity.TransactionItem{PartID: "p1", Quantity: 1})
		tx.Status = status

		_, err := uc.ApplyTransaction(context.Background(), tx, testActor())
		assert.ErrorIs(t, err, domain.ErrInvalidState, "status %s", status)
	}
}

func TestApplyTransaction_DepartmentScope(t *testing.T) {
	other := testPart("p1", 10, 2)
	other.DepartmentID = "dept-2"
	uc, partRepo, _ := newApplyFixture(other)
	tx := approvedTx(entity.TransactionTypeReceipt, entity.TransactionItem{PartID: "p1", Quantity: 5})

	batch, err := uc.ApplyTransaction(context.Background(), tx, testActor())
	require.NoError(t, err)
	assert.False(t, batch.Success())
	assert.ErrorIs(t, batch.Results[0].Err, domain.ErrForbidden)

	// El superadmin opera en cualquier departamento.
	admin := entity.Actor{ID: "root", Name: "Root", Role: entity.RoleSuperAdmin}
	batch, err = uc.ApplyTransaction(context.Background(), tx, admin)
	require.NoError(t, err)
	assert.True(t, batch.Success())
	part, _ := partRepo.GetByID("p1")
	assert.Equal(t, int64(15), part.Quantity)
}

func TestApplyTransaction_DoubleApplyDuplicatesEffect(t *testing.T) {
	// Sin guarda de idempotencia: aplicar dos veces la misma transacción duplica
	// el delta y deja dos entradas de ledger. El llamador reconcilia con
	// ExistsForTransaction.
	uc, partRepo, historyRepo := newApplyFixture(testPart("p1", 10, 2))
	tx := approvedTx(entity.TransactionTypeReceipt, entity.TransactionItem{PartID: "p1", Quantity: 5})

	_, err := uc.ApplyTransaction(context.Background(), tx, testActor())
	require.NoError(t, err)
	_, err = uc.ApplyTransaction(context.Background(), tx, testActor())
	require.NoError(t, err)

	part, _ := partRepo.GetByID("p1")
	assert.Equal(t, int64(20), part.Quantity)
	count, _ := historyRepo.CountByPart("p1")
	assert.Equal(t, 2, count)

	seen, _ := historyRepo.ExistsForTransaction("p1", "tx-1")
	assert.True(t, seen)
}

func TestApplyTransaction_AdjustmentKeepsSign(t *testing.T) {
	uc, partRepo, _ := newApplyFixture(testPart("p1", 10, 2))
	tx := approvedTx(entity.TransactionTypeAdjustment,
		entity.TransactionItem{PartID: "p1", Quantity: -4},
	)

	batch, err := uc.ApplyTransaction(context.Background(), tx, testActor())
	require.NoError(t, err)
	require.True(t, batch.Success())

	part, _ := partRepo.GetByID("p1")
	assert.Equal(t, int64(6), part.Quantity)
}

func TestApplyTransaction_OutboundUpdatesUsageTracking(t *testing.T) {
	uc, partRepo, _ := newApplyFixture(testPart("p1", 10, 2))
	tx := approvedTx(entity.TransactionTypeIssue, entity.TransactionItem{PartID: "p1", Quantity: 6})

	_, err := uc.ApplyTransaction(context.Background(), tx, testActor())
	require.NoError(t, err)

	part, _ := partRepo.GetByID("p1")
	assert.Equal(t, int64(6), part.TotalConsumed)
	require.NotNil(t, part.LastUsedDate)
	assert.True(t, part.AverageMonthlyUsage.GreaterThan(decimal.Zero))
}

func TestApplyTransaction_LedgerSumMatchesQuantity(t *testing.T) {
	uc, partRepo, historyRepo := newApplyFixture(testPart("p1", 0, 2))
	actor := testActor()

	steps := []struct {
		txType string
		qty    int64
	}{
		{entity.TransactionTypeReceipt, 20},
		{entity.TransactionTypeIssue, 7},
		{entity.TransactionTypeAdjustment, -3},
		{entity.TransactionTypeTransferIn, 5},
	}
	for i, s := range steps {
		tx := approvedTx(s.txType, entity.TransactionItem{PartID: "p1", Quantity: s.qty})
		tx.ID = tx.ID + string(rune('a'+i))
		batch, err := uc.ApplyTransaction(context.Background(), tx, actor)
		require.NoError(t, err)
		require.True(t, batch.Success())
	}

	part, _ := partRepo.GetByID("p1")
	sum, _ := historyRepo.SumChanges("p1")
	assert.Equal(t, part.Quantity, sum)
	assert.Equal(t, int64(15), part.Quantity)
}

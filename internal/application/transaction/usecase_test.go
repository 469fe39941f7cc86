package transaction

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mantenimiento-api/internal/application/dto"
	appinv "github.com/jhoicas/Mantenimiento-api/internal/application/inventory"
	"github.com/jhoicas/Mantenimiento-api/internal/domain"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/entity"
	"github.com/jhoicas/Mantenimiento-api/internal/domain/repository"
)

// memTxRepo repositorio de transacciones en memoria para pruebas.
type memTxRepo struct {
	txs map[string]*entity.StockTransaction
}

func newMemTxRepo() *memTxRepo {
	return &memTxRepo{txs: make(map[string]*entity.StockTransaction)}
}

func (r *memTxRepo) Create(tx *entity.StockTransaction) error {
	if _, ok := r.txs[tx.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *tx
	r.txs[tx.ID] = &cp
	return nil
}

func (r *memTxRepo) GetByID(id string) (*entity.StockTransaction, error) {
	tx, ok := r.txs[id]
	if !ok {
		return nil, nil
	}
	cp := *tx
	return &cp, nil
}

func (r *memTxRepo) GetByNumber(transactionNumber string) (*entity.StockTransaction, error) {
	for _, tx := range r.txs {
		if tx.TransactionNumber == transactionNumber {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTxRepo) Update(tx *entity.StockTransaction) error {
	if _, ok := r.txs[tx.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *tx
	r.txs[tx.ID] = &cp
	return nil
}

func (r *memTxRepo) ListByDepartment(departmentID, status string, limit, offset int) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, tx := range r.txs {
		if tx.DepartmentID != departmentID {
			continue
		}
		if status != "" && tx.Status != status {
			continue
		}
		cp := *tx
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memTxRepo) List(status string, limit, offset int) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, tx := range r.txs {
		if status != "" && tx.Status != status {
			continue
		}
		cp := *tx
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memTxRepo) Delete(id string) error {
	if _, ok := r.txs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.txs, id)
	return nil
}

var _ repository.StockTransactionRepository = (*memTxRepo)(nil)

// memPartRepo versión mínima para este paquete.
type memPartRepo struct {
	parts map[string]*entity.Part
}

func newMemPartRepo(parts ...*entity.Part) *memPartRepo {
	r := &memPartRepo{parts: make(map[string]*entity.Part)}
	for _, p := range parts {
		cp := *p
		r.parts[p.ID] = &cp
	}
	return r
}

func (r *memPartRepo) Create(part *entity.Part) error { return nil }

func (r *memPartRepo) GetByID(id string) (*entity.Part, error) {
	p, ok := r.parts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPartRepo) GetForUpdate(id string) (*entity.Part, error) { return r.GetByID(id) }

func (r *memPartRepo) GetByPartNumber(string) (*entity.Part, error) { return nil, nil }

func (r *memPartRepo) GetBySKU(string) (*entity.Part, error) { return nil, nil }

func (r *memPartRepo) Update(part *entity.Part) error { return nil }

func (r *memPartRepo) UpdateStock(partID string, update repository.StockUpdate) error {
	p, ok := r.parts[partID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = update.Quantity
	p.TotalValue = update.TotalValue
	p.StockStatus = update.StockStatus
	p.TotalConsumed = update.TotalConsumed
	p.AverageMonthlyUsage = update.AverageMonthlyUsage
	p.LastUsedDate = update.LastUsedDate
	return nil
}

func (r *memPartRepo) ListByDepartment(string, int, int) ([]*entity.Part, error) { return nil, nil }

func (r *memPartRepo) List(int, int) ([]*entity.Part, error) { return nil, nil }

func (r *memPartRepo) Deactivate(string) error { return nil }

var _ repository.PartRepository = (*memPartRepo)(nil)

// memHistoryRepo ledger append-only mínimo.
type memHistoryRepo struct {
	entries []*entity.InventoryHistory
}

func (r *memHistoryRepo) Create(entry *entity.InventoryHistory) error {
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *memHistoryRepo) ListByPart(partID string, limit, offset int) ([]*entity.InventoryHistory, error) {
	return nil, nil
}

func (r *memHistoryRepo) CountByPart(partID string) (int, error) {
	n := 0
	for _, e := range r.entries {
		if e.PartID == partID {
			n++
		}
	}
	return n, nil
}

func (r *memHistoryRepo) SumChanges(partID string) (int64, error) {
	var sum int64
	for _, e := range r.entries {
		if e.PartID == partID {
			sum += e.QuantityChange
		}
	}
	return sum, nil
}

func (r *memHistoryRepo) ExistsForTransaction(partID, transactionID string) (bool, error) {
	for _, e := range r.entries {
		if e.PartID == partID && e.TransactionID == transactionID {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.InventoryHistoryRepository = (*memHistoryRepo)(nil)

type memTxRunner struct {
	parts   *memPartRepo
	history *memHistoryRepo
	txRepo  *memTxRepo
	txRuns  int
}

func (t *memTxRunner) Run(ctx context.Context, fn func(repository.PartRepository, repository.InventoryHistoryRepository) error) error {
	return fn(t.parts, t.history)
}

func (t *memTxRunner) RunStockTransaction(ctx context.Context, fn func(repository.StockTransactionRepository) error) error {
	t.txRuns++
	return fn(t.txRepo)
}

type fixture struct {
	uc       *UseCase
	txRepo   *memTxRepo
	partRepo *memPartRepo
	history  *memHistoryRepo
	runner   *memTxRunner
}

func newFixture(parts ...*entity.Part) *fixture {
	partRepo := newMemPartRepo(parts...)
	history := &memHistoryRepo{}
	txRepo := newMemTxRepo()
	runner := &memTxRunner{parts: partRepo, history: history, txRepo: txRepo}
	uc := NewUseCase(
		txRepo,
		runner,
		partRepo,
		appinv.NewAvailabilityValidator(partRepo),
		appinv.NewApplyTransactionUseCase(runner),
		appinv.NewReverseTransactionUseCase(runner),
	)
	return &fixture{uc: uc, txRepo: txRepo, partRepo: partRepo, history: history, runner: runner}
}

func testPart(id string, qty, minLevel int64) *entity.Part {
	return &entity.Part{
		ID:            id,
		PartNumber:    "PN-" + id,
		Name:          "Filtro " + id,
		DepartmentID:  "dept-1",
		Quantity:      qty,
		MinStockLevel: minLevel,
		UnitPrice:     decimal.NewFromInt(10),
		StockStatus:   entity.StockStatusInStock,
		Status:        "active",
		CreatedAt:     time.Now().AddDate(0, -1, 0),
	}
}

func admin() entity.Actor {
	return entity.Actor{ID: "u1", Name: "Laura Pardo", DepartmentID: "dept-1", Role: entity.RoleDepartmentAdmin}
}

func plainUser() entity.Actor {
	return entity.Actor{ID: "u2", Name: "Pedro Gil", DepartmentID: "dept-1", Role: entity.RoleUser}
}

func TestCreate_DraftWithDenormalizedItems(t *testing.T) {
	f := newFixture(testPart("p1", 10, 2))

	out, err := f.uc.Create(context.Background(), admin(), dto.CreateTransactionRequest{
		TransactionType: entity.TransactionTypeIssue,
		Description:     "Mantenimiento bomba 3",
		Items: []dto.TransactionItemRequest{
			{PartID: "p1", Quantity: 4, UnitCost: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusDraft, out.Status)
	assert.NotEmpty(t, out.ID)
	assert.Regexp(t, `^ST-\d{8}-[0-9A-F]{6}$`, out.TransactionNumber)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "PN-p1", out.Items[0].PartNumber)
	assert.Equal(t, "Filtro p1", out.Items[0].PartName)
	assert.True(t, out.Items[0].TotalCost.Equal(decimal.NewFromInt(40)))
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 1, out.TotalItems)
	assert.Equal(t, int64(4), out.TotalQuantity)

	// Crear no toca el inventario.
	part, _ := f.partRepo.GetByID("p1")
	assert.Equal(t, int64(10), part.Quantity)
}

func TestCreate_PersisteCabeceraYLineasJuntas(t *testing.T) {
	f := newFixture(testPart("p1", 10, 2), testPart("p2", 5, 1))

	out, err := f.uc.Create(context.Background(), admin(), dto.CreateTransactionRequest{
		TransactionType: entity.TransactionTypeReceipt,
		Items: []dto.TransactionItemRequest{
			{PartID: "p1", Quantity: 3, UnitCost: decimal.NewFromInt(10)},
			{PartID: "p2", Quantity: 2, UnitCost: decimal.NewFromInt(7)},
		},
	})
	require.NoError(t, err)

	// El guardado pasa por el runner transaccional, no por el repo suelto.
	assert.Equal(t, 1, f.runner.txRuns)
	stored, err := f.txRepo.GetByID(out.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, out.TransactionNumber, stored.TransactionNumber)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(testPart("p1", 10, 2))

	_, err := f.uc.Create(context.Background(), admin(), dto.CreateTransactionRequest{
		TransactionType: "donation",
		Items:           []dto.TransactionItemRequest{{PartID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransactionType)

	_, err = f.uc.Create(context.Background(), admin(), dto.CreateTransactionRequest{
		TransactionType: entity.TransactionTypeIssue,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cantidad negativa solo vale en adjustment.
	_, err = f.uc.Create(context.Background(), admin(), dto.CreateTransactionRequest{
		TransactionType: entity.TransactionTypeIssue,
		Items:           []dto.TransactionItemRequest{{PartID: "p1", Quantity: -1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(context.Background(), admin(), dto.CreateTransactionRequest{
		TransactionType: entity.TransactionTypeAdjustment,
		Items:           []dto.TransactionItemRequest{{PartID: "p1", Quantity: -1}},
	})
	assert.NoError(t, err)

	_, err = f.uc.Create(context.Background(), admin(), dto.CreateTransactionRequest{
		TransactionType: entity.TransactionTypeIssue,
		Items:           []dto.TransactionItemRequest{{PartID: "no-existe", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_OtherDepartmentForbidden(t *testing.T) {
	p := testPart("p1", 10, 2)
	p.DepartmentID = "dept-2"
	f := newFixture(p)

	_, err := f.uc.Create(context.Background(), admin(), dto.CreateTransactionRequest{
		TransactionType: entity.TransactionTypeIssue,
		Items:           []dto.TransactionItemRequest{{PartID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTransition_FullLifecycleAppliesInventoryOnce(t *testing.T) {
	f := newFixture(testPart("p1", 10, 2))
	actor := admin()
	ctx := context.Background()

	created, err := f.uc.Create(context.Background(), actor, dto.CreateTransactionRequest{
		TransactionType: entity.TransactionTypeIssue,
		Items:           []dto.TransactionItemRequest{{PartID: "p1", Quantity: 4}},
	})
	require.NoError(t, err)

	out, err := f.uc.Transition(ctx, actor, created.ID, entity.TransactionStatusPending)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusPending, out.Transaction.Status)
	assert.Nil(t, out.Batch)

	out, err = f.uc.Transition(ctx, actor, created.ID, entity.TransactionStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusApproved, out.Transaction.Status)
	assert.Equal(t, actor.ID, out.Transaction.ApprovedBy)
	require.NotNil(t, out.Transaction.ApprovedAt)

	// Aprobar todavía no mueve stock.
	part, _ := f.partRepo.GetByID("p1")
	assert.Equal(t, int64(10), part.Quantity)

	out, err = f.uc.Transition(ctx, actor, created.ID, entity.TransactionStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusCompleted, out.Transaction.Status)
	require.NotNil(t, out.Batch)
	assert.True(t, out.Batch.Success)
	assert.Equal(t, int64(6), out.Batch.Results[0].NewQuantity)

	part, _ = f.partRepo.GetByID("p1")
	assert.Equal(t, int64(6), part.Quantity)
	count, _ := f.history.CountByPart("p1")
	assert.Equal(t, 1, count)

	// Completed es terminal: no hay más aristas, luego no hay re-aplicación.
	_, err = f.uc.Transition(ctx, actor, created.ID, entity.TransactionStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestTransition_ApprovalGateBlocksShortStock(t *testing.T) {
	f := newFixture(testPart("p1", 2, 1))
	actor := admin()
	ctx := context.Background()

	created, err := f.uc.Create(context.Background(), actor, dto.CreateTransactionRequest{
		TransactionType: entity.TransactionTypeIssue,
		Status:          entity.TransactionStatusPending,
		Items:           []dto.TransactionItemRequest{{PartID: "p1", Quantity: 5}},
	})
	require.NoError(t, err)

	_, err = f.uc.Transition(ctx, actor, created.ID, entity.TransactionStatusApproved)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "PN-p1")

	// Sigue en pending y el stock no cambió.
	got, _ := f.uc.GetByID(actor, created.ID)
	assert.Equal(t, entity.TransactionStatusPending, got.Status)
}

func TestTransition_InvalidEdges(t *testing.T) {
	f := newFixture(testPart("p1", 10, 2))
	actor := admin()
	ctx := context.Background()

	created, err := f.uc.Create(context.Background(), actor, dto.CreateTransactionRequest{
		TransactionType: entity.TransactionTypeReceipt,
		Items:           []dto.TransactionItemRequest{{PartID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	// draft no salta directo a approved ni a completed.
	_, err = f.uc.Transition(ctx, actor, created.ID, entity.TransactionStatusApproved)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = f.uc.Transition(ctx, actor, created.ID, entity.TransactionStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// draft sí se cancela, y cancelled es terminal.
	out, err := f.uc.Transition(ctx, actor, created.ID, entity.TransactionStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusCancelled, out.Transaction.Status)
	_, err = f.uc.Transition(ctx, actor, created.ID, entity.TransactionStatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestTransition_ApproveRequiresElevatedRole(t *testing.T) {
	f := newFixture(testPart("p1", 10, 2))
	ctx := context.Background()

	created, err := f.uc.Create(context.Background(), plainUser(), dto.CreateTransactionRequest{
		TransactionType: entity.TransactionTypeIssue,
		Status:          entity.TransactionStatusPending,
		Items:           []dto.TransactionItemRequest{{PartID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.uc.Transition(ctx, plainUser(), created.ID, entity.TransactionStatusApproved)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Transition(ctx, admin(), created.ID, entity.TransactionStatusApproved)
	assert.NoError(t, err)
}

func TestDelete_OnlyBeforeInventoryEffects(t *testing.T) {
	f := newFixture(testPart("p1", 10, 2))
	actor := admin()
	ctx := context.Background()

	created, err := f.uc.Create(context.Background(), actor, dto.CreateTransactionRequest{
		TransactionType: entity.TransactionTypeReceipt,
		Status:          entity.TransactionStatusPending,
		Items:           []dto.TransactionItemRequest{{PartID: "p1", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.uc.Delete(plainUser(), created.ID), domain.ErrForbidden)

	_, err = f.uc.Transition(ctx, actor, created.ID, entity.TransactionStatusApproved)
	require.NoError(t, err)
	assert.ErrorIs(t, f.uc.Delete(actor, created.ID), domain.ErrInvalidState)

	_, err = f.uc.Transition(ctx, actor, created.ID, entity.TransactionStatusCompleted)
	require.NoError(t, err)
	assert.ErrorIs(t, f.uc.Delete(actor, created.ID), domain.ErrInvalidState)

	// Una nueva en pending sí se borra.
	other, err := f.uc.Create(context.Background(), actor, dto.CreateTransactionRequest{
		TransactionType: entity.TransactionTypeReceipt,
		Items:           []dto.TransactionItemRequest{{PartID: "p1", Quantity: 2}},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(actor, other.ID))
	got, _ := f.txRepo.GetByID(other.ID)
	assert.Nil(t, got)
}

func TestCancelCompleted_ReversesAndCancels(t *testing.T) {
	f := newFixture(testPart("p1", 10, 2))
	actor := admin()
	ctx := context.Background()

	created, err := f.uc.Create(context.Background(), actor, dto.CreateTransactionRequest{
		TransactionType: entity.TransactionTypeIssue,
		Status:          entity.TransactionStatusPending,
		Items:           []dto.TransactionItemRequest{{PartID: "p1", Quantity: 4}},
	})
	require.NoError(t, err)
	_, err = f.uc.Transition(ctx, actor, created.ID, entity.TransactionStatusApproved)
	require.NoError(t, err)
	_, err = f.uc.Transition(ctx, actor, created.ID, entity.TransactionStatusCompleted)
	require.NoError(t, err)

	out, err := f.uc.CancelCompleted(ctx, actor, created.ID)
	require.NoError(t, err)
	require.NotNil(t, out.Batch)
	assert.True(t, out.Batch.Success)
	assert.Equal(t, entity.TransactionStatusCancelled, out.Transaction.Status)

	part, _ := f.partRepo.GetByID("p1")
	assert.Equal(t, int64(10), part.Quantity)
	count, _ := f.history.CountByPart("p1")
	assert.Equal(t, 2, count)
}

func TestCancelCompleted_RequiresCompletedAndElevated(t *testing.T) {
	f := newFixture(testPart("p1", 10, 2))
	actor := admin()
	ctx := context.Background()

	created, err := f.uc.Create(context.Background(), actor, dto.CreateTransactionRequest{
		TransactionType: entity.TransactionTypeIssue,
		Items:           []dto.TransactionItemRequest{{PartID: "p1", Quantity: 4}},
	})
	require.NoError(t, err)

	_, err = f.uc.CancelCompleted(ctx, plainUser(), created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.CancelCompleted(ctx, actor, created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

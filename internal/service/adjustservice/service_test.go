package adjustservice_test

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditstock/internal/domain"
	apperror "auditstock/internal/errors"
	"auditstock/internal/pkg/logger"
	"auditstock/internal/service/adjustservice"
)

// savedCall registra um UpdateReduction emitido pelo controlador.
type savedCall struct {
	AuditID string
	Value   float64
}

// fakePersister é um colaborador de persistência controlável pelos testes:
// pode falhar, pode segurar um save em voo (canal block) e registra todas
// as chamadas com proteção de mutex.
type fakePersister struct {
	mu            sync.Mutex
	calls         []savedCall
	fail          bool
	block         chan struct{} // quando não-nil, o save espera o canal fechar
	inFlight      int
	maxInFlight   int
	baseline      map[string]float64
}

func (f *fakePersister) GetByAuditID(ctx context.Context, auditID string) (domain.AuditAdjustment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if pct, ok := f.baseline[auditID]; ok {
		return domain.AuditAdjustment{AuditID: auditID, ReductionPercentage: pct, Version: 1}, nil
	}
	return domain.AuditAdjustment{}, apperror.NewNotFoundError("sem ajuste para o período")
}

func (f *fakePersister) UpdateReduction(ctx context.Context, auditID string, pct float64) (domain.AuditAdjustment, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--
	f.calls = append(f.calls, savedCall{AuditID: auditID, Value: pct})
	if f.fail {
		return domain.AuditAdjustment{}, apperror.NewDBError("Falha ao persistir percentual de redução", fmt.Errorf("conexão recusada"))
	}
	return domain.AuditAdjustment{AuditID: auditID, ReductionPercentage: pct, Version: len(f.calls)}, nil
}

func (f *fakePersister) snapshot() []savedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]savedCall{}, f.calls...)
}

func newTestController(repo *fakePersister) *adjustservice.Controller {
	// Debounce curto para os testes dirigirem timers reais.
	return adjustservice.NewController(repo, 30*time.Millisecond, nil, logger.NewLogger("error"))
}

// TestSubmitEdit_RapidEditsTriggerSingleSave: edições rápidas 5, 12 e 20 no
// mesmo período, dentro da janela de debounce, disparam exatamente um save,
// com o último valor (20).
func TestSubmitEdit_RapidEditsTriggerSingleSave(t *testing.T) {
	repo := &fakePersister{}
	ctrl := newTestController(repo)
	defer ctrl.Close()
	ctx := context.Background()

	for _, pct := range []float64{5, 12, 20} {
		draft, err := ctrl.SubmitEdit(ctx, "audit-1", pct)
		require.NoError(t, err)
		// Atualização otimista: o valor exibido muda a cada tecla.
		assert.Equal(t, pct, draft.PendingPercentage)
		assert.Equal(t, domain.DraftDebouncing, draft.State)
	}

	assert.Eventually(t, func() bool {
		return len(repo.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	calls := repo.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, savedCall{AuditID: "audit-1", Value: 20}, calls[0])

	// Após o sucesso, o período volta a Idle com persistido == salvo.
	assert.Eventually(t, func() bool {
		d := ctrl.Draft("audit-1")
		return d.State == domain.DraftIdle && d.PersistedPercentage == 20 && !d.IsSaving
	}, time.Second, 5*time.Millisecond)

	// Nenhum save extra depois de mais uma janela inteira.
	time.Sleep(80 * time.Millisecond)
	assert.Len(t, repo.snapshot(), 1)
}

// TestSubmitEdit_IndependentPeriods: edições em dois períodos diferentes na
// mesma janela de 500ms disparam, cada uma, seu próprio save.
func TestSubmitEdit_IndependentPeriods(t *testing.T) {
	repo := &fakePersister{}
	ctrl := newTestController(repo)
	defer ctrl.Close()
	ctx := context.Background()

	_, err := ctrl.SubmitEdit(ctx, "audit-1", 10)
	require.NoError(t, err)
	_, err = ctrl.SubmitEdit(ctx, "audit-2", 25)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(repo.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)

	byAudit := map[string]float64{}
	for _, call := range repo.snapshot() {
		byAudit[call.AuditID] = call.Value
	}
	assert.Equal(t, map[string]float64{"audit-1": 10, "audit-2": 25}, byAudit)
}

// TestSubmitEdit_RejectsInvalidPercentage: -1, 101 e NaN são rejeitados
// síncronamente, nada é enfileirado e o valor válido anterior permanece.
func TestSubmitEdit_RejectsInvalidPercentage(t *testing.T) {
	repo := &fakePersister{}
	ctrl := newTestController(repo)
	defer ctrl.Close()
	ctx := context.Background()

	_, err := ctrl.SubmitEdit(ctx, "audit-1", 15)
	require.NoError(t, err)

	for _, pct := range []float64{-1, 101, math.NaN()} {
		draft, err := ctrl.SubmitEdit(ctx, "audit-1", pct)
		assert.Error(t, err)
		assert.IsType(t, &apperror.ValidationError{}, err)
		assert.Equal(t, 15.0, draft.PendingPercentage) // valor anterior retido
	}

	assert.Eventually(t, func() bool {
		return len(repo.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	calls := repo.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, 15.0, calls[0].Value) // só o valor válido chegou ao save
}

// TestSubmitEdit_SaveFailureKeepsOptimisticValue: em falha de persistência o
// valor digitado NÃO é revertido, o período volta a editável e não há retry
// automático.
func TestSubmitEdit_SaveFailureKeepsOptimisticValue(t *testing.T) {
	repo := &fakePersister{fail: true}
	ctrl := newTestController(repo)
	defer ctrl.Close()
	ctx := context.Background()

	_, err := ctrl.SubmitEdit(ctx, "audit-1", 40)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		d := ctrl.Draft("audit-1")
		return d.State == domain.DraftEditing && !d.IsSaving
	}, time.Second, 5*time.Millisecond)

	draft := ctrl.Draft("audit-1")
	assert.Equal(t, 40.0, draft.PendingPercentage)  // otimista retido
	assert.Equal(t, 0.0, draft.PersistedPercentage) // nada foi confirmado

	// Sem retry automático: nenhuma chamada nova após outra janela inteira.
	time.Sleep(80 * time.Millisecond)
	assert.Len(t, repo.snapshot(), 1)
}

// TestSubmitEdit_EditDuringSaveQueuesNextCycle: uma edição com save em voo
// não bloqueia nem dispara um segundo save concorrente (single-flight por
// período); um novo ciclo de debounce é armado quando o save completa e o
// último valor vence.
func TestSubmitEdit_EditDuringSaveQueuesNextCycle(t *testing.T) {
	repo := &fakePersister{block: make(chan struct{})}
	ctrl := newTestController(repo)
	defer ctrl.Close()
	ctx := context.Background()

	_, err := ctrl.SubmitEdit(ctx, "audit-1", 10)
	require.NoError(t, err)

	// Espera o save entrar em voo (segurado pelo canal block).
	assert.Eventually(t, func() bool {
		return ctrl.Draft("audit-1").IsSaving
	}, time.Second, 5*time.Millisecond)

	// Edição durante o voo: aceita na hora, exibição otimista. O estado
	// permanece Saving (os estados são exclusivos) e a edição enfileirada
	// fica visível no rascunho.
	draft, err := ctrl.SubmitEdit(ctx, "audit-1", 30)
	require.NoError(t, err)
	assert.Equal(t, 30.0, draft.PendingPercentage)
	assert.Equal(t, domain.DraftSaving, draft.State)
	assert.True(t, draft.IsSaving)
	assert.True(t, draft.QueuedEdit)

	close(repo.block)

	assert.Eventually(t, func() bool {
		calls := repo.snapshot()
		return len(calls) == 2 && calls[1].Value == 30
	}, time.Second, 5*time.Millisecond)

	repo.mu.Lock()
	maxInFlight := repo.maxInFlight
	repo.mu.Unlock()
	assert.Equal(t, 1, maxInFlight) // nunca dois saves em voo para o mesmo período

	assert.Eventually(t, func() bool {
		d := ctrl.Draft("audit-1")
		return d.State == domain.DraftIdle && d.PersistedPercentage == 30
	}, time.Second, 5*time.Millisecond)
}

// TestSubmitEdit_EditDuringFailedSaveStillFires: uma edição aceita enquanto
// um save está em voo dispara seu próprio ciclo de debounce mesmo quando
// esse save FALHA — a edição enfileirada é um valor novo, não um retry do
// que falhou, e não pode ser descartada junto com o erro.
func TestSubmitEdit_EditDuringFailedSaveStillFires(t *testing.T) {
	repo := &fakePersister{fail: true, block: make(chan struct{})}
	ctrl := newTestController(repo)
	defer ctrl.Close()
	ctx := context.Background()

	_, err := ctrl.SubmitEdit(ctx, "audit-1", 10)
	require.NoError(t, err)

	// Espera o save de 10 entrar em voo (segurado pelo canal block).
	assert.Eventually(t, func() bool {
		return ctrl.Draft("audit-1").IsSaving
	}, time.Second, 5*time.Millisecond)

	// Edição durante o voo.
	draft, err := ctrl.SubmitEdit(ctx, "audit-1", 30)
	require.NoError(t, err)
	assert.True(t, draft.QueuedEdit)

	// Libera o save de 10, que retorna erro.
	close(repo.block)

	// O valor enfileirado (30) dispara mesmo assim, num segundo save.
	assert.Eventually(t, func() bool {
		calls := repo.snapshot()
		return len(calls) == 2 && calls[1].Value == 30
	}, time.Second, 5*time.Millisecond)

	// O segundo save também falhou (persister sempre falha): o período fica
	// editável com o otimista retido e sem retry automático.
	assert.Eventually(t, func() bool {
		d := ctrl.Draft("audit-1")
		return d.State == domain.DraftEditing && !d.IsSaving
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 30.0, ctrl.Draft("audit-1").PendingPercentage)

	time.Sleep(80 * time.Millisecond)
	assert.Len(t, repo.snapshot(), 2)
}

// TestClose_CancelsPendingDebounce: encerrar o controlador cancela timers
// ainda não disparados; nenhum save acontece depois.
func TestClose_CancelsPendingDebounce(t *testing.T) {
	repo := &fakePersister{}
	ctrl := newTestController(repo)
	ctx := context.Background()

	_, err := ctrl.SubmitEdit(ctx, "audit-1", 50)
	require.NoError(t, err)

	ctrl.Close()

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, repo.snapshot())
}

// TestDraft_UnknownPeriod: período nunca editado aparece como Idle.
func TestDraft_UnknownPeriod(t *testing.T) {
	repo := &fakePersister{}
	ctrl := newTestController(repo)
	defer ctrl.Close()

	draft := ctrl.Draft("audit-x")

	assert.Equal(t, domain.DraftIdle, draft.State)
	assert.False(t, draft.IsSaving)
	assert.Equal(t, 0.0, draft.PendingPercentage)
}

// TestSubmitEdit_UsesPersistedBaseline: a primeira edição carrega o valor
// persistido do colaborador como baseline do rascunho.
func TestSubmitEdit_UsesPersistedBaseline(t *testing.T) {
	repo := &fakePersister{baseline: map[string]float64{"audit-1": 12.5}}
	ctrl := newTestController(repo)
	defer ctrl.Close()

	draft, err := ctrl.SubmitEdit(context.Background(), "audit-1", 20)
	require.NoError(t, err)

	assert.Equal(t, 12.5, draft.PersistedPercentage)
	assert.Equal(t, 20.0, draft.PendingPercentage)
}

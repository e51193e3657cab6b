package auditservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"auditstock/internal/domain"
	apperror "auditstock/internal/errors"
	"auditstock/internal/pkg/cache"
	"auditstock/internal/pkg/logger"
	"auditstock/internal/service/auditservice"
)

// MockAuditRepository é uma implementação mock da interface AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) FindAll(ctx context.Context) ([]domain.Audit, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Audit), args.Error(1)
}

func (m *MockAuditRepository) FindByID(ctx context.Context, id string) (domain.Audit, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Audit), args.Error(1)
}

// MockAdjustmentReader é uma implementação mock da interface AdjustmentReader
type MockAdjustmentReader struct {
	mock.Mock
}

func (m *MockAdjustmentReader) GetByAuditID(ctx context.Context, auditID string) (domain.AuditAdjustment, error) {
	args := m.Called(ctx, auditID)
	return args.Get(0).(domain.AuditAdjustment), args.Error(1)
}

// memoryCache é um cache.Client em memória para os testes de cache-aside.
type memoryCache struct {
	data map[string]string
}

func newMemoryCache() *memoryCache { return &memoryCache{data: map[string]string{}} }

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return "", cache.ErrCacheMiss
}

func (c *memoryCache) GetInt(ctx context.Context, key string) (int, error) {
	return 0, cache.ErrCacheMiss
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, _ time.Duration) error {
	switch v := value.(type) {
	case string:
		c.data[key] = v
	case []byte:
		c.data[key] = string(v)
	}
	return nil
}

func (c *memoryCache) Incr(ctx context.Context, key string) error { return nil }

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func newTestLogger() logger.Logger {
	return logger.NewLogger("error")
}

// TestGetValuationReport_FromRawRecords monta o relatório do cenário de
// referência a partir dos registros brutos (sem resumo pré-agregado) e com
// percentual de redução 10 persistido.
func TestGetValuationReport_FromRawRecords(t *testing.T) {
	mockRepo := new(MockAuditRepository)
	mockAdj := new(MockAdjustmentReader)
	svc := auditservice.NewService(mockRepo, mockAdj, newMemoryCache(), 5*time.Minute, newTestLogger())

	audit := domain.Audit{
		ID: "audit-1", Month: 3, Year: 2024,
		ItemDetails: []domain.ItemDetailRecord{
			{ItemName: "Chair", RoomID: "room-1", ActiveQuantity: 10, TotalPrice: 1000},
			{ItemName: "Chair", RoomID: "room-2", ActiveQuantity: 5, BrokenQuantity: 5, TotalPrice: 600},
		},
	}
	mockRepo.On("FindByID", mock.Anything, "audit-1").Return(audit, nil)
	mockAdj.On("GetByAuditID", mock.Anything, "audit-1").
		Return(domain.AuditAdjustment{AuditID: "audit-1", ReductionPercentage: 10}, nil)

	report, err := svc.GetValuationReport(context.Background(), "audit-1")

	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	assert.Equal(t, "Chair", report.Items[0].ItemName)
	assert.Equal(t, 80.0, report.Items[0].UnitPrice)
	assert.Equal(t, 1200.0, report.Items[0].ActiveValue)
	assert.Equal(t, 380.0, report.Items[0].BrokenValue)
	// Total de ativos = 1200 + 380 = 1580; redução de 10% = 158.
	assert.Equal(t, 1580.0, report.TotalAssetValue)
	assert.Equal(t, 10.0, report.ReductionPercentage)
	assert.Equal(t, 158.0, report.ReductionAmount)
	assert.Equal(t, 1422.0, report.AdjustedValue)
	mockRepo.AssertExpectations(t)
}

// TestGetValuationReport_SummaryBypass: quando o período traz linhas de
// resumo pré-agregadas, o Agregador é desviado e os registros brutos são
// ignorados.
func TestGetValuationReport_SummaryBypass(t *testing.T) {
	mockRepo := new(MockAuditRepository)
	mockAdj := new(MockAdjustmentReader)
	svc := auditservice.NewService(mockRepo, mockAdj, newMemoryCache(), 5*time.Minute, newTestLogger())

	audit := domain.Audit{
		ID: "audit-1",
		Summary: []domain.AuditSummaryRow{
			{ItemName: "Chair", Active: 15, Damage: 5, Total: 20, TotalPrice: 1600},
		},
		ItemDetails: []domain.ItemDetailRecord{
			// Registro contraditório de propósito: não deve ser usado.
			{ItemName: "Chair", ActiveQuantity: 1, TotalPrice: 1},
		},
	}
	mockRepo.On("FindByID", mock.Anything, "audit-1").Return(audit, nil)
	mockAdj.On("GetByAuditID", mock.Anything, "audit-1").
		Return(domain.AuditAdjustment{}, apperror.NewNotFoundError("sem ajuste"))

	report, err := svc.GetValuationReport(context.Background(), "audit-1")

	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	assert.Equal(t, 20, report.Items[0].TotalQuantity)
	assert.Equal(t, 80.0, report.Items[0].UnitPrice)
	// Ajuste ausente = padrão 0: relatório sem redução.
	assert.Equal(t, 0.0, report.ReductionPercentage)
	assert.Equal(t, 1580.0, report.TotalAssetValue)
	assert.Equal(t, 1580.0, report.AdjustedValue)
}

// TestGetValuationReport_CacheAside: a segunda leitura é servida do cache
// sem novo acesso ao repositório.
func TestGetValuationReport_CacheAside(t *testing.T) {
	mockRepo := new(MockAuditRepository)
	mockAdj := new(MockAdjustmentReader)
	svc := auditservice.NewService(mockRepo, mockAdj, newMemoryCache(), 5*time.Minute, newTestLogger())

	audit := domain.Audit{
		ID: "audit-1",
		ItemDetails: []domain.ItemDetailRecord{
			{ItemName: "Desk", ActiveQuantity: 2, TotalPrice: 300},
		},
	}
	mockRepo.On("FindByID", mock.Anything, "audit-1").Return(audit, nil).Once()
	mockAdj.On("GetByAuditID", mock.Anything, "audit-1").
		Return(domain.AuditAdjustment{}, apperror.NewNotFoundError("sem ajuste")).Once()

	first, err := svc.GetValuationReport(context.Background(), "audit-1")
	require.NoError(t, err)

	// Segunda chamada: o mock (Once) falharia se o repositório fosse tocado.
	second, err := svc.GetValuationReport(context.Background(), "audit-1")
	require.NoError(t, err)

	assert.Equal(t, first.TotalAssetValue, second.TotalAssetValue)
	assert.Equal(t, first.Items, second.Items)
	mockRepo.AssertExpectations(t)
}

// TestGetRankedItems_FiltersAndSorts: lista ranqueada do balde quebrado,
// decrescente por valor, itens com quantidade zero de fora.
func TestGetRankedItems_FiltersAndSorts(t *testing.T) {
	mockRepo := new(MockAuditRepository)
	mockAdj := new(MockAdjustmentReader)
	svc := auditservice.NewService(mockRepo, mockAdj, newMemoryCache(), 5*time.Minute, newTestLogger())

	audit := domain.Audit{
		ID: "audit-1",
		ItemDetails: []domain.ItemDetailRecord{
			{ItemName: "Chair", ActiveQuantity: 15, BrokenQuantity: 5, TotalPrice: 1600},
			{ItemName: "Desk", BrokenQuantity: 2, TotalPrice: 500},
			{ItemName: "Lamp", ActiveQuantity: 3, TotalPrice: 90},
		},
	}
	mockRepo.On("FindByID", mock.Anything, "audit-1").Return(audit, nil)

	ranked, err := svc.GetRankedItems(context.Background(), "audit-1", domain.BucketBroken)

	require.NoError(t, err)
	require.Len(t, ranked, 2) // Lamp não tem quebrados
	assert.Equal(t, "Desk", ranked[0].ItemName)   // 2 × 250 × 0.95 = 475
	assert.Equal(t, 475.0, ranked[0].Value)
	assert.Equal(t, "Chair", ranked[1].ItemName)  // 5 × 80 × 0.95 = 380
	assert.Equal(t, 380.0, ranked[1].Value)
}

// TestGetValuationReport_NotFound propaga o NotFound do repositório.
func TestGetValuationReport_NotFound(t *testing.T) {
	mockRepo := new(MockAuditRepository)
	mockAdj := new(MockAdjustmentReader)
	svc := auditservice.NewService(mockRepo, mockAdj, newMemoryCache(), 5*time.Minute, newTestLogger())

	mockRepo.On("FindByID", mock.Anything, "missing").
		Return(domain.Audit{}, apperror.NewNotFoundError("Período de auditoria missing não existe."))

	_, err := svc.GetValuationReport(context.Background(), "missing")

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

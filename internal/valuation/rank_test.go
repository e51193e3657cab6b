package valuation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"auditstock/internal/domain"
	"auditstock/internal/valuation"
)

// TestFilterByStatus_SortsDescendingByValue testa o ranqueamento do balde
// ativo: apenas itens com quantidade > 0, ordenados por valor decrescente.
func TestFilterByStatus_SortsDescendingByValue(t *testing.T) {
	items := []domain.ValuedItem{
		{AggregatedItem: domain.AggregatedItem{ItemName: "Lamp", ActiveQuantity: 2}, ActiveValue: 50},
		{AggregatedItem: domain.AggregatedItem{ItemName: "Chair", ActiveQuantity: 15}, ActiveValue: 1200},
		{AggregatedItem: domain.AggregatedItem{ItemName: "Cable", ActiveQuantity: 0}, ActiveValue: 0},
		{AggregatedItem: domain.AggregatedItem{ItemName: "Desk", ActiveQuantity: 4}, ActiveValue: 600},
	}

	ranked := valuation.FilterByStatus(items, domain.BucketActive)

	assert.Len(t, ranked, 3) // Cable (quantidade 0) fica de fora
	assert.Equal(t, "Chair", ranked[0].ItemName)
	assert.Equal(t, "Desk", ranked[1].ItemName)
	assert.Equal(t, "Lamp", ranked[2].ItemName)
	assert.Equal(t, 15, ranked[0].Quantity)
	assert.InDelta(t, 1200, ranked[0].Value, 1e-9)
}

// TestFilterByStatus_StableTies: empates de valor preservam a ordem
// original de agregação (ordenação estável obrigatória).
func TestFilterByStatus_StableTies(t *testing.T) {
	items := []domain.ValuedItem{
		{AggregatedItem: domain.AggregatedItem{ItemName: "First", BrokenQuantity: 1}, BrokenValue: 100},
		{AggregatedItem: domain.AggregatedItem{ItemName: "Second", BrokenQuantity: 2}, BrokenValue: 100},
		{AggregatedItem: domain.AggregatedItem{ItemName: "Third", BrokenQuantity: 3}, BrokenValue: 100},
	}

	ranked := valuation.FilterByStatus(items, domain.BucketBroken)

	assert.Equal(t, []string{"First", "Second", "Third"},
		[]string{ranked[0].ItemName, ranked[1].ItemName, ranked[2].ItemName})
}

// TestFilterByStatus_EmptyResult: nenhum item qualificado retorna fatia
// vazia, não erro nem nil inesperado.
func TestFilterByStatus_EmptyResult(t *testing.T) {
	items := []domain.ValuedItem{
		{AggregatedItem: domain.AggregatedItem{ItemName: "Chair", ActiveQuantity: 10}, ActiveValue: 800},
	}

	ranked := valuation.FilterByStatus(items, domain.BucketInactive)

	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

// TestParseStatusBucket valida a conversão das strings de rota.
func TestParseStatusBucket(t *testing.T) {
	for _, valid := range []string{"active", "broken", "inactive"} {
		bucket, ok := domain.ParseStatusBucket(valid)
		assert.True(t, ok)
		assert.Equal(t, domain.StatusBucket(valid), bucket)
	}

	_, ok := domain.ParseStatusBucket("damaged")
	assert.False(t, ok)
}

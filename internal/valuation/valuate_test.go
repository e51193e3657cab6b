package valuation_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"auditstock/internal/domain"
	"auditstock/internal/valuation"
)

// TestUnitPrice_ZeroQuantityGuard: quantidade total zero deriva preço 0,
// nunca NaN ou Inf, mesmo com valor total residual.
func TestUnitPrice_ZeroQuantityGuard(t *testing.T) {
	item := domain.AggregatedItem{ItemName: "Consumed", TotalQuantity: 0, TotalValue: 500}

	price := valuation.UnitPrice(item)

	assert.Equal(t, 0.0, price)
	assert.False(t, math.IsNaN(price))
}

// TestValuate_ChairScenario testa a alocação de referência: preço unitário
// 80, valor ativo 1200 e valor quebrado 5×80×0.95 = 380.
func TestValuate_ChairScenario(t *testing.T) {
	item := domain.AggregatedItem{
		ItemName:       "Chair",
		ActiveQuantity: 15, BrokenQuantity: 5, InactiveQuantity: 0,
		TotalQuantity: 20, TotalValue: 1600,
	}

	valued := valuation.Valuate(item)

	assert.InDelta(t, 80, valued.UnitPrice, 1e-9)
	assert.InDelta(t, 1200, valued.ActiveValue, 1e-9)
	assert.InDelta(t, 380, valued.BrokenValue, 1e-9)
	assert.InDelta(t, 0, valued.InactiveValue, 1e-9)
}

// TestValuate_ZeroQuantitySafety: todos os valores de balde são 0 (nunca
// NaN) para itens com quantidade total zero.
func TestValuate_ZeroQuantitySafety(t *testing.T) {
	valued := valuation.Valuate(domain.AggregatedItem{ItemName: "Ghost", TotalValue: 123.45})

	assert.Equal(t, 0.0, valued.UnitPrice)
	assert.Equal(t, 0.0, valued.ActiveValue)
	assert.Equal(t, 0.0, valued.BrokenValue)
	assert.Equal(t, 0.0, valued.InactiveValue)
}

// TestValuate_ValueConservation: para itens com quantidade > 0,
// activeValue + inactiveValue + (brokenValue / 0.95) recupera o valor total
// dentro da tolerância de ponto flutuante.
func TestValuate_ValueConservation(t *testing.T) {
	cases := []domain.AggregatedItem{
		{ItemName: "A", ActiveQuantity: 7, BrokenQuantity: 3, InactiveQuantity: 2, TotalQuantity: 12, TotalValue: 1234.56},
		{ItemName: "B", ActiveQuantity: 1, BrokenQuantity: 0, InactiveQuantity: 0, TotalQuantity: 1, TotalValue: 0.01},
		{ItemName: "C", ActiveQuantity: 0, BrokenQuantity: 11, InactiveQuantity: 0, TotalQuantity: 11, TotalValue: 999.99},
	}

	for _, item := range cases {
		valued := valuation.Valuate(item)
		recovered := valued.ActiveValue + valued.InactiveValue +
			valued.BrokenValue/valuation.BrokenRetentionFactor
		assert.InDelta(t, item.TotalValue, recovered, 1e-6, item.ItemName)
	}
}

// TestTotalAssetValue soma os três baldes de todos os itens do período.
func TestTotalAssetValue(t *testing.T) {
	items := []domain.ValuedItem{
		{ActiveValue: 1200, BrokenValue: 380, InactiveValue: 0},
		{ActiveValue: 100, BrokenValue: 0, InactiveValue: 50},
	}

	assert.InDelta(t, 1730, valuation.TotalAssetValue(items), 1e-9)
}

// TestRound2 cobre o arredondamento de apresentação.
func TestRound2(t *testing.T) {
	assert.Equal(t, 1440.0, valuation.Round2(1440.004))
	assert.Equal(t, 0.35, valuation.Round2(0.345000001))
	assert.Equal(t, 0.13, valuation.Round2(0.125))
	assert.Equal(t, 160.0, valuation.Round2(160.0))
}

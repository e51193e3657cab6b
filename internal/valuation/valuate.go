package valuation

import (
	"math"

	"auditstock/internal/domain"
)

// BrokenRetentionFactor é a fração do preço unitário contada para o balde de
// itens quebrados (depreciação fixa de 5% embutida na valoração por balde,
// distinta do ajuste por período controlado pelo usuário).
const BrokenRetentionFactor = 0.95

// UnitPrice deriva o preço unitário efetivo de um item agregado:
// valor total ÷ quantidade total. Retorna 0 (não NaN/Inf) quando a quantidade
// total é zero — itens totalmente consumidos são comuns e não podem propagar
// valores não-finitos para as camadas de apresentação.
func UnitPrice(item domain.AggregatedItem) float64 {
	if item.TotalQuantity == 0 {
		return 0
	}
	return item.TotalValue / float64(item.TotalQuantity)
}

// Valuate aloca o preço unitário derivado entre os três baldes de condição.
// O arredondamento para 2 casas acontece apenas na apresentação, nunca aqui,
// para não compor erro de arredondamento entre derivações repetidas.
func Valuate(item domain.AggregatedItem) domain.ValuedItem {
	unitPrice := UnitPrice(item)
	return domain.ValuedItem{
		AggregatedItem: item,
		UnitPrice:      unitPrice,
		ActiveValue:    float64(item.ActiveQuantity) * unitPrice,
		BrokenValue:    float64(item.BrokenQuantity) * unitPrice * BrokenRetentionFactor,
		InactiveValue:  float64(item.InactiveQuantity) * unitPrice,
	}
}

// ValuateAll aplica Valuate a cada item agregado, preservando a ordem.
func ValuateAll(items []domain.AggregatedItem) []domain.ValuedItem {
	valued := make([]domain.ValuedItem, len(items))
	for i, item := range items {
		valued[i] = Valuate(item)
	}
	return valued
}

// TotalAssetValue soma, entre todos os itens valorados do período, o valor
// dos três baldes (já com o fator 0.95 aplicado ao balde quebrado). É sobre
// este total que o ajuste de depreciação por período é aplicado.
func TotalAssetValue(items []domain.ValuedItem) float64 {
	var total float64
	for _, item := range items {
		total += item.ActiveValue + item.BrokenValue + item.InactiveValue
	}
	return total
}

// Round2 arredonda um valor monetário para 2 casas decimais. Usado SOMENTE
// na fronteira de apresentação (relatórios e respostas da API).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

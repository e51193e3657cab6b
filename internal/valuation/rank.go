package valuation

import (
	"sort"

	"auditstock/internal/domain"
)

// FilterByStatus deriva a lista pronta para apresentação de um balde:
// filtra itens com quantidade > 0 no status pedido, projeta para
// {nome, quantidade, valor} e ordena por valor decrescente. A ordenação é
// estável — empates preservam a ordem original de agregação. Retorna uma
// fatia vazia (não erro) quando nenhum item qualifica; o consumidor
// renderiza o estado vazio explícito.
func FilterByStatus(items []domain.ValuedItem, status domain.StatusBucket) []domain.RankedItem {
	ranked := make([]domain.RankedItem, 0, len(items))

	for _, item := range items {
		var quantity int
		var value float64

		switch status {
		case domain.BucketActive:
			quantity, value = item.ActiveQuantity, item.ActiveValue
		case domain.BucketBroken:
			quantity, value = item.BrokenQuantity, item.BrokenValue
		case domain.BucketInactive:
			quantity, value = item.InactiveQuantity, item.InactiveValue
		default:
			continue
		}

		if quantity > 0 {
			ranked = append(ranked, domain.RankedItem{
				ItemName: item.ItemName,
				Quantity: quantity,
				Value:    value,
			})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})

	return ranked
}

// Package valuation implementa o motor de valoração do inventário auditado:
// agregação por item, derivação de preço unitário, valoração por balde de
// condição, ranqueamento por status e ajuste de depreciação por período.
// Todas as funções são puras: sem efeitos colaterais, seguras para re-executar
// a cada mudança de entrada, e nunca retornam erro — entrada malformada é
// coagida para zero e a divisão por zero é guardada.
package valuation

import (
	"math"

	"auditstock/internal/domain"
)

// UnknownItemName é o nome sentinela usado quando um registro não tem nome
// de item resolvível.
const UnknownItemName = "Unknown"

// Aggregate agrupa os registros brutos por nome de item (comparação exata,
// sensível a maiúsculas) e soma as quantidades por balde e o preço total
// entre todas as salas.
//
// A chave de agrupamento é o NOME do item, não o ID: o endpoint de resumo da
// API remota é chaveado por nome e não carrega ID, então dois itens distintos
// com o mesmo nome são fundidos de propósito, por compatibilidade.
//
// Um registro cuja quantidade implícita é zero contribui com valor zero,
// independentemente do TotalPrice que carregue.
func Aggregate(records []domain.ItemDetailRecord) []domain.AggregatedItem {
	index := make(map[string]int, len(records))
	items := make([]domain.AggregatedItem, 0, len(records))

	for _, rec := range records {
		name := rec.ItemName
		if name == "" {
			name = UnknownItemName
		}

		i, ok := index[name]
		if !ok {
			items = append(items, domain.AggregatedItem{ItemName: name})
			i = len(items) - 1
			index[name] = i
		}

		active := coerceQuantity(rec.ActiveQuantity)
		broken := coerceQuantity(rec.BrokenQuantity)
		inactive := coerceQuantity(rec.InactiveQuantity)

		items[i].ActiveQuantity += active
		items[i].BrokenQuantity += broken
		items[i].InactiveQuantity += inactive

		// Registro sem quantidade não contribui valor.
		if active+broken+inactive > 0 {
			items[i].TotalValue += coercePrice(rec.TotalPrice)
		}
	}

	for i := range items {
		items[i].TotalQuantity = items[i].ActiveQuantity +
			items[i].BrokenQuantity + items[i].InactiveQuantity
	}

	return items
}

// FromSummary consome a forma pré-agregada do endpoint de resumo
// ({item_name, active, damage, inactive, total, total_price}), traduzindo
// damage -> quantidade quebrada. A quantidade total é recomputada a partir
// dos baldes (o campo 'total' do resumo é redundante e pode estar
// desatualizado). Linhas duplicadas por nome são fundidas como em Aggregate.
func FromSummary(rows []domain.AuditSummaryRow) []domain.AggregatedItem {
	index := make(map[string]int, len(rows))
	items := make([]domain.AggregatedItem, 0, len(rows))

	for _, row := range rows {
		name := row.ItemName
		if name == "" {
			name = UnknownItemName
		}

		i, ok := index[name]
		if !ok {
			items = append(items, domain.AggregatedItem{ItemName: name})
			i = len(items) - 1
			index[name] = i
		}

		active := coerceQuantity(row.Active)
		broken := coerceQuantity(row.Damage)
		inactive := coerceQuantity(row.Inactive)

		items[i].ActiveQuantity += active
		items[i].BrokenQuantity += broken
		items[i].InactiveQuantity += inactive

		if active+broken+inactive > 0 {
			items[i].TotalValue += coercePrice(row.TotalPrice)
		}
	}

	for i := range items {
		items[i].TotalQuantity = items[i].ActiveQuantity +
			items[i].BrokenQuantity + items[i].InactiveQuantity
	}

	return items
}

// coerceQuantity coage quantidades malformadas (negativas) para 0.
// A fonte de dados é best-effort; nunca lançamos erro aqui.
func coerceQuantity(q int) int {
	if q < 0 {
		return 0
	}
	return q
}

// coercePrice coage preços malformados (negativos ou não-finitos) para 0.
func coercePrice(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}

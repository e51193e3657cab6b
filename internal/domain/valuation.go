package domain

// StatusBucket é um tipo string para as três categorias de condição do
// estoque auditado.
type StatusBucket string

// Constantes para os baldes de condição (boas práticas)
const (
	BucketActive   StatusBucket = "active"
	BucketBroken   StatusBucket = "broken"
	BucketInactive StatusBucket = "inactive"
)

// ParseStatusBucket converte a string de rota/query em um StatusBucket
// válido. Retorna ok=false para qualquer outro valor.
func ParseStatusBucket(s string) (StatusBucket, bool) {
	switch StatusBucket(s) {
	case BucketActive, BucketBroken, BucketInactive:
		return StatusBucket(s), true
	}
	return "", false
}

// AggregatedItem é o resultado da agregação: um por nome de item distinto
// dentro do escopo, com as quantidades somadas por balde e o valor monetário
// total somado entre todas as salas. Nunca é persistido — é recalculado a
// cada leitura a partir do conjunto de registros atual.
type AggregatedItem struct {
	ItemName         string  `json:"item_name"`
	ActiveQuantity   int     `json:"active_quantity"`
	BrokenQuantity   int     `json:"broken_quantity"`
	InactiveQuantity int     `json:"inactive_quantity"`
	TotalQuantity    int     `json:"total_quantity"`
	TotalValue       float64 `json:"total_value"`
}

// ValuedItem adiciona ao AggregatedItem o preço unitário derivado e o valor
// de cada balde (valor = quantidade × preço unitário × fator de retenção).
// O fator de retenção é 1.0 para ativo/inativo e 0.95 para quebrado.
type ValuedItem struct {
	AggregatedItem
	UnitPrice     float64 `json:"unit_price"`
	ActiveValue   float64 `json:"active_value"`
	BrokenValue   float64 `json:"broken_value"`
	InactiveValue float64 `json:"inactive_value"`
}

// RankedItem é a linha pronta para apresentação das páginas por status:
// nome, quantidade do balde solicitado e o valor daquele balde.
type RankedItem struct {
	ItemName string  `json:"item_name"`
	Quantity int     `json:"quantity"`
	Value    float64 `json:"value"`
}

// AdjustedTotal é o resultado do ajuste de depreciação por período.
type AdjustedTotal struct {
	AdjustedValue   float64 `json:"adjusted_value"`
	ReductionAmount float64 `json:"reduction_amount"`
}

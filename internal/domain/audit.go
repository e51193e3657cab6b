package domain

import (
	"time"
)

// Audit representa um período de auditoria de inventário (identificado por
// mês/ano). Os registros de detalhe (ItemDetails) e as linhas de resumo
// pré-agregadas (Summary) são carregados junto quando o período é buscado
// por ID.
type Audit struct {
	ID        string    `json:"id"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Carregados apenas em FindByID (vazios na listagem).
	ItemDetails []ItemDetailRecord `json:"item_details,omitempty"`
	Summary     []AuditSummaryRow  `json:"summary,omitempty"`
}

// AuditSummaryRow é a forma pré-agregada que o endpoint de resumo da API
// remota pode fornecer, uma linha por item. Quando presente, o Agregador
// consome essa forma diretamente (após traduzir damage -> quebrado), em vez
// de recomputar a agregação a partir dos registros brutos.
type AuditSummaryRow struct {
	AuditID    string  `json:"audit_id"`
	ItemName   string  `json:"item_name"`
	Active     int     `json:"active"`
	Damage     int     `json:"damage"`
	Inactive   int     `json:"inactive"`
	Total      int     `json:"total"`
	TotalPrice float64 `json:"total_price"`
}

// ValuationReport é a visão de apresentação de um período: itens valorados,
// total de ativos e o ajuste de depreciação aplicado por cima. Todos os
// valores monetários aqui já estão arredondados para 2 casas decimais
// (o arredondamento acontece SOMENTE nesta fronteira, nunca no cálculo).
type ValuationReport struct {
	AuditID             string       `json:"audit_id"`
	Items               []ValuedItem `json:"items"`
	TotalAssetValue     float64      `json:"total_asset_value"`
	ReductionPercentage float64      `json:"reduction_percentage"`
	ReductionAmount     float64      `json:"reduction_amount"`
	AdjustedValue       float64      `json:"adjusted_value"`
	GeneratedAt         time.Time    `json:"generated_at"`
}

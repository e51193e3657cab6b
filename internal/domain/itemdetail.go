package domain

import (
	"time"
)

// ItemDetailRecord representa o registro bruto de auditoria de um item em uma
// sala, dentro de um período de auditoria (a Entidade de entrada do motor de
// valoração). As quantidades são divididas em três baldes de condição
// (ativo/quebrado/inativo) e o TotalPrice é o valor pago pelo conjunto todo do
// registro — NUNCA um preço unitário.
type ItemDetailRecord struct {
	ID               string    `json:"id"`
	AuditID          string    `json:"audit_id"`
	RoomID           string    `json:"room_id"`
	ItemID           string    `json:"item_id"`
	ItemName         string    `json:"item_name"`
	ActiveQuantity   int       `json:"active_quantity"`
	BrokenQuantity   int       `json:"broken_quantity"`
	InactiveQuantity int       `json:"inactive_quantity"`
	TotalPrice       float64   `json:"total_price"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TotalQuantity retorna a quantidade implícita do registro (soma dos três
// baldes). O TotalPrice só tem significado em relação a essa quantidade.
func (r ItemDetailRecord) TotalQuantity() int {
	return r.ActiveQuantity + r.BrokenQuantity + r.InactiveQuantity
}

package domain

import "time"

// AuditAdjustment é o percentual de redução persistido de um período de
// auditoria. Criado implicitamente com 0 quando o período é criado; apenas o
// percentual é persistido — os totais ajustados são sempre re-derivados.
// Inclui uma coluna 'version' para controle de concorrência otimista.
type AuditAdjustment struct {
	AuditID             string    `json:"audit_id"`
	ReductionPercentage float64   `json:"reduction_percentage"`
	Version             int       `json:"version"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// AdjustmentRequest é o payload esperado para a edição do percentual de
// redução de um período.
type AdjustmentRequest struct {
	ReductionPercentage float64 `json:"reduction_percentage" validate:"gte=0,lte=100"`
}

// Estados do rascunho de ajuste (máquina de estados do Sync Controller).
const (
	DraftIdle       = "idle"       // valor exibido == valor persistido
	DraftEditing    = "editing"    // editável; valor otimista retido (pós-erro)
	DraftDebouncing = "debouncing" // timer armado, aguardando janela quieta
	DraftSaving     = "saving"     // exatamente um save em voo para o período
)

// AdjustmentDraft é o estado local e transiente de edição de um período.
// O valor pendente é otimista: permanece exibido mesmo se o save falhar.
// Durante um save em voo o estado permanece "saving"; uma edição aceita
// nesse intervalo aparece em QueuedEdit e dispara seu próprio ciclo de
// debounce quando o save completar.
type AdjustmentDraft struct {
	AuditID             string  `json:"audit_id"`
	PendingPercentage   float64 `json:"pending_percentage"`
	PersistedPercentage float64 `json:"persisted_percentage"`
	IsSaving            bool    `json:"is_saving"`
	QueuedEdit          bool    `json:"queued_edit"`
	State               string  `json:"state"`
}

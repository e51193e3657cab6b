package adjustment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"auditstock/internal/api/audit"
	"auditstock/internal/domain"
	apperror "auditstock/internal/errors"
	"auditstock/internal/pkg/logger"
	"auditstock/internal/pkg/validation"
)

// AdjustmentController é o contrato do Sync Controller de ajustes. A edição
// é registrada de forma síncrona; a persistência acontece depois da janela
// de debounce, fora do ciclo da requisição.
type AdjustmentController interface {
	SubmitEdit(ctx context.Context, auditID string, pct float64) (domain.AdjustmentDraft, error)
	Draft(auditID string) domain.AdjustmentDraft
}

// Handler agrupa os métodos de Handler do ajuste de depreciação por período.
type Handler struct {
	Controller AdjustmentController
	Logger     logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Controller e o Logger.
func NewHandler(ctrl AdjustmentController, log logger.Logger) *Handler {
	return &Handler{
		Controller: ctrl,
		Logger:     log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		// Sucesso
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
				http.Error(w, "Erro ao codificar resposta", http.StatusInternalServerError)
			}
		}
		return
	}

	// TRATAMENTO DE ERROS
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	errorResponse := map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse)
}

// UpdateAdjustmentHandler lida com PATCH /v1/audits/{id}/adjustment.
// A resposta é 202 Accepted com o rascunho: o save remoto é assíncrono
// (debounce) e o estado pode ser acompanhado pelo GET do rascunho.
// @Summary Edita o percentual de redução do período
// @Description Registra uma edição do percentual de depreciação (0 a 100). Edições rápidas são coalescidas: só o último valor é persistido após a janela quieta.
// @Tags adjustments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do período de auditoria"
// @Param adjustment body domain.AdjustmentRequest true "Percentual de redução"
// @Success 202 {object} domain.AdjustmentDraft "Edição aceita; persistência pendente"
// @Failure 400 {object} domain.ErrorResponse "Percentual fora de [0,100] ou payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Failure 403 {object} domain.ErrorResponse "Sem direito de gestão"
// @Router /audits/{id}/adjustment [patch]
func (h *Handler) UpdateAdjustmentHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	parts := audit.PathParts(r)
	if len(parts) < 1 || parts[0] == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("O ID do período é obrigatório na rota."), http.StatusAccepted)
		return
	}
	auditID := parts[0]

	var req domain.AdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Corpo da requisição inválido ou malformado."), http.StatusAccepted)
		return
	}

	// Validação estrutural das tags; NaN/Inf são barrados pelo Controller.
	if err := validation.Struct(req); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusAccepted)
		return
	}

	draft, err := h.Controller.SubmitEdit(r.Context(), auditID, req.ReductionPercentage)
	h.handleServiceResponse(w, r, draft, err, http.StatusAccepted)
}

// GetAdjustmentHandler lida com GET /v1/audits/{id}/adjustment e retorna o
// rascunho atual do período (valor otimista, valor persistido e estado).
// @Summary Consulta o rascunho do ajuste do período
// @Description Retorna o estado do rascunho: idle, editing, debouncing ou saving.
// @Tags adjustments
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do período de auditoria"
// @Success 200 {object} domain.AdjustmentDraft "Rascunho atual"
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Router /audits/{id}/adjustment [get]
func (h *Handler) GetAdjustmentHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	parts := audit.PathParts(r)
	if len(parts) < 1 || parts[0] == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("O ID do período é obrigatório na rota."), http.StatusOK)
		return
	}

	draft := h.Controller.Draft(parts[0])
	h.handleServiceResponse(w, r, draft, nil, http.StatusOK)
}

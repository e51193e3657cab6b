package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"auditstock/internal/domain"
	apperror "auditstock/internal/errors"
	"auditstock/internal/pkg/logger"
)

// AuditService define o contrato que o Handler espera da camada de Serviço.
type AuditService interface {
	ListAudits(ctx context.Context) ([]domain.Audit, error)
	GetValuationReport(ctx context.Context, auditID string) (domain.ValuationReport, error)
	GetRankedItems(ctx context.Context, auditID string, status domain.StatusBucket) ([]domain.RankedItem, error)
}

// Handler agrupa todos os métodos de Handler dos períodos de auditoria.
type Handler struct {
	Service AuditService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc AuditService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
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

// PathParts extrai os segmentos após /v1/audits/ (e.g. {id}/valuation).
func PathParts(r *http.Request) []string {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/audits/")
	return strings.Split(strings.Trim(rest, "/"), "/")
}

// ListAuditsHandler lida com a requisição GET /v1/audits.
// @Summary Lista os períodos de auditoria
// @Description Lista os períodos de auditoria disponíveis, mais recentes primeiro.
// @Tags audits
// @Produce json
// @Success 200 {array} domain.Audit "Períodos de auditoria"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /audits [get]
func (h *Handler) ListAuditsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	audits, err := h.Service.ListAudits(r.Context())
	h.handleServiceResponse(w, r, audits, err, http.StatusOK)
}

// GetValuationHandler lida com a requisição GET /v1/audits/{id}/valuation.
// @Summary Relatório de valoração do período
// @Description Retorna os itens valorados, o total de ativos e o ajuste de depreciação do período. Valores arredondados para 2 casas.
// @Tags audits
// @Produce json
// @Param id path string true "ID do período de auditoria"
// @Success 200 {object} domain.ValuationReport "Relatório de valoração"
// @Failure 404 {object} domain.ErrorResponse "Período não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /audits/{id}/valuation [get]
func (h *Handler) GetValuationHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	parts := PathParts(r)
	if len(parts) < 1 || parts[0] == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("O ID do período é obrigatório na rota."), http.StatusOK)
		return
	}

	report, err := h.Service.GetValuationReport(r.Context(), parts[0])
	h.handleServiceResponse(w, r, report, err, http.StatusOK)
}

// GetRankedItemsHandler lida com GET /v1/audits/{id}/valuation/{status}.
// @Summary Itens ranqueados por balde de condição
// @Description Lista os itens do período com quantidade > 0 no balde pedido (active|broken|inactive), ordenados por valor decrescente.
// @Tags audits
// @Produce json
// @Param id path string true "ID do período de auditoria"
// @Param status path string true "Balde de condição" Enums(active, broken, inactive)
// @Success 200 {array} domain.RankedItem "Itens ranqueados (pode ser vazio)"
// @Failure 400 {object} domain.ErrorResponse "Balde inválido"
// @Failure 404 {object} domain.ErrorResponse "Período não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /audits/{id}/valuation/{status} [get]
func (h *Handler) GetRankedItemsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	parts := PathParts(r)
	if len(parts) < 3 || parts[0] == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Rota esperada: /v1/audits/{id}/valuation/{status}."), http.StatusOK)
		return
	}

	status, ok := domain.ParseStatusBucket(parts[2])
	if !ok {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError(
			fmt.Sprintf("Balde de condição inválido: '%s' (esperado active, broken ou inactive).", parts[2]),
		), http.StatusOK)
		return
	}

	ranked, err := h.Service.GetRankedItems(r.Context(), parts[0], status)
	h.handleServiceResponse(w, r, ranked, err, http.StatusOK)
}

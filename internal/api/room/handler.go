package room

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

// RoomService define o contrato que o Handler espera da camada de Serviço.
type RoomService interface {
	GetAllRooms(ctx context.Context) ([]domain.Room, error)
	GetRoomByID(ctx context.Context, id string) (domain.Room, error)
}

// Handler agrupa os métodos de Handler das salas auditadas.
type Handler struct {
	Service RoomService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc RoomService, log logger.Logger) *Handler {
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

// ListRoomsHandler lida com a requisição GET /v1/rooms.
// @Summary Lista as salas
// @Description Lista as salas cujos itens aparecem nas auditorias.
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Room "Salas"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /rooms [get]
func (h *Handler) ListRoomsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	rooms, err := h.Service.GetAllRooms(r.Context())
	h.handleServiceResponse(w, r, rooms, err, http.StatusOK)
}

// GetRoomHandler lida com a requisição GET /v1/rooms/{id}.
// @Summary Busca uma sala pelo ID
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sala"
// @Success 200 {object} domain.Room "Sala"
// @Failure 404 {object} domain.ErrorResponse "Sala não encontrada"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /rooms/{id} [get]
func (h *Handler) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/rooms/"), "/")
	if id == "" {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("O ID da sala é obrigatório na rota."), http.StatusOK)
		return
	}

	room, err := h.Service.GetRoomByID(r.Context(), id)
	h.handleServiceResponse(w, r, room, err, http.StatusOK)
}

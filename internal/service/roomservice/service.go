package roomservice

import (
	"context"

	"auditstock/internal/domain"
	apperror "auditstock/internal/errors"
	"auditstock/internal/pkg/logger"
)

// RoomRepository define o contrato que o Serviço espera da camada de
// Persistência para as salas.
type RoomRepository interface {
	FindAll(ctx context.Context) ([]domain.Room, error)
	FindByID(ctx context.Context, id string) (domain.Room, error)
}

// Service expõe as leituras de referência das salas auditadas.
type Service struct {
	repo   RoomRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Salas.
func NewService(repo RoomRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetAllRooms lista as salas.
func (s *Service) GetAllRooms(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar salas no repositório.", err)
		return nil, err
	}
	return rooms, nil
}

// GetRoomByID busca uma sala pelo ID.
func (s *Service) GetRoomByID(ctx context.Context, id string) (domain.Room, error) {
	if id == "" {
		return domain.Room{}, apperror.NewValidationError("O ID da sala não pode ser vazio.")
	}
	return s.repo.FindByID(ctx, id)
}

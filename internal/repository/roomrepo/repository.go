package roomrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"auditstock/internal/domain"
	"auditstock/internal/errors"
	"auditstock/internal/pkg/logger"
)

// RoomRepository implementa as leituras de referência das salas auditadas.
// O CRUD completo de salas pertence ao colaborador externo.
type RoomRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewRoomRepository cria e retorna uma nova instância do Repositório.
func NewRoomRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *RoomRepository {
	return &RoomRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// FindAll lista as salas em ordem alfabética.
func (r *RoomRepository) FindAll(ctx context.Context) ([]domain.Room, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, name, created_at, updated_at
        FROM rooms
        ORDER BY name`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao listar salas no DB.", err)
		return nil, errors.NewDBError("Falha ao listar salas", err)
	}
	defer rows.Close()

	rooms := []domain.Room{}
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, errors.NewDBError("Falha ao ler sala", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar salas", err)
	}

	return rooms, nil
}

// FindByID busca uma sala pelo ID.
func (r *RoomRepository) FindByID(ctx context.Context, id string) (domain.Room, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, name, created_at, updated_at
        FROM rooms
        WHERE id = $1`

	var room domain.Room
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&room.ID, &room.Name, &room.CreatedAt, &room.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return domain.Room{}, errors.NewNotFoundError(fmt.Sprintf("Sala com ID %s não existe na base de dados.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar sala no DB.", err)
		return domain.Room{}, errors.NewDBError("Falha ao buscar sala", err)
	}

	return room, nil
}

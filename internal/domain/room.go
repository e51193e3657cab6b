package domain

import (
	"time"
)

// Room representa uma sala física auditada. O CRUD de salas pertence a um
// colaborador externo; este serviço expõe apenas leituras de referência para
// as telas de valoração.
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package auditrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"auditstock/internal/domain"
	"auditstock/internal/errors"
	"auditstock/internal/pkg/logger"
)

// AuditRepository implementa o acesso a dados dos períodos de auditoria e
// seus registros de detalhe. O motor de valoração só LÊ estes dados — a
// escrita dos registros base pertence ao colaborador de CRUD externo.
type AuditRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewAuditRepository cria e retorna uma nova instância do Repositório.
func NewAuditRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *AuditRepository {
	return &AuditRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// FindAll lista os períodos de auditoria, mais recentes primeiro.
// Não carrega detalhes nem resumo (apenas a listagem).
func (r *AuditRepository) FindAll(ctx context.Context) ([]domain.Audit, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, month, year, created_at, updated_at
        FROM audits
        ORDER BY year DESC, month DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao listar períodos de auditoria no DB.", err)
		return nil, errors.NewDBError("Falha ao listar períodos de auditoria", err)
	}
	defer rows.Close()

	audits := []domain.Audit{}
	for rows.Next() {
		var a domain.Audit
		if err := rows.Scan(&a.ID, &a.Month, &a.Year, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, errors.NewDBError("Falha ao ler período de auditoria", err)
		}
		audits = append(audits, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar períodos de auditoria", err)
	}

	return audits, nil
}

// FindByID busca um período de auditoria com suas linhas de resumo
// pré-agregadas (quando existirem) e seus registros brutos de detalhe.
// O serviço decide qual das duas formas alimenta o Agregador.
func (r *AuditRepository) FindByID(ctx context.Context, id string) (domain.Audit, error) {
	r.logger.Debug("Buscando período de auditoria no repositório.", map[string]interface{}{"audit_id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, month, year, created_at, updated_at
        FROM audits
        WHERE id = $1`

	var audit domain.Audit
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&audit.ID, &audit.Month, &audit.Year, &audit.CreatedAt, &audit.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return domain.Audit{}, errors.NewNotFoundError(fmt.Sprintf("Período de auditoria %s não existe na base de dados.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar período de auditoria no DB.", err)
		return domain.Audit{}, errors.NewDBError("Falha ao buscar período de auditoria", err)
	}

	if audit.Summary, err = r.findSummary(ctxTimeout, id); err != nil {
		return domain.Audit{}, err
	}
	if audit.ItemDetails, err = r.findItemDetails(ctxTimeout, id); err != nil {
		return domain.Audit{}, err
	}

	return audit, nil
}

// findSummary carrega as linhas pré-agregadas do período (forma alternativa
// do endpoint de resumo). Ausência de linhas não é erro: o chamador cai de
// volta na agregação dos registros brutos.
func (r *AuditRepository) findSummary(ctx context.Context, auditID string) ([]domain.AuditSummaryRow, error) {
	query := `
        SELECT audit_id, item_name, active, damage, inactive, total, total_price
        FROM audit_summaries
        WHERE audit_id = $1`

	rows, err := r.DB.QueryContext(ctx, query, auditID)
	if err != nil {
		r.logger.Error("Falha ao buscar resumo do período no DB.", err)
		return nil, errors.NewDBError("Falha ao buscar resumo do período", err)
	}
	defer rows.Close()

	summary := []domain.AuditSummaryRow{}
	for rows.Next() {
		var s domain.AuditSummaryRow
		if err := rows.Scan(&s.AuditID, &s.ItemName, &s.Active, &s.Damage, &s.Inactive, &s.Total, &s.TotalPrice); err != nil {
			return nil, errors.NewDBError("Falha ao ler linha de resumo", err)
		}
		summary = append(summary, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar resumo do período", err)
	}

	return summary, nil
}

// findItemDetails carrega os registros brutos (sala × item) do período.
func (r *AuditRepository) findItemDetails(ctx context.Context, auditID string) ([]domain.ItemDetailRecord, error) {
	query := `
        SELECT id, audit_id, COALESCE(room_id::text, ''), COALESCE(item_id::text, ''), item_name,
               active_quantity, broken_quantity, inactive_quantity, total_price,
               created_at, updated_at
        FROM item_details
        WHERE audit_id = $1
        ORDER BY created_at`

	rows, err := r.DB.QueryContext(ctx, query, auditID)
	if err != nil {
		r.logger.Error("Falha ao buscar registros de detalhe no DB.", err)
		return nil, errors.NewDBError("Falha ao buscar registros de detalhe", err)
	}
	defer rows.Close()

	details := []domain.ItemDetailRecord{}
	for rows.Next() {
		var d domain.ItemDetailRecord
		if err := rows.Scan(
			&d.ID, &d.AuditID, &d.RoomID, &d.ItemID, &d.ItemName,
			&d.ActiveQuantity, &d.BrokenQuantity, &d.InactiveQuantity, &d.TotalPrice,
			&d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, errors.NewDBError("Falha ao ler registro de detalhe", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar registros de detalhe", err)
	}

	return details, nil
}

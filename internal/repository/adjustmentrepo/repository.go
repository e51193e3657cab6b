package adjustmentrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"auditstock/internal/domain"
	"auditstock/internal/errors"
	"auditstock/internal/pkg/cache"
	"auditstock/internal/pkg/logger"
)

// AdjustmentRepository implementa a persistência do percentual de redução
// por período. É o único caminho de ESCRITA do motor de valoração: só o
// percentual é persistido, nunca os totais derivados.
type AdjustmentRepository struct {
	DB        *sql.DB
	Cache     cache.Client // Invalidação do relatório cacheado após o save
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewAdjustmentRepository cria e retorna uma nova instância do Repositório.
func NewAdjustmentRepository(db *sql.DB, cacheClient cache.Client, dbTimeout time.Duration, logger logger.Logger) *AdjustmentRepository {
	return &AdjustmentRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// GetByAuditID busca o ajuste persistido de um período. Retorna NotFound
// quando o período ainda não tem linha de ajuste — o chamador trata isso
// como o valor padrão 0 (o ajuste é criado implicitamente junto do período).
func (r *AdjustmentRepository) GetByAuditID(ctx context.Context, auditID string) (domain.AuditAdjustment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT audit_id, reduction_percentage, version, updated_at
        FROM audit_adjustments
        WHERE audit_id = $1`

	var adj domain.AuditAdjustment
	err := r.DB.QueryRowContext(ctxTimeout, query, auditID).Scan(
		&adj.AuditID, &adj.ReductionPercentage, &adj.Version, &adj.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return domain.AuditAdjustment{}, errors.NewNotFoundError(fmt.Sprintf("Ajuste para o período %s não encontrado.", auditID))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar ajuste do período no DB.", err)
		return domain.AuditAdjustment{}, errors.NewDBError("Falha ao buscar ajuste do período", err)
	}

	return adj, nil
}

// UpdateReduction persiste o percentual de redução de um período (upsert:
// a linha é criada com o próprio save quando o período nunca foi ajustado).
// Após o commit, invalida o relatório de valoração cacheado do período para
// que a próxima leitura re-derive os totais com o novo percentual.
func (r *AdjustmentRepository) UpdateReduction(ctx context.Context, auditID string, reductionPercentage float64) (domain.AuditAdjustment, error) {
	r.logger.Debug("Persistindo percentual de redução.", map[string]interface{}{
		"audit_id":             auditID,
		"reduction_percentage": reductionPercentage,
	})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        INSERT INTO audit_adjustments (audit_id, reduction_percentage, version, updated_at)
        VALUES ($1, $2, 1, $3)
        ON CONFLICT (audit_id) DO UPDATE
        SET reduction_percentage = EXCLUDED.reduction_percentage,
            version = audit_adjustments.version + 1,
            updated_at = EXCLUDED.updated_at
        RETURNING audit_id, reduction_percentage, version, updated_at`

	var adj domain.AuditAdjustment
	err := r.DB.QueryRowContext(ctxTimeout, query, auditID, reductionPercentage, time.Now()).Scan(
		&adj.AuditID, &adj.ReductionPercentage, &adj.Version, &adj.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao persistir percentual de redução no DB.", err)
		return domain.AuditAdjustment{}, errors.NewDBError("Falha ao persistir percentual de redução", err)
	}

	// Invalidação do cache (write-side do cache-aside). Falha aqui não
	// invalida o save — o relatório cacheado expira pelo TTL de qualquer
	// forma.
	if cacheErr := r.Cache.Delete(ctxTimeout, cache.KeyAuditValuation(auditID)); cacheErr != nil {
		r.logger.Warn("Falha ao invalidar relatório cacheado após save.", map[string]interface{}{
			"audit_id": auditID,
			"error":    cacheErr.Error(),
		})
	}

	r.logger.Info("Percentual de redução persistido com sucesso.", map[string]interface{}{
		"audit_id":             adj.AuditID,
		"reduction_percentage": adj.ReductionPercentage,
		"new_version":          adj.Version,
	})
	return adj, nil
}

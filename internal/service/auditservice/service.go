package auditservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"auditstock/internal/domain"
	apperror "auditstock/internal/errors"
	"auditstock/internal/pkg/cache"
	"auditstock/internal/pkg/logger"
	"auditstock/internal/valuation"
)

// AuditRepository define o contrato que o Serviço espera da camada de
// Persistência para os períodos de auditoria.
type AuditRepository interface {
	FindAll(ctx context.Context) ([]domain.Audit, error)
	FindByID(ctx context.Context, id string) (domain.Audit, error)
}

// AdjustmentReader define a leitura do percentual persistido de um período.
type AdjustmentReader interface {
	GetByAuditID(ctx context.Context, auditID string) (domain.AuditAdjustment, error)
}

// Service monta as visões de valoração de um período: itens valorados,
// total de ativos, ajuste de depreciação e as listas ranqueadas por status.
// Toda a matemática vive no pacote valuation (funções puras); o serviço só
// orquestra fonte de dados, fallback de agregação e cache.
type Service struct {
	repo        AuditRepository
	adjustments AdjustmentReader
	cache       cache.Client
	cacheTTL    time.Duration
	logger      logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Auditoria.
func NewService(repo AuditRepository, adjustments AdjustmentReader, cacheClient cache.Client, cacheTTL time.Duration, logger logger.Logger) *Service {
	return &Service{
		repo:        repo,
		adjustments: adjustments,
		cache:       cacheClient,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// ListAudits lista os períodos de auditoria disponíveis.
func (s *Service) ListAudits(ctx context.Context) ([]domain.Audit, error) {
	return s.repo.FindAll(ctx)
}

// GetValuationReport monta o relatório de valoração do período, com
// estratégia Cache-Aside: o relatório é caro (agregação + valoração sobre
// todos os registros) e é invalidado quando um save de ajuste commita.
// Os valores do relatório são arredondados para 2 casas — esta é a fronteira
// de apresentação.
func (s *Service) GetValuationReport(ctx context.Context, auditID string) (domain.ValuationReport, error) {
	key := cache.KeyAuditValuation(auditID)

	// 1. Tentar obter do Cache (Redis)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var report domain.ValuationReport
		if json.Unmarshal([]byte(cached), &report) == nil {
			s.logger.Debug("Relatório de valoração servido do cache.", map[string]interface{}{"audit_id": auditID})
			return report, nil
		}
		// Desserialização falhou: segue para a re-derivação.
	} else if err != cache.ErrCacheMiss {
		s.logger.Warn("Falha ao ler relatório do cache; derivando do DB.", map[string]interface{}{
			"audit_id": auditID,
			"error":    err.Error(),
		})
	}

	// 2. Derivar do DB
	valued, err := s.valuedItems(ctx, auditID)
	if err != nil {
		return domain.ValuationReport{}, err
	}

	pct, err := s.reductionPercentage(ctx, auditID)
	if err != nil {
		return domain.ValuationReport{}, err
	}

	total := valuation.TotalAssetValue(valued)
	adjusted := valuation.Adjust(total, pct)

	report := domain.ValuationReport{
		AuditID:             auditID,
		Items:               roundForPresentation(valued),
		TotalAssetValue:     valuation.Round2(total),
		ReductionPercentage: pct,
		ReductionAmount:     adjusted.ReductionAmount,
		AdjustedValue:       adjusted.AdjustedValue,
		GeneratedAt:         time.Now(),
	}

	// 3. Popular o cache para as próximas leituras (falha não é fatal).
	if payload, marshalErr := json.Marshal(report); marshalErr == nil {
		if cacheErr := s.cache.Set(ctx, key, payload, s.cacheTTL); cacheErr != nil {
			s.logger.Warn("Falha ao popular cache do relatório.", map[string]interface{}{
				"audit_id": auditID,
				"error":    cacheErr.Error(),
			})
		}
	}

	return report, nil
}

// GetRankedItems monta a lista ranqueada de um balde de condição para as
// páginas por status. Valores arredondados na saída (apresentação).
func (s *Service) GetRankedItems(ctx context.Context, auditID string, status domain.StatusBucket) ([]domain.RankedItem, error) {
	valued, err := s.valuedItems(ctx, auditID)
	if err != nil {
		return nil, err
	}

	ranked := valuation.FilterByStatus(valued, status)
	for i := range ranked {
		ranked[i].Value = valuation.Round2(ranked[i].Value)
	}
	return ranked, nil
}

// valuedItems carrega o período e aplica o pipeline agregação -> valoração,
// sem arredondar (os chamadores arredondam na apresentação). Quando o
// período traz linhas de resumo pré-agregadas, o Agregador é desviado e o
// resumo é consumido diretamente; caso contrário a agregação é computada
// dos registros brutos.
func (s *Service) valuedItems(ctx context.Context, auditID string) ([]domain.ValuedItem, error) {
	audit, err := s.repo.FindByID(ctx, auditID)
	if err != nil {
		return nil, err
	}

	var aggregated []domain.AggregatedItem
	if len(audit.Summary) > 0 {
		aggregated = valuation.FromSummary(audit.Summary)
	} else {
		aggregated = valuation.Aggregate(audit.ItemDetails)
	}

	return valuation.ValuateAll(aggregated), nil
}

// reductionPercentage lê o percentual persistido do período; ausência de
// linha de ajuste significa o padrão 0 (criado implicitamente), não erro.
func (s *Service) reductionPercentage(ctx context.Context, auditID string) (float64, error) {
	adj, err := s.adjustments.GetByAuditID(ctx, auditID)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return 0, nil
		}
		return 0, apperror.NewInternalError(fmt.Sprintf("Falha ao ler ajuste do período %s.", auditID), err)
	}
	return adj.ReductionPercentage, nil
}

// roundForPresentation copia os itens valorados com os campos monetários
// arredondados para 2 casas.
func roundForPresentation(items []domain.ValuedItem) []domain.ValuedItem {
	rounded := make([]domain.ValuedItem, len(items))
	for i, item := range items {
		item.TotalValue = valuation.Round2(item.TotalValue)
		item.UnitPrice = valuation.Round2(item.UnitPrice)
		item.ActiveValue = valuation.Round2(item.ActiveValue)
		item.BrokenValue = valuation.Round2(item.BrokenValue)
		item.InactiveValue = valuation.Round2(item.InactiveValue)
		rounded[i] = item
	}
	return rounded
}

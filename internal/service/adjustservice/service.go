// Package adjustservice implementa o Sync Controller de ajustes: uma máquina
// de estados por período de auditoria que aceita edições rápidas do
// percentual de redução, faz debounce da persistência remota e rastreia o
// estado em-voo/salvo/erro sem bloquear novas edições.
//
// Estados por período: Idle -> Editing -> Debouncing -> Saving ->
// {Idle (sucesso) | Editing (erro, valor retido)}. Cada período tem seu
// próprio timer e flag de saving, chaveados pelo ID do período; edições em
// um período nunca cancelam nem bloqueiam o save em voo de outro.
package adjustservice

import (
	"context"
	"errors"
	"sync"
	"time"

	"auditstock/internal/domain"
	apperror "auditstock/internal/errors"
	"auditstock/internal/pkg/logger"
	"auditstock/internal/valuation"
)

// DefaultDebounce é a janela quieta padrão antes do save disparar.
const DefaultDebounce = 500 * time.Millisecond

// AdjustmentPersister é o colaborador de persistência: uma única operação
// de escrita, invocada no estado Saving.
type AdjustmentPersister interface {
	GetByAuditID(ctx context.Context, auditID string) (domain.AuditAdjustment, error)
	UpdateReduction(ctx context.Context, auditID string, reductionPercentage float64) (domain.AuditAdjustment, error)
}

// Notifier recebe os avisos visíveis ao usuário do ciclo de save. O handler
// HTTP não espera o save (ele é assíncrono), então sucesso e falha são
// sinalizados por aqui além do estado consultável do rascunho.
type Notifier interface {
	SaveSucceeded(auditID string, reductionPercentage float64)
	SaveFailed(auditID string, reductionPercentage float64, err error)
}

// entry é o estado mutável de um período em edição. Protegido pelo mutex do
// Controller; os timers disparam em goroutines próprias e re-adquirem o lock.
type entry struct {
	pending   float64 // valor otimista exibido (nunca revertido em erro)
	persisted float64 // último valor confirmado pelo colaborador remoto
	state     string
	timer     *time.Timer
	saving    bool
	dirty     bool // edição chegou com save em voo: re-arma após completar
}

// Controller é o Sync Controller. O mapa de rascunhos é chaveado por
// período e cada período evolui de forma independente (single-flight por
// chave: no máximo um save em voo por período; uma edição durante o save
// apenas marca o período como sujo e um novo ciclo de debounce é armado
// quando o save completa — last write wins).
type Controller struct {
	mu      sync.Mutex
	entries map[string]*entry
	closed  bool

	repo     AdjustmentPersister
	notifier Notifier
	debounce time.Duration
	logger   logger.Logger
}

// NewController cria o Sync Controller. debounce <= 0 usa DefaultDebounce;
// notifier nil usa um notifier que só loga.
func NewController(repo AdjustmentPersister, debounce time.Duration, notifier Notifier, log logger.Logger) *Controller {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if notifier == nil {
		notifier = &logNotifier{logger: log}
	}
	return &Controller{
		entries:  make(map[string]*entry),
		repo:     repo,
		notifier: notifier,
		debounce: debounce,
		logger:   log,
	}
}

// SubmitEdit registra uma edição do percentual de um período. A validação é
// síncrona: valores fora de [0,100] são rejeitados com ValidationError e
// NUNCA entram no caminho de debounce/save — o valor válido anterior
// permanece exibido. Para valores válidos, o valor exibido é atualizado
// imediatamente (otimista), o timer anterior do período é cancelado e um
// novo é armado.
func (c *Controller) SubmitEdit(ctx context.Context, auditID string, pct float64) (domain.AdjustmentDraft, error) {
	if err := valuation.ValidatePercentage(pct); err != nil {
		c.logger.Debug("Edição de ajuste rejeitada na validação.", map[string]interface{}{
			"audit_id": auditID,
			"value":    pct,
		})
		return c.Draft(auditID), err
	}

	// Baseline persistido lido fora do lock (só na primeira edição do
	// período; ausência de linha significa o padrão 0).
	baseline := 0.0
	c.mu.Lock()
	_, exists := c.entries[auditID]
	c.mu.Unlock()
	if !exists {
		if adj, err := c.repo.GetByAuditID(ctx, auditID); err == nil {
			baseline = adj.ReductionPercentage
		} else {
			var notFound *apperror.NotFoundError
			if !errors.As(err, &notFound) {
				// Baseline indisponível degrada para 0; o próximo save
				// confirma o valor real.
				c.logger.Warn("Falha ao ler baseline do ajuste.", map[string]interface{}{
					"audit_id": auditID,
					"error":    err.Error(),
				})
			}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return domain.AdjustmentDraft{AuditID: auditID}, apperror.NewInternalError("O controlador de ajustes já foi encerrado.", nil)
	}

	e, ok := c.entries[auditID]
	if !ok {
		e = &entry{persisted: baseline, state: domain.DraftIdle}
		c.entries[auditID] = e
	}

	e.pending = pct

	// Cancela o timer armado e arma um novo: last write wins por período.
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}

	if e.saving {
		// Save em voo: não dispara um segundo save nem bloqueia a edição.
		// O período permanece em Saving; a edição fica enfileirada (dirty)
		// e o ciclo de debounce seguinte é armado quando o save completar.
		e.dirty = true
	} else {
		e.state = domain.DraftDebouncing
		id := auditID
		e.timer = time.AfterFunc(c.debounce, func() { c.fire(id) })
	}

	return c.draftLocked(auditID, e), nil
}

// Draft retorna o estado atual do rascunho de um período. Períodos sem
// edição em andamento aparecem como Idle com o pendente igual ao persistido
// conhecido (0 se nunca lido).
func (c *Controller) Draft(auditID string) domain.AdjustmentDraft {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[auditID]
	if !ok {
		return domain.AdjustmentDraft{AuditID: auditID, State: domain.DraftIdle}
	}
	return c.draftLocked(auditID, e)
}

// Close cancela todos os timers pendentes (saves ainda não disparados).
// Um save já em voo não é cancelado, mas seu callback de conclusão é
// guardado contra atualizar estado após o encerramento.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for _, e := range c.entries {
		if e.timer != nil {
			e.timer.Stop()
			e.timer = nil
		}
	}
}

// fire é o callback do timer de debounce: transiciona o período para Saving
// e emite exatamente um update remoto com o valor pendente atual.
func (c *Controller) fire(auditID string) {
	c.mu.Lock()
	e, ok := c.entries[auditID]
	if !ok || c.closed {
		c.mu.Unlock()
		return
	}
	if e.saving {
		// Corrida rara entre timer e conclusão do save: enfileira.
		e.dirty = true
		c.mu.Unlock()
		return
	}
	e.saving = true
	e.state = domain.DraftSaving
	e.timer = nil
	value := e.pending
	c.mu.Unlock()

	c.logger.Debug("Disparando save do ajuste.", map[string]interface{}{
		"audit_id": auditID,
		"value":    value,
	})

	// O save usa um contexto próprio: ele sobrevive à requisição HTTP que
	// originou a edição.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	adj, err := c.repo.UpdateReduction(ctx, auditID, value)
	cancel()

	c.complete(auditID, value, adj, err)
}

// complete aplica a transição pós-save. Em sucesso, o valor persistido passa
// a ser o salvo; em falha, o valor otimista NÃO é revertido e o período
// volta a Editing para retry manual. Em ambos os casos — sucesso OU falha —
// uma edição que chegou durante o voo re-arma um novo ciclo de debounce: ela
// é uma edição nova, não um retry do valor que acabou de falhar.
func (c *Controller) complete(auditID string, value float64, adj domain.AuditAdjustment, saveErr error) {
	c.mu.Lock()
	if c.closed {
		// Guarda de desmontagem: nada de atualizar estado encerrado.
		c.mu.Unlock()
		return
	}
	e, ok := c.entries[auditID]
	if !ok {
		c.mu.Unlock()
		return
	}

	e.saving = false

	rearm := false
	if saveErr != nil {
		if e.dirty {
			// A edição enfileirada durante o voo é um ciclo novo, não um
			// retry do valor que falhou: ela dispara normalmente.
			rearm = true
			e.state = domain.DraftDebouncing
		} else {
			e.state = domain.DraftEditing // valor digitado permanece visível
		}
	} else {
		e.persisted = adj.ReductionPercentage
		if e.dirty || e.pending != value {
			rearm = true
			e.state = domain.DraftDebouncing
		} else {
			e.state = domain.DraftIdle
		}
	}
	e.dirty = false

	if rearm {
		id := auditID
		e.timer = time.AfterFunc(c.debounce, func() { c.fire(id) })
	}
	c.mu.Unlock()

	if saveErr != nil {
		c.logger.Error("Falha ao salvar ajuste do período.", saveErr)
		c.notifier.SaveFailed(auditID, value, saveErr)
		return
	}
	c.notifier.SaveSucceeded(auditID, adj.ReductionPercentage)
}

// draftLocked monta a visão do rascunho. Chamar com o mutex adquirido.
func (c *Controller) draftLocked(auditID string, e *entry) domain.AdjustmentDraft {
	return domain.AdjustmentDraft{
		AuditID:             auditID,
		PendingPercentage:   e.pending,
		PersistedPercentage: e.persisted,
		IsSaving:            e.saving,
		QueuedEdit:          e.dirty,
		State:               e.state,
	}
}

// logNotifier é o Notifier padrão: apenas registra os eventos do ciclo de
// save no log estruturado.
type logNotifier struct {
	logger logger.Logger
}

func (n *logNotifier) SaveSucceeded(auditID string, pct float64) {
	n.logger.Info("Ajuste do período salvo.", map[string]interface{}{
		"audit_id":             auditID,
		"reduction_percentage": pct,
	})
}

func (n *logNotifier) SaveFailed(auditID string, pct float64, err error) {
	n.logger.Error("Ajuste do período não pôde ser salvo; valor otimista retido.", err)
}

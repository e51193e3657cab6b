package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "auditstock/docs" // registro da especificação Swagger gerada

	"auditstock/internal/api/adjustment"
	"auditstock/internal/api/audit"
	"auditstock/internal/api/room"
	"auditstock/internal/api/user"
	"auditstock/internal/domain"
	"auditstock/internal/pkg/cache"
	"auditstock/internal/pkg/middleware"
)

// Dependencies agrupa os Handlers e colaboradores que o roteador precisa.
type Dependencies struct {
	AuditHandler      *audit.Handler
	AdjustmentHandler *adjustment.Handler
	RoomHandler       *room.Handler
	UserHandler       *user.Handler

	TokenService middleware.TokenService
	CacheClient  cache.Client
	RateLimit    int
	RateWindow   time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(deps Dependencies) http.Handler {

	// Usamos o ServeMux padrão do net/http para roteamento
	// Em projetos maiores, pode-se usar um mux de terceiros (e.g., gorilla/mux, chi)
	mux := http.NewServeMux()

	auth := middleware.NewAuthMiddleware(deps.TokenService)
	manage := middleware.PermissionMiddleware(domain.RoleAdmin, domain.RoleManager)

	// --- 1. Rotas públicas ---
	mux.HandleFunc("/ping", PingHandler)
	mux.HandleFunc("/v1/register", deps.UserHandler.RegisterHandler)
	mux.HandleFunc("/v1/login", deps.UserHandler.LoginHandler)

	// Documentação interativa da API (Swagger UI)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// --- 2. Rotas de Salas (v1, autenticadas) ---
	mux.HandleFunc("/v1/rooms", auth(deps.RoomHandler.ListRoomsHandler))
	mux.HandleFunc("/v1/rooms/", auth(deps.RoomHandler.GetRoomHandler))

	// --- 3. Rotas de Auditorias e Valoração (v1, autenticadas) ---
	mux.HandleFunc("/v1/audits", auth(deps.AuditHandler.ListAuditsHandler))

	// Subárvore /v1/audits/{id}/... : o despacho por segmento fica aqui para
	// manter cada Handler com uma única responsabilidade.
	mux.HandleFunc("/v1/audits/", auth(func(w http.ResponseWriter, r *http.Request) {
		parts := audit.PathParts(r)

		switch {
		case len(parts) == 2 && parts[1] == "valuation":
			deps.AuditHandler.GetValuationHandler(w, r)

		case len(parts) == 3 && parts[1] == "valuation":
			deps.AuditHandler.GetRankedItemsHandler(w, r)

		case len(parts) == 2 && parts[1] == "adjustment":
			if r.Method == http.MethodPatch {
				// Somente quem tem direito de gestão edita o percentual.
				manage(deps.AdjustmentHandler.UpdateAdjustmentHandler)(w, r)
				return
			}
			deps.AdjustmentHandler.GetAdjustmentHandler(w, r)

		default:
			http.NotFound(w, r)
		}
	}))

	// --- 4. Middlewares globais ---
	var handler http.Handler = mux
	if deps.CacheClient != nil && deps.RateLimit > 0 {
		handler = middleware.RateLimiter(deps.CacheClient, deps.RateLimit, deps.RateWindow)(handler)
	}

	return handler
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

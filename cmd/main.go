package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"auditstock/config"
	"auditstock/internal/pkg/cache"
	"auditstock/internal/pkg/database"
	"auditstock/internal/pkg/logger"
	"auditstock/internal/pkg/token"

	// Camadas da aplicação para Injeção de Dependências
	"auditstock/internal/api/adjustment"
	"auditstock/internal/api/audit"
	"auditstock/internal/api/room"
	"auditstock/internal/api/router"
	"auditstock/internal/api/user"
	"auditstock/internal/repository/adjustmentrepo"
	"auditstock/internal/repository/auditrepo"
	"auditstock/internal/repository/roomrepo"
	"auditstock/internal/repository/userrepo"
	"auditstock/internal/service/adjustservice"
	"auditstock/internal/service/auditservice"
	"auditstock/internal/service/roomservice"
	"auditstock/internal/service/userservice"
)

// @title AuditStock API
// @version 1.0
// @description API de valoração de auditorias de inventário: agregação por item, valoração por condição e ajuste de depreciação por período.
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Configuração e Inicialização
	stdlog.Println("⚡ Inicializando serviço AuditStock...")

	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	// O godotenv.Load() procura por um arquivo chamado .env na raiz.
	if err := godotenv.Load(); err != nil {
		// Se o arquivo .env não for encontrado, avisamos mas continuamos,
		// pois as variáveis essenciais podem estar no ambiente do sistema (ex: Docker).
		stdlog.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig() // Carrega as configurações (URLs, Timeouts, etc.)
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis)
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	log.Info("Conexão Redis estabelecida.", nil)

	// 3. INJEÇÃO DE DEPENDÊNCIAS (Montagem da Clean Architecture)
	// Ordem: Repository -> Service -> Handler

	// A. Repositórios (Camada de Acesso a Dados)
	auditRepo := auditrepo.NewAuditRepository(db, cfg.DBTimeout, log)
	adjustmentRepo := adjustmentrepo.NewAdjustmentRepository(db, cacheClient, cfg.DBTimeout, log)
	roomRepo := roomrepo.NewRoomRepository(db, cfg.DBTimeout, log)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	log.Debug("Repositórios inicializados.", nil)

	// B. Serviço de Tokens (JWT)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	log.Debug("Serviço de Tokens JWT inicializado.", nil)

	// C. Serviços (Camada de Lógica de Negócio)
	auditSvc := auditservice.NewService(auditRepo, adjustmentRepo, cacheClient, cfg.ReportCacheTTL, log)
	adjustCtrl := adjustservice.NewController(adjustmentRepo, cfg.AdjustDebounce, nil, log)
	roomSvc := roomservice.NewService(roomRepo, log)
	userSvc := userservice.NewService(userRepo, tokenSvc, log)
	log.Debug("Serviços inicializados.", nil)

	// D. Handlers (Camada de Apresentação)
	auditHandler := audit.NewHandler(auditSvc, log)
	adjustmentHandler := adjustment.NewHandler(adjustCtrl, log)
	roomHandler := room.NewHandler(roomSvc, log)
	userHandler := user.NewHandler(userSvc, log)
	log.Debug("Handlers inicializados.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(router.Dependencies{
		AuditHandler:      auditHandler,
		AdjustmentHandler: adjustmentHandler,
		RoomHandler:       roomHandler,
		UserHandler:       userHandler,
		TokenService:      tokenSvc,
		CacheClient:       cacheClient,
		RateLimit:         cfg.RateLimitMaxRequests,
		RateWindow:        cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor AuditStock ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	// Lógica do Graceful Shutdown (captura de sinal)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	// Os timers de debounce são cancelados antes do servidor parar de aceitar
	// requisições novas; um save já em voo completa por conta própria.
	adjustCtrl.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}

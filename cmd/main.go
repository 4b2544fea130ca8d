package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"imobiliaria/config"
	"imobiliaria/internal/pkg/cache"
	"imobiliaria/internal/pkg/database"
	"imobiliaria/internal/pkg/logger"
	"imobiliaria/internal/pkg/middleware"
	"imobiliaria/internal/pkg/storage"
	"imobiliaria/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"imobiliaria/internal/api/auth"
	"imobiliaria/internal/api/imovel"
	"imobiliaria/internal/api/router"
	"imobiliaria/internal/api/user"
	"imobiliaria/internal/repository/imovelrepo"
	"imobiliaria/internal/repository/userrepo"
	"imobiliaria/internal/service/authservice"
	"imobiliaria/internal/service/imovelservice"
	"imobiliaria/internal/service/userservice"
)

// @title API Imobiliária
// @version 1.0
// @description Cadastro de imóveis e usuários com autenticação JWT e controle por role.
// @host localhost:3001
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log.Println("⚡ Inicializando API Imobiliária...")
	if err := godotenv.Load(); err != nil {
		// Sem .env seguimos com o ambiente do sistema (ex: Docker)
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	if cfg.JWTSecretInsecure {
		log.Warn("JWT_SECRET_KEY não definido: usando segredo inseguro de desenvolvimento. NÃO use em produção.", nil)
	}

	// 1. Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal("Falha ao aplicar migrações.", err)
		}
		log.Info("Migrações aplicadas.", nil)
	}

	// B. Cache (Redis). Indisponível não impede a subida: cache e rate limit degradam.
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Warn("Redis indisponível; seguindo sem cache.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
	} else {
		log.Info("Conexão Redis estabelecida.", nil)
	}
	cancelPing()

	// C. Armazenamento de fotos
	files, err := storage.NewDiskStorage(cfg.UploadsDir, cfg.MaxUploadFiles, cfg.MaxUploadSize)
	if err != nil {
		log.Fatal("Falha ao preparar diretório de uploads.", err)
	}

	// D. Serviço de Tokens (JWT)
	tokenSvc := token.NewService(cfg.JWTSecretKey)

	// 2. Injeção de dependências: Repository -> Service -> Handler
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	imovelRepo := imovelrepo.NewImovelRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
	log.Debug("Repositórios inicializados.", nil)

	userSvc := userservice.NewService(userRepo, log)
	authSvc := authservice.NewService(userRepo, userSvc, tokenSvc, log)
	imovelSvc := imovelservice.NewService(imovelRepo, files, log)
	log.Debug("Serviços inicializados.", nil)

	handlers := router.Handlers{
		Auth:    auth.NewHandler(authSvc, log),
		Users:   user.NewHandler(userSvc, log),
		Imoveis: imovel.NewHandler(imovelSvc, files, log),
	}
	guard := middleware.NewGuard(tokenSvc, userRepo, log)

	r := router.NewRouter(handlers, guard, cacheClient, router.Options{
		UploadsDir:           files.Dir(),
		AllowedOrigins:       cfg.CORSAllowedOrigins,
		RequestTimeout:       cfg.RequestTimeout,
		RateLimitMaxRequests: cfg.RateLimitMaxRequests,
		RateLimitPeriod:      cfg.RateLimitPeriod,
	}, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 3. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}

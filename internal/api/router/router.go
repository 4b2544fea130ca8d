package router

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	// Registra o documento OpenAPI servido em /swagger/doc.json
	_ "imobiliaria/docs"

	"imobiliaria/internal/api/auth"
	"imobiliaria/internal/api/imovel"
	"imobiliaria/internal/api/user"
	"imobiliaria/internal/domain"
	"imobiliaria/internal/pkg/cache"
	"imobiliaria/internal/pkg/logger"
	"imobiliaria/internal/pkg/middleware"
)

// Handlers reúne os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Auth    *auth.Handler
	Users   *user.Handler
	Imoveis *imovel.Handler
}

// Options controla os middlewares globais.
type Options struct {
	UploadsDir           string
	AllowedOrigins       []string
	RequestTimeout       time.Duration
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(h Handlers, guard *middleware.Guard, cacheClient cache.Client, opts Options, log logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// --- Health check e estáticos ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", noListing(http.FileServer(http.Dir(opts.UploadsDir)))))
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- Autenticação ---
	mux.HandleFunc("POST /auth/login", h.Auth.LoginHandler)
	mux.HandleFunc("POST /auth/register", guard.Optional(h.Auth.RegisterHandler))

	// --- Usuários ---
	superuser := guard.Require(domain.RoleSuperuser)
	mux.HandleFunc("GET /users", superuser(h.Users.ListUsersHandler))
	mux.HandleFunc("POST /users", superuser(h.Users.CreateUserHandler))
	mux.HandleFunc("POST /users/superuser", h.Users.CreateSuperuserHandler)
	mux.HandleFunc("GET /users/{id}", guard.Require(domain.RoleSuperuser, domain.RoleAdmin)(h.Users.GetUserByIDHandler))
	mux.HandleFunc("DELETE /users/{id}", superuser(h.Users.DeleteUserHandler))

	// --- Imóveis: leitura pública, escrita exige admin ---
	admin := guard.Require(domain.RoleAdmin)
	mux.HandleFunc("GET /imoveis", h.Imoveis.ListImoveisHandler)
	mux.HandleFunc("GET /imoveis/dashboard", admin(h.Imoveis.DashboardHandler))
	mux.HandleFunc("GET /imoveis/{id}", h.Imoveis.GetImovelHandler)
	mux.HandleFunc("POST /imoveis", admin(h.Imoveis.CreateImovelHandler))
	mux.HandleFunc("PUT /imoveis/{id}", admin(h.Imoveis.UpdateImovelHandler))
	mux.HandleFunc("DELETE /imoveis/{id}", admin(h.Imoveis.DeleteImovelHandler))
	mux.HandleFunc("DELETE /imoveis/{id}/fotos/{foto}", admin(h.Imoveis.DeleteFotoHandler))

	// --- Middlewares globais (de fora para dentro: CORS, log, rate limit, timeout) ---
	var handler http.Handler = mux
	if opts.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, opts.RequestTimeout, timeoutBody)
	}
	if cacheClient != nil && opts.RateLimitMaxRequests > 0 {
		handler = middleware.RateLimiter(cacheClient, opts.RateLimitMaxRequests, opts.RateLimitPeriod, log)(handler)
	}
	handler = middleware.RequestLogger(log)(handler)

	c := cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	return c.Handler(handler)
}

var timeoutBody = fmt.Sprintf(`{"statusCode":%d,"message":"Tempo limite da requisição excedido.","error":%q}`,
	http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable))

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

// noListing impede a listagem do diretório de uploads.
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

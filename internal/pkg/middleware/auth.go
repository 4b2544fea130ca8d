package middleware

import (
	"context"
	"net/http"
	"strings"

	"imobiliaria/internal/domain"
	apperror "imobiliaria/internal/errors"
	"imobiliaria/internal/pkg/logger"
	"imobiliaria/internal/pkg/respond"
	"imobiliaria/internal/pkg/token"
)

// ContextKey é um tipo próprio para chaves de contexto deste pacote.
type ContextKey int

const (
	UserKey ContextKey = iota
)

// TokenService define o contrato de validação necessário para o guard.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// UserFinder resolve o subject do token para o usuário atual.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (domain.User, error)
}

// Guard verifica o bearer token, carrega o usuário vivo e aplica Authorize.
// A role usada é sempre a do cadastro, nunca a do payload do token.
type Guard struct {
	tokens TokenService
	users  UserFinder
	logger logger.Logger
}

// NewGuard cria o guard de autenticação/autorização.
func NewGuard(tokens TokenService, users UserFinder, log logger.Logger) *Guard {
	return &Guard{tokens: tokens, users: users, logger: log}
}

// Authenticate devolve o usuário dono do token ou UnauthorizedError.
func (g *Guard) Authenticate(r *http.Request) (domain.User, error) {
	authHeader := r.Header.Get("Authorization")
	scheme, tokenString, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
		return domain.User{}, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado.")
	}

	claims, err := g.tokens.ValidateToken(strings.TrimSpace(tokenString))
	if err != nil {
		g.logger.Debug("Token rejeitado.", map[string]interface{}{"error": err.Error()})
		return domain.User{}, apperror.NewUnauthorizedError("Token inválido ou expirado.")
	}

	user, err := g.users.FindByID(r.Context(), claims.UserID())
	if err != nil {
		if apperror.Is(err, "NOT_FOUND") {
			g.logger.Warn("Token de usuário inexistente.", map[string]interface{}{"user_id": claims.UserID()})
			return domain.User{}, apperror.NewUnauthorizedError("Usuário do token não existe mais.")
		}
		return domain.User{}, err
	}

	if !user.IsActive {
		return domain.User{}, apperror.NewUnauthorizedError("Usuário inativo.")
	}

	user.PasswordHash = ""
	return user, nil
}

// Require protege o handler: 401 sem usuário válido, 403 se Authorize negar.
func (g *Guard) Require(roles ...domain.UserRole) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, err := g.Authenticate(r)
			if err != nil {
				respond.Error(w, r, g.logger, err)
				return
			}

			if !Authorize(user.Role, roles...) {
				g.logger.Info("Acesso negado por role.", map[string]interface{}{
					"user_id": user.ID,
					"role":    user.Role,
					"path":    r.URL.Path,
				})
				respond.Error(w, r, g.logger, apperror.NewForbiddenError("Acesso negado. Você não tem a permissão necessária."))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		}
	}
}

// Optional anexa o usuário quando há um token válido e segue adiante sem ele caso contrário.
func (g *Guard) Optional(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			if user, err := g.Authenticate(r); err == nil {
				r = r.WithContext(WithUser(r.Context(), user))
			}
		}
		next.ServeHTTP(w, r)
	}
}

// WithUser anexa o usuário autenticado ao contexto.
func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// UserFromContext é uma função utilitária para extrair o usuário no handler.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(UserKey).(domain.User)
	return user, ok
}

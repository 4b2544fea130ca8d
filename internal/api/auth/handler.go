package auth

import (
	"net/http"

	"imobiliaria/internal/domain"
	"imobiliaria/internal/pkg/logger"
	"imobiliaria/internal/pkg/middleware"
	"imobiliaria/internal/pkg/respond"
)

// Handler agrupa os endpoints de autenticação.
type Handler struct {
	Service domain.AuthService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc domain.AuthService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// LoginHandler lida com a requisição POST /auth/login.
// @Summary Autentica um usuário
// @Description Aceita username ou email em identifier (ou nos campos username/email) e devolve o JWT com o resumo do usuário.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body domain.LoginRequest true "Credenciais"
// @Success 200 {object} domain.Session "Sessão emitida"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /auth/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	session, err := h.Service.Login(r.Context(), req)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	respond.JSON(w, h.Logger, http.StatusOK, session)
}

// RegisterHandler lida com a requisição POST /auth/register.
// Só um superuser autenticado consegue registrar contas admin/superuser.
// @Summary Registra um novo usuário
// @Description Cria a conta e já devolve a sessão. Sem token de superuser a role é sempre "user".
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Dados de cadastro"
// @Success 201 {object} domain.Session "Usuário criado e autenticado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Email ou username já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /auth/register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := respond.DecodeJSON(r, &reg); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	var caller *domain.User
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		caller = &user
	}

	session, err := h.Service.Register(r.Context(), reg, caller)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	respond.JSON(w, h.Logger, http.StatusCreated, session)
}

package user

import (
	"net/http"

	"imobiliaria/internal/domain"
	"imobiliaria/internal/pkg/logger"
	"imobiliaria/internal/pkg/respond"
)

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service domain.UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc domain.UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// ListUsersHandler lida com GET /users.
// @Summary Lista os usuários
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.User
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 403 {object} domain.ErrorResponse "Requer superuser"
// @Router /users [get]
func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, users)
}

// CreateUserHandler lida com POST /users.
// @Summary Cria um usuário com qualquer role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body domain.UserRegistration true "Dados do usuário"
// @Success 201 {object} domain.User
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 403 {object} domain.ErrorResponse "Requer superuser"
// @Failure 409 {object} domain.ErrorResponse "Email ou username já cadastrado"
// @Router /users [post]
func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := respond.DecodeJSON(r, &reg); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.CreateUser(r.Context(), reg)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusCreated, created)
}

// CreateSuperuserHandler lida com POST /users/superuser.
// @Summary Cria o primeiro superuser
// @Description Disponível apenas enquanto não existe nenhum usuário cadastrado.
// @Tags users
// @Accept json
// @Produce json
// @Param user body domain.UserRegistration true "Dados do superuser"
// @Success 201 {object} domain.User
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 403 {object} domain.ErrorResponse "Já existem usuários"
// @Router /users/superuser [post]
func (h *Handler) CreateSuperuserHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := respond.DecodeJSON(r, &reg); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.CreateSuperuser(r.Context(), reg)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	h.Logger.Info("Superuser inicial criado.", map[string]interface{}{"user_id": created.ID})
	respond.JSON(w, h.Logger, http.StatusCreated, created)
}

// GetUserByIDHandler lida com GET /users/{id}.
// @Summary Busca um usuário por ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do usuário"
// @Success 200 {object} domain.User
// @Failure 403 {object} domain.ErrorResponse "Requer superuser ou admin"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users/{id} [get]
func (h *Handler) GetUserByIDHandler(w http.ResponseWriter, r *http.Request) {
	found, err := h.Service.GetUserByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, found)
}

// DeleteUserHandler lida com DELETE /users/{id}.
// @Summary Remove um usuário
// @Tags users
// @Security BearerAuth
// @Param id path string true "ID do usuário"
// @Success 204 "Usuário removido"
// @Failure 403 {object} domain.ErrorResponse "Requer superuser"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users/{id} [delete]
func (h *Handler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteUser(r.Context(), r.PathValue("id")); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package authservice

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"imobiliaria/internal/domain"
	apperror "imobiliaria/internal/errors"
	"imobiliaria/internal/pkg/logger"
)

// minPasswordLength é o tamanho mínimo aceito no login.
const minPasswordLength = 6

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID, username, role string) (string, error)
}

// UserCreator cria contas já validadas e com senha em hash.
type UserCreator interface {
	CreateUser(ctx context.Context, candidate domain.UserRegistration) (domain.User, error)
}

// Service implementa domain.AuthService.
type Service struct {
	UserRepo domain.UserRepository
	Users    UserCreator
	TokenSvc TokenService
	logger   logger.Logger
}

// NewService cria o serviço de autenticação.
func NewService(repo domain.UserRepository, users UserCreator, tokenSvc TokenService, logger logger.Logger) *Service {
	return &Service{
		UserRepo: repo,
		Users:    users,
		TokenSvc: tokenSvc,
		logger:   logger,
	}
}

// ValidateCredentials procura o usuário por username e, só se não achar, por email.
// Usuário inexistente ou senha incorreta devolvem (nil, nil).
func (s *Service) ValidateCredentials(ctx context.Context, identifier, password string) (*domain.User, error) {
	user, err := s.UserRepo.FindByUsername(ctx, identifier)
	if apperror.Is(err, "NOT_FOUND") {
		user, err = s.UserRepo.FindByEmail(ctx, identifier)
	}
	if apperror.Is(err, "NOT_FOUND") {
		s.logger.Info("Usuário não encontrado para o identificador.", map[string]interface{}{"identifier": identifier})
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Error("Hash de senha inválido no cadastro do usuário.", err)
		}
		s.logger.Info("Senha inválida.", map[string]interface{}{"username": user.Username})
		return nil, nil
	}

	user.PasswordHash = ""
	return &user, nil
}

// IssueSession assina o token {username, sub, role} e monta o resumo do usuário.
func (s *Service) IssueSession(user domain.User) (domain.Session, error) {
	accessToken, err := s.TokenSvc.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return domain.Session{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	return domain.Session{
		AccessToken: accessToken,
		User:        user.Summary(),
	}, nil
}

// Login valida a requisição e as credenciais e emite a sessão.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.Session, error) {
	identifier := req.ResolvedIdentifier()
	if identifier == "" || req.Password == "" {
		return domain.Session{}, apperror.NewValidationError("Identificador e senha são obrigatórios.")
	}
	if len(req.Password) < minPasswordLength {
		return domain.Session{}, apperror.NewValidationError("A senha deve ter no mínimo 6 caracteres.")
	}

	user, err := s.ValidateCredentials(ctx, identifier, req.Password)
	if err != nil {
		return domain.Session{}, err
	}
	if user == nil {
		return domain.Session{}, apperror.NewUnauthorizedError("Credenciais inválidas")
	}

	s.logger.Info("Login realizado.", map[string]interface{}{"user_id": user.ID})
	return s.IssueSession(*user)
}

// Register cria a conta e já devolve uma sessão.
// Role elevada só é aceita quando quem chama é superuser; caso contrário vira "user".
func (s *Service) Register(ctx context.Context, candidate domain.UserRegistration, caller *domain.User) (domain.Session, error) {
	if candidate.Role != "" && candidate.Role != domain.RoleUser {
		if caller == nil || caller.Role != domain.RoleSuperuser {
			s.logger.Warn("Role elevada solicitada sem privilégio; usando 'user'.", map[string]interface{}{
				"username":       candidate.Username,
				"requested_role": candidate.Role,
			})
			if candidate.Role.Valid() {
				candidate.Role = domain.RoleUser
			}
		}
	}

	user, err := s.Users.CreateUser(ctx, candidate)
	if err != nil {
		return domain.Session{}, err
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{"user_id": user.ID, "role": user.Role})
	return s.IssueSession(user)
}

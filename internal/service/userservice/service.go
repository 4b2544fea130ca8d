package userservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"imobiliaria/internal/domain"
	apperror "imobiliaria/internal/errors"
	"imobiliaria/internal/pkg/logger"
	"imobiliaria/internal/pkg/validation"
)

// UserService implementa domain.UserService.
type UserService struct {
	UserRepo   domain.UserRepository
	logger     logger.Logger
	bcryptCost int
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo domain.UserRepository, logger logger.Logger) *UserService {
	return &UserService{
		UserRepo:   repo,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// WithBcryptCost ajusta o custo do hash (testes usam bcrypt.MinCost).
func (s *UserService) WithBcryptCost(cost int) *UserService {
	s.bcryptCost = cost
	return s
}

// CreateUser valida, verifica duplicidade, gera o hash e persiste o usuário.
// A role informada é respeitada; quem chama decide se o solicitante pode elevá-la.
func (s *UserService) CreateUser(ctx context.Context, candidate domain.UserRegistration) (domain.User, error) {
	candidate.Username = strings.TrimSpace(candidate.Username)
	candidate.Email = strings.TrimSpace(candidate.Email)

	if err := validation.Struct(candidate); err != nil {
		return domain.User{}, err
	}

	if err := s.ensureAvailable(ctx, candidate.Username, candidate.Email); err != nil {
		return domain.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(candidate.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		// max=72 conta caracteres; o bcrypt limita bytes
		return domain.User{}, apperror.NewValidationError("O campo password deve ter no máximo 72 bytes.")
	}
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	role := candidate.Role
	if role == "" {
		role = domain.RoleUser
	}

	newUser := domain.User{
		Username:     candidate.Username,
		PasswordHash: string(hashed),
		Nome:         candidate.Nome,
		Role:         role,
		IsActive:     true,
	}
	if candidate.Email != "" {
		email := candidate.Email
		newUser.Email = &email
	}

	user, err := s.UserRepo.Save(ctx, newUser)
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Usuário criado.", map[string]interface{}{"user_id": user.ID, "username": user.Username, "role": user.Role})
	user.PasswordHash = ""
	return user, nil
}

// ensureAvailable falha com Conflict se username ou email já existirem.
func (s *UserService) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.UserRepo.FindByUsername(ctx, username); err == nil {
		s.logger.Warn("Tentativa de cadastro com username existente.", map[string]interface{}{"username": username})
		return apperror.NewConflictError("Email ou username já cadastrado")
	} else if !apperror.Is(err, "NOT_FOUND") {
		return err
	}

	if email == "" {
		return nil
	}

	if _, err := s.UserRepo.FindByEmail(ctx, email); err == nil {
		s.logger.Warn("Tentativa de cadastro com email existente.", map[string]interface{}{"email": email})
		return apperror.NewConflictError("Email ou username já cadastrado")
	} else if !apperror.Is(err, "NOT_FOUND") {
		return err
	}

	return nil
}

// CreateSuperuser cria o primeiro superusuário. Só é permitido enquanto não há usuários.
func (s *UserService) CreateSuperuser(ctx context.Context, candidate domain.UserRegistration) (domain.User, error) {
	count, err := s.UserRepo.Count(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if count > 0 {
		s.logger.Warn("Bootstrap de superusuário recusado: já existem usuários.", map[string]interface{}{"count": count})
		return domain.User{}, apperror.NewForbiddenError("O superusuário inicial já foi criado.")
	}

	candidate.Role = domain.RoleSuperuser
	return s.CreateUser(ctx, candidate)
}

// GetUserByID busca um usuário sem expor o hash.
func (s *UserService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

// ListUsers lista todos os usuários sem expor os hashes.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.UserRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar usuários: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// DeleteUser remove um usuário pelo id.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.UserRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Usuário removido.", map[string]interface{}{"user_id": id})
	return nil
}

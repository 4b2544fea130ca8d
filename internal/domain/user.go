package domain

import (
	"context"
	"time"
)

// User representa a entidade do usuário no sistema.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	Nome         string    `json:"nome"`
	Email        *string   `json:"email"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

const (
	RoleSuperuser UserRole = "superuser"
	RoleAdmin     UserRole = "admin"
	RoleUser      UserRole = "user"
)

// Valid informa se a role pertence ao conjunto enumerado.
func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperuser, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// EmailValue devolve o email ou string vazia quando ausente.
func (u User) EmailValue() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

// UserRegistration representa o payload de entrada para registro e criação de usuários.
type UserRegistration struct {
	Username string   `json:"username" validate:"required,min=4,max=255"`
	Password string   `json:"password" validate:"required,min=6,max=72"`
	Nome     string   `json:"nome" validate:"required,max=255"`
	Email    string   `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Role     UserRole `json:"role,omitempty" validate:"omitempty,oneof=superuser admin user"`
}

// LoginRequest aceita o identificador em qualquer um dos três campos.
type LoginRequest struct {
	Identifier string `json:"identifier,omitempty"`
	Username   string `json:"username,omitempty"`
	Email      string `json:"email,omitempty"`
	Password   string `json:"password"`
}

// ResolvedIdentifier devolve o primeiro identificador não vazio.
func (l LoginRequest) ResolvedIdentifier() string {
	for _, v := range []string{l.Identifier, l.Username, l.Email} {
		if v != "" {
			return v
		}
	}
	return ""
}

// UserSummary é a visão redigida do usuário devolvida junto ao token.
type UserSummary struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Nome     string   `json:"nome"`
	Email    *string  `json:"email"`
	Role     UserRole `json:"role"`
}

// Session é a resposta de login e registro.
type Session struct {
	AccessToken string      `json:"access_token"`
	User        UserSummary `json:"user"`
}

// Summary monta a visão redigida do usuário.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Nome:     u.Nome,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// UserRepository define o contrato de persistência para a entidade User.
type UserRepository interface {
	Save(ctx context.Context, user User) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindAll(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}

// AuthService define o contrato de autenticação.
type AuthService interface {
	ValidateCredentials(ctx context.Context, identifier, password string) (*User, error)
	IssueSession(user User) (Session, error)
	Login(ctx context.Context, req LoginRequest) (Session, error)
	Register(ctx context.Context, candidate UserRegistration, caller *User) (Session, error)
}

// UserService define o contrato de administração de usuários.
type UserService interface {
	CreateUser(ctx context.Context, candidate UserRegistration) (User, error)
	CreateSuperuser(ctx context.Context, candidate UserRegistration) (User, error)
	GetUserByID(ctx context.Context, id string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id string) error
}

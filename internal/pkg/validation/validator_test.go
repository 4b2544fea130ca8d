package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"imobiliaria/internal/domain"
	apperror "imobiliaria/internal/errors"
	"imobiliaria/internal/pkg/validation"
)

func TestStruct_UserRegistration(t *testing.T) {
	valid := domain.UserRegistration{Username: "maria", Password: "123456", Nome: "Maria"}

	tests := []struct {
		name    string
		mutate  func(r *domain.UserRegistration)
		wantErr string
	}{
		{"válido", func(r *domain.UserRegistration) {}, ""},
		{"email opcional válido", func(r *domain.UserRegistration) { r.Email = "maria@exemplo.com" }, ""},
		{"username curto", func(r *domain.UserRegistration) { r.Username = "ana" }, "O campo username deve ter no mínimo 4 caracteres."},
		{"senha curta", func(r *domain.UserRegistration) { r.Password = "123" }, "O campo password deve ter no mínimo 6 caracteres."},
		{"nome ausente", func(r *domain.UserRegistration) { r.Nome = "" }, "O campo nome é obrigatório."},
		{"email inválido", func(r *domain.UserRegistration) { r.Email = "maria" }, "O campo email deve ser um email válido."},
		{"username longo", func(r *domain.UserRegistration) { r.Username = strings.Repeat("a", 256) }, "O campo username deve ter no máximo 255 caracteres."},
		{"senha longa", func(r *domain.UserRegistration) { r.Password = strings.Repeat("x", 73) }, "O campo password deve ter no máximo 72 caracteres."},
		{"nome longo", func(r *domain.UserRegistration) { r.Nome = strings.Repeat("n", 256) }, "O campo nome deve ter no máximo 255 caracteres."},
		{"role inválida", func(r *domain.UserRegistration) { r.Role = "root" }, "O campo role deve ser um dos valores: superuser, admin, user."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)

			err := validation.Struct(r)

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.IsType(t, &apperror.ValidationError{}, err)
			_, _, msg := apperror.MapToHTTPStatus(err)
			assert.Equal(t, tt.wantErr, msg)
		})
	}
}

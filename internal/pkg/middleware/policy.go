package middleware

import "imobiliaria/internal/domain"

// Authorize é a única regra de autorização da API.
// Superuser passa sempre; conjunto vazio exige apenas autenticação.
func Authorize(role domain.UserRole, required ...domain.UserRole) bool {
	if role == domain.RoleSuperuser {
		return true
	}
	if len(required) == 0 {
		return role.Valid()
	}
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}

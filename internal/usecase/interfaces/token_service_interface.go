package interfaces

import "garage_admin/internal/domain/entities"

// ITokenService issues and validates dashboard session tokens.
type ITokenService interface {
	GenerateToken(user entities.User) (string, error)
	ValidateToken(token string) (*entities.Claims, error)
	CheckPassword(password, hash string) bool
}

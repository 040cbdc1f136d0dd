package usecase

import (
	"context"
	"errors"
	"strings"

	"garage_admin/internal/domain/entities"
	"garage_admin/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

// AdminAccount is the single operator allowed into the dashboard.
type AdminAccount struct {
	Email        string
	Name         string
	PasswordHash string
}

type IAuthUseCase interface {
	Login(ctx context.Context, email, password string) (token string, user entities.User, err error)
	Me(ctx context.Context, token string) (entities.User, error)
}

// AuthUseCase is a placeholder session gate: one configured admin account
// and stateless signed tokens.
type AuthUseCase struct {
	admin  AdminAccount
	tokens interfaces.ITokenService
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(admin AdminAccount, tokens interfaces.ITokenService) *AuthUseCase {
	return &AuthUseCase{admin: admin, tokens: tokens}
}

func (u *AuthUseCase) user() entities.User {
	return entities.User{ID: u.admin.Email, Email: u.admin.Email, Name: u.admin.Name, Role: entities.RoleAdmin}
}

func (u *AuthUseCase) Login(_ context.Context, email, password string) (string, entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" || u.admin.PasswordHash == "" {
		return "", entities.User{}, ErrInvalidCredentials
	}
	if email != strings.ToLower(u.admin.Email) || !u.tokens.CheckPassword(password, u.admin.PasswordHash) {
		logrus.WithField("email", email).Warn("[auth][usecase] login rejected")
		return "", entities.User{}, ErrInvalidCredentials
	}

	user := u.user()
	token, err := u.tokens.GenerateToken(user)
	if err != nil {
		return "", entities.User{}, err
	}
	logrus.WithField("email", email).Info("[auth][usecase] login success")
	return token, user, nil
}

func (u *AuthUseCase) Me(_ context.Context, token string) (entities.User, error) {
	claims, err := u.tokens.ValidateToken(token)
	if err != nil {
		return entities.User{}, ErrUnauthenticated
	}
	if !strings.EqualFold(claims.Email, u.admin.Email) {
		return entities.User{}, ErrUnauthenticated
	}
	return u.user(), nil
}

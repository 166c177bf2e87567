package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/Rafium-MS/territorio-app/internal/dtos"
	"github.com/Rafium-MS/territorio-app/internal/utils"
)

var testSecret = []byte("test-secret-key")

func newAuthService() *AuthService {
	return NewAuthService(newFakeUserRepo(), testSecret, time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	user, err := svc.Register(ctx, dtos.RegisterUserRequest{
		Name:     "Administrador",
		Email:    "Admin@Exemplo.com",
		Password: "senha123",
		Role:     "admin",
	})
	require.NoError(t, err)
	require.Equal(t, "admin@exemplo.com", user.Email)
	require.NotEqual(t, "senha123", user.PasswordHash)

	logged, token, err := svc.Login(ctx, dtos.LoginRequest{
		Email:    "admin@exemplo.com",
		Password: "senha123",
	})
	require.NoError(t, err)
	require.Equal(t, user.ID, logged.ID)

	tok, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return testSecret, nil })
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	require.Equal(t, user.ID.String(), claims["sub"])
	require.Equal(t, "admin", claims["role"])
	require.Equal(t, "Administrador", claims["name"])
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	_, err := svc.Register(ctx, dtos.RegisterUserRequest{
		Name: "Publicador", Email: "usuario@exemplo.com", Password: "senha123",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, dtos.LoginRequest{Email: "usuario@exemplo.com", Password: "errada"})
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)

	// Unknown email yields the same error as a wrong password.
	_, _, err = svc.Login(ctx, dtos.LoginRequest{Email: "ninguem@exemplo.com", Password: "senha123"})
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	_, err := svc.Register(ctx, dtos.RegisterUserRequest{
		Name: "Um", Email: "usuario@exemplo.com", Password: "senha123",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dtos.RegisterUserRequest{
		Name: "Dois", Email: "USUARIO@exemplo.com", Password: "outrasenha",
	})
	require.ErrorIs(t, err, utils.ErrEmailExists)
}

func TestRegisterDefaultRole(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	user, err := svc.Register(ctx, dtos.RegisterUserRequest{
		Name: "Publicador", Email: "usuario@exemplo.com", Password: "senha123",
	})
	require.NoError(t, err)
	require.Equal(t, "user", string(user.Role))
}

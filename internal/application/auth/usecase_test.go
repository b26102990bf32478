package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/domain"
	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) SetRole(_ context.Context, id, role string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func newLoginSetup(t *testing.T) (*fakeUserRepo, *AuthUseCase) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeUserRepo{users: map[string]*entity.User{
		"u1": {
			ID:           "u1",
			Email:        "ana@test.dev",
			Name:         "Ana Souza",
			PasswordHash: string(hash),
			Role:         entity.RoleFinancial,
		},
	}}
	uc := NewAuthUseCase(repo, JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "pedidos-pro-test"})
	return repo, uc
}

func TestLogin_EmiteTokenConRol(t *testing.T) {
	_, uc := newLoginSetup(t)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@test.dev", Password: "secreta123",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, entity.RoleFinancial, resp.User.Role)

	userID, role, err := jwt.Parse("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, entity.RoleFinancial, role, "el token lleva el rol del usuario")
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	_, uc := newLoginSetup(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@test.dev", Password: "otra",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Usuario inexistente responde igual que password malo, sin filtrar cuáles
// emails existen.
func TestLogin_UsuarioInexistente(t *testing.T) {
	_, uc := newLoginSetup(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@test.dev", Password: "secreta123",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CamposVacios(t *testing.T) {
	_, uc := newLoginSetup(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

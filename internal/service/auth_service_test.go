package service_test

import (
	"context"
	"testing"

	"github.com/LisandroRios/GestionDeVentas/internal/config"
	"github.com/LisandroRios/GestionDeVentas/internal/dto"
	"github.com/LisandroRios/GestionDeVentas/internal/model"
	"github.com/LisandroRios/GestionDeVentas/internal/repository"
	"github.com/LisandroRios/GestionDeVentas/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.Username] = u
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := r.users[username]
	if !ok || !u.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func newAuthFixture() (service.AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 8}
	return service.NewAuthService(repo, cfg), repo
}

func TestLogin_IssuesToken(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "maria",
		Password: "s3cretpass",
		Role:     model.RoleCashier,
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "maria",
		Password: "s3cretpass",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, model.RoleCashier, resp.User.Role)

	// Token must verify with the configured secret and carry the claims.
	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "maria", claims["username"])
	assert.Equal(t, model.RoleCashier, claims["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "jose",
		Password: "rightpass1",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Username: "jose",
		Password: "wrongpass1",
	})
	assert.ErrorContains(t, err, "invalid credentials")

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Username: "nobody",
		Password: "whatever12",
	})
	assert.ErrorContains(t, err, "invalid credentials")
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "ana",
		Password: "password1",
		Role:     model.RoleCashier,
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "ana",
		Password: "password2",
		Role:     model.RoleAdmin,
	})
	assert.ErrorContains(t, err, "already taken")
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, repo := newAuthFixture()

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "old",
		Password: "password1",
		Role:     model.RoleCashier,
	})
	require.NoError(t, err)
	repo.users["old"].Active = false

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Username: "old",
		Password: "password1",
	})
	assert.ErrorContains(t, err, "invalid credentials")
}

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/avlebedev/carservice-admin/internal/domain"
	userRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/user"
	"github.com/avlebedev/carservice-admin/internal/service/auth/models"
)

const testPassword = "correct-horse"

// --- Фейки зависимостей ---

type fakeUserRepo struct {
	user *domain.User
	err  error
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, _ int64) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeTokenCache struct {
	revoked map[string]bool
}

func newFakeTokenCache() *fakeTokenCache {
	return &fakeTokenCache{revoked: make(map[string]bool)}
}

func (f *fakeTokenCache) RevokeToken(_ context.Context, jti string, _ time.Duration) error {
	f.revoked[jti] = true
	return nil
}

func (f *fakeTokenCache) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	return f.revoked[jti], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(t *testing.T) (*Service, *fakeTokenCache) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{
		user: &domain.User{
			ID:           11,
			CompanyID:    7,
			Email:        "admin@service.ru",
			PasswordHash: string(hash),
			Name:         "Администратор",
			Role:         domain.RoleAdmin,
		},
	}
	cache := newFakeTokenCache()
	return NewService(repo, cache, "test-secret", time.Hour, nopLogger{}), cache
}

func login(t *testing.T, svc *Service) string {
	t.Helper()

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "admin@service.ru",
		Password: testPassword,
	})
	require.NoError(t, err)
	return resp.Token
}

// --- Тесты ---

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    " Admin@Service.RU ", // регистр и пробелы нормализуются
		Password: testPassword,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, int64(7), resp.User.CompanyID)
	assert.Equal(t, "admin", resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "admin@service.ru",
		Password: "wrong",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)
	svc.userRepo = &fakeUserRepo{err: userRepo.ErrUserNotFound}

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "ghost@service.ru",
		Password: testPassword,
	})
	// Не раскрываем, что именно неверно: email или пароль
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_EmptyInput(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &models.LoginRequest{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateToken_Success(t *testing.T) {
	svc, _ := newTestService(t)
	token := login(t, svc)

	session, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, int64(11), session.UserID)
	assert.Equal(t, int64(7), session.CompanyID)
	assert.Equal(t, "admin", session.Role)
	assert.NotEmpty(t, session.JTI)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ValidateToken(context.Background(), "not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc, _ := newTestService(t)
	token := login(t, svc)

	other := NewService(&fakeUserRepo{}, newFakeTokenCache(), "another-secret", time.Hour, nopLogger{})
	_, err := other.ValidateToken(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, cache := newTestService(t)
	token := login(t, svc)

	session, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))
	assert.True(t, cache.revoked[session.JTI])

	// Отозванный токен больше не проходит проверку
	_, err = svc.ValidateToken(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_ExpiredTokenRejected(t *testing.T) {
	svc, _ := newTestService(t)
	expired := NewService(svc.userRepo, newFakeTokenCache(), "test-secret", -time.Minute, nopLogger{})

	token := login(t, expired)
	// Парсер отклоняет истекший токен еще до проверки отзыва
	require.ErrorIs(t, expired.Logout(context.Background(), token), ErrInvalidToken)
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmodels "github.com/avlebedev/carservice-admin/internal/service/auth/models"
)

type fakeValidator struct {
	session *authmodels.Session
	err     error

	gotToken string
}

func (f *fakeValidator) ValidateToken(_ context.Context, token string) (*authmodels.Session, error) {
	f.gotToken = token
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

// nextRecorder запоминает сессию, которую увидел следующий обработчик
type nextRecorder struct {
	called  bool
	session *authmodels.Session
	ok      bool
}

func (n *nextRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.called = true
	n.session, n.ok = SessionFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func TestAuth_ValidToken_SessionInContext(t *testing.T) {
	validator := &fakeValidator{
		session: &authmodels.Session{UserID: 7, CompanyID: 3, Role: "admin", JTI: "jti-1"},
	}
	next := &nextRecorder{}

	handler := Auth(validator, nopLogger{})(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer token-abc")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "token-abc", validator.gotToken)

	require.True(t, next.called)
	require.True(t, next.ok)
	assert.Equal(t, int64(3), next.session.CompanyID)
	assert.Equal(t, "admin", next.session.Role)
}

func TestAuth_MissingHeader_Unauthorized(t *testing.T) {
	next := &nextRecorder{}
	handler := Auth(&fakeValidator{}, nopLogger{})(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
	assert.Contains(t, rec.Body.String(), msgUnauthorized)
}

func TestAuth_NotBearerScheme_Unauthorized(t *testing.T) {
	next := &nextRecorder{}
	validator := &fakeValidator{}
	handler := Auth(validator, nopLogger{})(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// До валидатора запрос дойти не должен
	assert.Empty(t, validator.gotToken)
	assert.False(t, next.called)
}

func TestAuth_InvalidToken_Unauthorized(t *testing.T) {
	next := &nextRecorder{}
	validator := &fakeValidator{err: errors.New("token revoked")}
	handler := Auth(validator, nopLogger{})(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer revoked-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
}

func TestSessionFromContext_Empty(t *testing.T) {
	_, ok := SessionFromContext(context.Background())
	assert.False(t, ok)
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	authmodels "github.com/avlebedev/carservice-admin/internal/service/auth/models"
)

const msgUnauthorized = "требуется авторизация"

type sessionCtxKey struct{}

// TokenValidator интерфейс проверки токена сессии
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*authmodels.Session, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth проверяет Bearer токен и кладет сессию в контекст запроса
func Auth(validator TokenValidator, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			session, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				logger.Warn("%s %s - invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext достает сессию, положенную Auth middleware
func SessionFromContext(ctx context.Context) (*authmodels.Session, bool) {
	session, ok := ctx.Value(sessionCtxKey{}).(*authmodels.Session)
	return session, ok
}

// ContextWithSession кладет сессию в контекст, как это делает Auth middleware
func ContextWithSession(ctx context.Context, session *authmodels.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, session)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

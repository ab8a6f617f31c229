package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	userRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/user"
	"github.com/avlebedev/carservice-admin/internal/service/auth/models"
)

// sessionClaims полезная нагрузка токена сессии
type sessionClaims struct {
	CompanyID int64  `json:"cid"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Service сервис аутентификации сотрудников
// Выдает JWT с jti; logout кладет jti в Redis до истечения токена
type Service struct {
	userRepo   UserRepository
	tokenCache TokenCache
	secret     []byte
	tokenTTL   time.Duration
	logger     Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(
	userRepo UserRepository,
	tokenCache TokenCache,
	secret string,
	tokenTTL time.Duration,
	logger Logger,
) *Service {
	return &Service{
		userRepo:   userRepo,
		tokenCache: tokenCache,
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

// Login проверяет учетные данные и выдает токен сессии
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := sessionClaims{
		CompanyID: user.CompanyID,
		Role:      string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.Error("Login: failed to sign token for user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - failed to sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user=%d company=%d logged in", user.ID, user.CompanyID)
	return &models.LoginResponse{
		Token:     token,
		ExpiresIn: int(s.tokenTTL.Seconds()),
		User: models.UserResponse{
			ID:        user.ID,
			CompanyID: user.CompanyID,
			Email:     user.Email,
			Name:      user.Name,
			Role:      string(user.Role),
		},
	}, nil
}

// Logout отзывает токен сессии до истечения его срока
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := s.tokenCache.RevokeToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Logout: failed to revoke token jti=%s: %v", claims.ID, err)
		return fmt.Errorf("%w: Logout - failed to revoke token: %v", ErrInternal, err)
	}

	s.logger.Info("Logout: token jti=%s revoked", claims.ID)
	return nil
}

// ValidateToken проверяет токен и возвращает данные сессии
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*models.Session, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	revoked, err := s.tokenCache.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("ValidateToken: revocation check failed for jti=%s: %v", claims.ID, err)
		return nil, fmt.Errorf("%w: ValidateToken - revocation check failed: %v", ErrInternal, err)
	}
	if revoked {
		s.logger.Warn("ValidateToken: token jti=%s is revoked", claims.ID)
		return nil, ErrInvalidToken
	}

	var userID int64
	if _, err := fmt.Sscanf(claims.Subject, "%d", &userID); err != nil {
		return nil, ErrInvalidToken
	}

	return &models.Session{
		UserID:    userID,
		CompanyID: claims.CompanyID,
		Role:      claims.Role,
		JTI:       claims.ID,
	}, nil
}

func (s *Service) parseToken(tokenString string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

const (
	settingsKeyPrefix = "carservice:settings:"
	scheduleKeyPrefix = "carservice:schedule:"
	revokedKeyPrefix  = "carservice:revoked:"
)

// Cache кэш поверх Redis: настройки компании, расписание на день
// и отозванные токены сессий
type Cache struct {
	client *redis.Client
}

// New создает кэш поверх существующего клиента Redis
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// GetCompanySettings читает настройки компании из кэша
func (c *Cache) GetCompanySettings(ctx context.Context, companyID int64) (*domain.CompanySettings, error) {
	key := fmt.Sprintf("%s%d", settingsKeyPrefix, companyID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("%w: get %s: %v", ErrCacheUnavailable, key, err)
	}

	var settings domain.CompanySettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("%w: settings company_id=%d: %v", ErrDecode, companyID, err)
	}

	return &settings, nil
}

// SetCompanySettings сохраняет настройки компании в кэш
func (c *Cache) SetCompanySettings(ctx context.Context, settings *domain.CompanySettings, ttl time.Duration) error {
	key := fmt.Sprintf("%s%d", settingsKeyPrefix, settings.CompanyID)

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: settings company_id=%d: %v", ErrEncode, settings.CompanyID, err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCacheUnavailable, key, err)
	}

	return nil
}

// InvalidateCompanySettings удаляет настройки компании из кэша
func (c *Cache) InvalidateCompanySettings(ctx context.Context, companyID int64) error {
	key := fmt.Sprintf("%s%d", settingsKeyPrefix, companyID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %v", ErrCacheUnavailable, key, err)
	}

	return nil
}

// GetSchedule читает размеченное расписание на день из кэша
func (c *Cache) GetSchedule(ctx context.Context, companyID int64, date string) ([]domain.ScheduleSlot, error) {
	key := scheduleKey(companyID, date)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("%w: get %s: %v", ErrCacheUnavailable, key, err)
	}

	var slots []domain.ScheduleSlot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("%w: schedule %s: %v", ErrDecode, key, err)
	}

	return slots, nil
}

// SetSchedule сохраняет размеченное расписание на день в кэш
func (c *Cache) SetSchedule(ctx context.Context, companyID int64, date string, slots []domain.ScheduleSlot, ttl time.Duration) error {
	key := scheduleKey(companyID, date)

	data, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("%w: schedule %s: %v", ErrEncode, key, err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCacheUnavailable, key, err)
	}

	return nil
}

// InvalidateSchedule удаляет расписание на день из кэша
// Вызывается при любом изменении бронирований на эту дату
func (c *Cache) InvalidateSchedule(ctx context.Context, companyID int64, date string) error {
	key := scheduleKey(companyID, date)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %v", ErrCacheUnavailable, key, err)
	}

	return nil
}

// RevokeToken помечает токен сессии отозванным до истечения его срока
func (c *Cache) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	key := revokedKeyPrefix + jti

	if err := c.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCacheUnavailable, key, err)
	}

	return nil
}

// IsTokenRevoked проверяет, отозван ли токен сессии
func (c *Cache) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	key := revokedKeyPrefix + jti

	count, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: exists %s: %v", ErrCacheUnavailable, key, err)
	}

	return count > 0, nil
}

func scheduleKey(companyID int64, date string) string {
	return fmt.Sprintf("%s%d:%s", scheduleKeyPrefix, companyID, date)
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AvailabilityTTL время жизни закэшированной сводки занятости
// Короткий TTL ограничивает staleness календаря: свободный слот, показанный
// из кэша, мог быть занят не раньше чем AvailabilityTTL назад
const AvailabilityTTL = 30 * time.Second

// ErrCacheMiss возвращается, когда значение в кэше отсутствует
var ErrCacheMiss = errors.New("cache: miss")

// AvailabilityCache кэш сводок занятости дней в Redis
// Ошибки Redis не фатальны для вызывающей стороны: при недоступности кэша
// сводка просто пересчитывается
type AvailabilityCache struct {
	client *redis.Client
}

// NewAvailabilityCache создает кэш и проверяет соединение с Redis
func NewAvailabilityCache(addr, password string, db int) (*AvailabilityCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: failed to connect to redis: %w", err)
	}

	return &AvailabilityCache{client: client}, nil
}

// Close закрывает соединение с Redis
func (c *AvailabilityCache) Close() error {
	return c.client.Close()
}

// Get возвращает закэшированную сводку занятости
func (c *AvailabilityCache) Get(ctx context.Context, key string) ([]domain.DayAvailability, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get %s: %w", key, err)
	}

	var days []domain.DayAvailability
	if err := json.Unmarshal(payload, &days); err != nil {
		// Повреждённое значение эквивалентно промаху
		return nil, ErrCacheMiss
	}

	return days, nil
}

// Set сохраняет сводку занятости с коротким TTL
func (c *AvailabilityCache) Set(ctx context.Context, key string, days []domain.DayAvailability) error {
	payload, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, payload, AvailabilityTTL).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}

	return nil
}

// AvailabilityKey строит ключ кэша для запроса сводки занятости
// employeeID == nil соответствует режиму "любой мастер"
func AvailabilityKey(salonID int64, employeeID *int64, serviceID int64, startDate, endDate time.Time) string {
	employee := "any"
	if employeeID != nil {
		employee = fmt.Sprintf("%d", *employeeID)
	}
	return fmt.Sprintf("availability:%d:%s:%d:%s:%s",
		salonID, employee, serviceID,
		startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat))
}

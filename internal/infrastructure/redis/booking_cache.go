package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
)

const bookingKeyPrefix = "booking:"

// BookingKey は予約キャッシュのキー booking:{event_id}:{user_id} を返す
func BookingKey(eventID int64, userID string) string {
	return fmt.Sprintf("%s%d:%s", bookingKeyPrefix, eventID, userID)
}

// cachedBooking はキャッシュに保存するJSONの形
type cachedBooking struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingCache は確定済み予約をRedisに保存する
type BookingCache struct {
	client redis.UniversalClient
}

// NewBookingCache は BookingCache を作成する
func NewBookingCache(client redis.UniversalClient) *BookingCache {
	return &BookingCache{client: client}
}

// SetBooking は予約をTTL付きで保存する
func (c *BookingCache) SetBooking(ctx context.Context, b *booking.Booking, ttl time.Duration) error {
	data, err := json.Marshal(cachedBooking{
		ID:        b.ID,
		EventID:   b.EventID,
		UserID:    b.UserID,
		CreatedAt: b.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("予約のシリアライズに失敗: %w", err)
	}

	if err := c.client.Set(ctx, BookingKey(b.EventID, b.UserID), string(data), ttl).Err(); err != nil {
		return fmt.Errorf("予約キャッシュの保存に失敗: %w", err)
	}
	return nil
}

package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
)

// MessageTypeBookingCreated は予約確定通知のメッセージ種別
const MessageTypeBookingCreated = "booking_created"

// BookingCreatedData は予約確定通知の本体
type BookingCreatedData struct {
	BookingID int64     `json:"booking_id"`
	EventID   int64     `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Envelope はキューに流すメッセージの共通形式
type Envelope struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// EncodeBookingCreated は予約確定通知をJSONにする
func EncodeBookingCreated(b *booking.Booking, now time.Time) ([]byte, error) {
	data, err := json.Marshal(BookingCreatedData{
		BookingID: b.ID,
		EventID:   b.EventID,
		UserID:    b.UserID,
		CreatedAt: b.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("通知データのシリアライズに失敗: %w", err)
	}
	return json.Marshal(Envelope{
		Type:      MessageTypeBookingCreated,
		Data:      data,
		Timestamp: now,
	})
}

// DecodeBookingCreated は予約確定通知を読み取る
// 種別が booking_created 以外の場合はエラーを返す
func DecodeBookingCreated(value []byte) (*BookingCreatedData, time.Time, error) {
	var env Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		return nil, time.Time{}, fmt.Errorf("メッセージのデシリアライズに失敗: %w", err)
	}
	if env.Type != MessageTypeBookingCreated {
		return nil, time.Time{}, fmt.Errorf("未知のメッセージ種別です: %q", env.Type)
	}

	var data BookingCreatedData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, time.Time{}, fmt.Errorf("通知データのデシリアライズに失敗: %w", err)
	}
	return &data, env.Timestamp, nil
}

package booking

import (
	"time"
	"unicode/utf8"
)

// MaxUserIDLength はユーザーIDの最大文字数（bookings.user_id の VARCHAR(255) に合わせる）
const MaxUserIDLength = 255

// Booking は1ユーザー1イベントにつき1席の予約を表す
type Booking struct {
	ID        int64
	EventID   int64
	UserID    string
	CreatedAt time.Time

	// EventName はユーザー別一覧でのみ設定される
	EventName string
}

// NewBooking は未保存の予約を作成する
// ID と CreatedAt は挿入時にDBが決める
func NewBooking(eventID int64, userID string) *Booking {
	return &Booking{
		EventID: eventID,
		UserID:  userID,
	}
}

// Validate は予約の検証を行う
func (b *Booking) Validate() error {
	if b.EventID <= 0 {
		return ErrInvalidEventID
	}
	return ValidateUserID(b.UserID)
}

// ValidateUserID はユーザーIDが1〜255文字であることを確認する
func ValidateUserID(userID string) error {
	if userID == "" {
		return ErrUserIDRequired
	}
	if utf8.RuneCountInString(userID) > MaxUserIDLength {
		return ErrUserIDTooLong
	}
	return nil
}

package booking

import "errors"

// Booking ドメインのエラー定義
var (
	ErrInvalidEventID = errors.New("イベントIDは正の整数である必要があります")
	ErrUserIDRequired = errors.New("ユーザーIDは必須です")
	ErrUserIDTooLong  = errors.New("ユーザーIDは255文字以内である必要があります")
	ErrAlreadyBooked  = errors.New("このイベントは既に予約済みです")
	ErrEventFull      = errors.New("このイベントに空席はありません")
)

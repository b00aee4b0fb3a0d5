package booking

import (
	"context"

	"github.com/sanosuguru/go-seat-booking/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Create はトランザクション内で予約を挿入し、ID と CreatedAt を設定する
	// (event_id, user_id) の重複は ErrAlreadyBooked を返す
	Create(ctx context.Context, tx transaction.Tx, b *Booking) error

	// CountByEvent はトランザクション内でイベントの予約件数を数える
	CountByEvent(ctx context.Context, tx transaction.Tx, eventID int64) (int, error)

	// ExistsForUser はトランザクション内で同一ユーザーの予約有無を確認する
	ExistsForUser(ctx context.Context, tx transaction.Tx, eventID int64, userID string) (bool, error)

	// ListByUser はユーザーの予約をイベント名付きで新しい順に返す
	ListByUser(ctx context.Context, userID string) ([]*Booking, error)

	// ListByEvent はイベントの予約を新しい順に返す
	ListByEvent(ctx context.Context, eventID int64) ([]*Booking, error)
}

package event

import (
	"context"

	"github.com/sanosuguru/go-seat-booking/internal/domain/transaction"
)

// Repository はイベントリポジトリのインターフェース
type Repository interface {
	// GetByID はIDからイベントを取得する
	GetByID(ctx context.Context, id int64) (*Event, error)

	// GetByIDForUpdate はトランザクション内でイベント行をロックして取得する
	// 同じイベントへの予約受付はこのロックで直列化される
	GetByIDForUpdate(ctx context.Context, tx transaction.Tx, id int64) (*Event, error)

	// List はイベント一覧をID昇順で取得する
	List(ctx context.Context) ([]*Event, error)

	// GetAvailability はイベントと空席数を1クエリで取得する
	GetAvailability(ctx context.Context, id int64) (*Availability, error)
}

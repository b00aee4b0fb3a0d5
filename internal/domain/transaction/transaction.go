package transaction

import (
	"context"
	"errors"
)

// ErrUniqueViolation は一意制約違反を表す
// インフラ層がドライバ固有のエラーをこの値に変換する
var ErrUniqueViolation = errors.New("一意制約違反")

// Tx はトランザクションを表すインターフェース
// ドメイン層がインフラ層（sqlx等）に依存しないようにするための抽象化
type Tx interface {
	// Commit はトランザクションをコミットする
	Commit() error
	// Rollback はトランザクションをロールバックする
	Rollback() error
}

// Manager はトランザクションを管理するインターフェース
type Manager interface {
	// Begin は新しいトランザクションを開始する
	Begin(ctx context.Context) (Tx, error)
}

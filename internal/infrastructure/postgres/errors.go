package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// PostgreSQL のエラーコード
const (
	codeUniqueViolation = "23505"
	codeQueryCanceled   = "57014"
)

// ErrNoTx はリポジトリに sqlx ベースではないトランザクションが渡された場合のエラー
var ErrNoTx = errors.New("sqlxトランザクションではありません")

func pqCode(err error) string {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return string(pgErr.Code)
	}
	return ""
}

// IsUniqueViolation は一意制約違反かどうかを返す
func IsUniqueViolation(err error) bool {
	return pqCode(err) == codeUniqueViolation
}

// IsQueryCanceled は statement_timeout 等でクエリが中断されたかどうかを返す
func IsQueryCanceled(err error) bool {
	return pqCode(err) == codeQueryCanceled
}

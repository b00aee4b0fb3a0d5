package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-seat-booking/internal/domain/event"
	"github.com/sanosuguru/go-seat-booking/internal/domain/transaction"
)

// eventRow はDBの行を表す構造体
type eventRow struct {
	ID         int64  `db:"id"`
	Name       string `db:"name"`
	TotalSeats int    `db:"total_seats"`
}

func (r *eventRow) toEntity() *event.Event {
	return &event.Event{
		ID:         r.ID,
		Name:       r.Name,
		TotalSeats: r.TotalSeats,
	}
}

// availabilityRow はイベントと予約件数を結合した行
type availabilityRow struct {
	eventRow
	BookedCount int `db:"booked_count"`
}

// EventRepository はイベントリポジトリのPostgreSQL実装
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository はEventRepositoryを作成する
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// GetByID はIDからイベントを取得する
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*event.Event, error) {
	var row eventRow
	err := r.db.GetContext(ctx, &row, `SELECT id, name, total_seats FROM events WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, event.ErrEventNotFound
		}
		return nil, fmt.Errorf("イベント取得に失敗しました: %w", err)
	}
	return row.toEntity(), nil
}

// GetByIDForUpdate はイベント行を FOR UPDATE でロックして取得する
// ロックはトランザクション終了まで保持される
func (r *EventRepository) GetByIDForUpdate(ctx context.Context, tx transaction.Tx, id int64) (*event.Event, error) {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return nil, err
	}

	var row eventRow
	err = sqlxTx.GetContext(ctx, &row, `SELECT id, name, total_seats FROM events WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, event.ErrEventNotFound
		}
		return nil, fmt.Errorf("イベントのロック取得に失敗しました: %w", err)
	}
	return row.toEntity(), nil
}

// List はイベント一覧をID昇順で取得する
func (r *EventRepository) List(ctx context.Context) ([]*event.Event, error) {
	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name, total_seats FROM events ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("イベント一覧取得に失敗しました: %w", err)
	}

	events := make([]*event.Event, len(rows))
	for i := range rows {
		events[i] = rows[i].toEntity()
	}
	return events, nil
}

// GetAvailability はイベントと予約件数を1クエリで取得する
func (r *EventRepository) GetAvailability(ctx context.Context, id int64) (*event.Availability, error) {
	query := `
		SELECT e.id, e.name, e.total_seats, COUNT(b.id) AS booked_count
		FROM events e
		LEFT JOIN bookings b ON b.event_id = e.id
		WHERE e.id = $1
		GROUP BY e.id, e.name, e.total_seats
	`
	var row availabilityRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, event.ErrEventNotFound
		}
		return nil, fmt.Errorf("空席状況の取得に失敗しました: %w", err)
	}
	return event.NewAvailability(row.toEntity(), row.BookedCount), nil
}

// インターフェースを満たしているか確認
var _ event.Repository = (*EventRepository)(nil)

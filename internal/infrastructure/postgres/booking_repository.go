package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
	"github.com/sanosuguru/go-seat-booking/internal/domain/transaction"
)

type bookingRow struct {
	ID        int64     `db:"id"`
	EventID   int64     `db:"event_id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	EventName *string   `db:"event_name"`
}

func (r *bookingRow) toEntity() *booking.Booking {
	b := &booking.Booking{
		ID:        r.ID,
		EventID:   r.EventID,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
	}
	if r.EventName != nil {
		b.EventName = *r.EventName
	}
	return b
}

// BookingRepository は予約リポジトリのPostgreSQL実装
type BookingRepository struct{ db *sqlx.DB }

// NewBookingRepository はBookingRepositoryを作成する
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create は予約を挿入し、DBが採番した id と created_at を設定する
func (r *BookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return err
	}

	query := `INSERT INTO bookings (event_id, user_id) VALUES ($1, $2) RETURNING id, created_at`
	if err := sqlxTx.QueryRowxContext(ctx, query, b.EventID, b.UserID).Scan(&b.ID, &b.CreatedAt); err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", booking.ErrAlreadyBooked, err)
		}
		return fmt.Errorf("予約作成に失敗: %w", err)
	}
	return nil
}

// CountByEvent はイベントの予約件数を数える
func (r *BookingRepository) CountByEvent(ctx context.Context, tx transaction.Tx, eventID int64) (int, error) {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return 0, err
	}

	var count int
	if err := sqlxTx.GetContext(ctx, &count, `SELECT COUNT(*) FROM bookings WHERE event_id = $1`, eventID); err != nil {
		return 0, fmt.Errorf("予約件数の取得に失敗: %w", err)
	}
	return count, nil
}

// ExistsForUser は同一ユーザーの予約有無を確認する
func (r *BookingRepository) ExistsForUser(ctx context.Context, tx transaction.Tx, eventID int64, userID string) (bool, error) {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return false, err
	}

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM bookings WHERE event_id = $1 AND user_id = $2)`
	if err := sqlxTx.GetContext(ctx, &exists, query, eventID, userID); err != nil {
		return false, fmt.Errorf("予約重複確認に失敗: %w", err)
	}
	return exists, nil
}

// ListByUser はユーザーの予約をイベント名付きで新しい順に返す
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]*booking.Booking, error) {
	query := `
		SELECT b.id, b.event_id, b.user_id, b.created_at, e.name AS event_name
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC
	`
	var rows []bookingRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("ユーザー予約一覧取得に失敗: %w", err)
	}
	return toBookings(rows), nil
}

// ListByEvent はイベントの予約を新しい順に返す
func (r *BookingRepository) ListByEvent(ctx context.Context, eventID int64) ([]*booking.Booking, error) {
	query := `
		SELECT id, event_id, user_id, created_at, NULL AS event_name
		FROM bookings
		WHERE event_id = $1
		ORDER BY created_at DESC, id DESC
	`
	var rows []bookingRow
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("イベント予約一覧取得に失敗: %w", err)
	}
	return toBookings(rows), nil
}

// toBookings は空でも nil ではなく空スライスを返す
func toBookings(rows []bookingRow) []*booking.Booking {
	result := make([]*booking.Booking, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result
}

var _ booking.Repository = (*BookingRepository)(nil)

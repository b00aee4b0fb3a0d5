package booking

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	b := NewBooking(42, "user-123")

	assert.Equal(t, int64(42), b.EventID)
	assert.Equal(t, "user-123", b.UserID)
	assert.Zero(t, b.ID)
	assert.True(t, b.CreatedAt.IsZero())
}

func TestBooking_Validate(t *testing.T) {
	tests := []struct {
		name        string
		eventID     int64
		userID      string
		expectedErr error
	}{
		{"正常な予約", 1, "user-1", nil},
		{"ユーザーID255文字", 1, strings.Repeat("a", 255), nil},
		{"マルチバイト255文字", 1, strings.Repeat("あ", 255), nil},
		{"イベントIDが0", 0, "user-1", ErrInvalidEventID},
		{"イベントIDが負", -5, "user-1", ErrInvalidEventID},
		{"ユーザーID未指定", 1, "", ErrUserIDRequired},
		{"ユーザーIDが空白のみでも1文字以上なら有効", 1, "   ", nil},
		{"ユーザーID256文字", 1, strings.Repeat("a", 256), ErrUserIDTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBooking(tt.eventID, tt.userID).Validate()
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestOutcome(t *testing.T) {
	t.Run("作成成功", func(t *testing.T) {
		b := &Booking{ID: 1, EventID: 1, UserID: "u"}
		o := Created(b)

		assert.True(t, o.IsCreated())
		assert.False(t, o.IsInternal())
		assert.Equal(t, OutcomeCreated, o.Code())
		assert.Same(t, b, o.Booking)
	})

	t.Run("満席で拒否", func(t *testing.T) {
		o := Rejected(RejectionEventFull, ErrEventFull)

		assert.False(t, o.IsCreated())
		assert.False(t, o.IsInternal())
		assert.Equal(t, "EVENT_FULL", o.Code())
		assert.Nil(t, o.Booking)
		assert.ErrorIs(t, o.Err, ErrEventFull)
	})

	t.Run("内部エラー", func(t *testing.T) {
		o := Rejected(RejectionInternal, errors.New("connection reset"))

		assert.True(t, o.IsInternal())
		assert.Equal(t, "INTERNAL_ERROR", o.Code())
	})

	t.Run("ゼロ値は作成扱いにならない", func(t *testing.T) {
		assert.False(t, Outcome{}.IsCreated())
	})
}

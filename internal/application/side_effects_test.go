package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sanosuguru/go-seat-booking/internal/domain/booking"
	"github.com/sanosuguru/go-seat-booking/internal/pkg/metrics"
)

var dispatchedBooking = &booking.Booking{ID: 10, EventID: 1, UserID: "user-1", CreatedAt: time.Now()}

func TestSideEffectDispatcher_Run_Success(t *testing.T) {
	cache := new(MockBookingCache)
	publisher := new(MockBookingPublisher)
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	d := NewSideEffectDispatcher(cache, publisher, SideEffectConfig{CacheTTL: time.Hour, Timeout: time.Second}, m, zap.NewNop())

	cache.On("SetBooking", mock.Anything, dispatchedBooking, time.Hour).Return(nil)
	publisher.On("PublishBookingCreated", mock.Anything, dispatchedBooking).Return(nil)

	d.Run(context.Background(), dispatchedBooking)

	cache.AssertExpectations(t)
	publisher.AssertExpectations(t)
	assert.Equal(t, 0, testutil.CollectAndCount(m.SideEffectFailuresTotal))
}

func TestSideEffectDispatcher_Run_FailuresAreIndependent(t *testing.T) {
	cache := new(MockBookingCache)
	publisher := new(MockBookingPublisher)
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	core, logs := observer.New(zapcore.DebugLevel)
	d := NewSideEffectDispatcher(cache, publisher, SideEffectConfig{}, m, zap.New(core))

	// キャッシュが失敗しても通知は送られる
	cache.On("SetBooking", mock.Anything, dispatchedBooking, time.Hour).Return(errors.New("redis down"))
	publisher.On("PublishBookingCreated", mock.Anything, dispatchedBooking).Return(errors.New("broker down"))

	assert.NotPanics(t, func() { d.Run(context.Background(), dispatchedBooking) })

	cache.AssertExpectations(t)
	publisher.AssertExpectations(t)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SideEffectFailuresTotal.WithLabelValues(EffectCache)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SideEffectFailuresTotal.WithLabelValues(EffectNotification)))

	entries := logs.FilterMessage("副作用に失敗しました").All()
	assert.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, zapcore.WarnLevel, e.Level)
	}
}

func TestSideEffectDispatcher_Run_DetachedWithTimeout(t *testing.T) {
	cache := new(MockBookingCache)
	d := NewSideEffectDispatcher(cache, nil, SideEffectConfig{Timeout: 50 * time.Millisecond}, nil, nil)

	cache.On("SetBooking", mock.Anything, dispatchedBooking, time.Hour).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			assert.NoError(t, ctx.Err(), "呼び出し元のキャンセルは引き継がない")
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		}).
		Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d.Run(ctx, dispatchedBooking)

	cache.AssertExpectations(t)
}

func TestSideEffectDispatcher_Run_NilTargets(t *testing.T) {
	d := NewSideEffectDispatcher(nil, nil, SideEffectConfig{}, nil, nil)

	assert.NotPanics(t, func() { d.Run(context.Background(), dispatchedBooking) })
}

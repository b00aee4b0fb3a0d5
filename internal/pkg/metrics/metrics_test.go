package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	// 各テストで新しいレジストリを使用
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	require.NotNil(t, m)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.BookingsTotal)
	assert.NotNil(t, m.AdmissionDuration)
	assert.NotNil(t, m.SideEffectFailuresTotal)
	assert.NotNil(t, m.SideEffectQueueDepth)
}

func TestNewWithRegistry_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewWithRegistry(reg)

	assert.Panics(t, func() { NewWithRegistry(reg) })
}

func TestHTTPRequestsTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	// リクエストをカウント
	m.HTTPRequestsTotal.WithLabelValues("GET", "/api/events", "200").Inc()
	m.HTTPRequestsTotal.WithLabelValues("POST", "/api/bookings/reserve", "201").Inc()
	m.HTTPRequestsTotal.WithLabelValues("POST", "/api/bookings/reserve", "409").Inc()

	// メトリクスが正しく収集されているか確認
	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "http_requests_total" {
			found = true
			assert.Equal(t, 3, len(f.GetMetric()))
		}
	}
	assert.True(t, found, "http_requests_total metric not found")
}

func TestBookingsTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.BookingsTotal.WithLabelValues("CREATED").Inc()
	m.BookingsTotal.WithLabelValues("CREATED").Inc()
	m.BookingsTotal.WithLabelValues("EVENT_FULL").Inc()
	m.BookingsTotal.WithLabelValues("ALREADY_BOOKED").Inc()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.BookingsTotal.WithLabelValues("CREATED")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BookingsTotal.WithLabelValues("EVENT_FULL")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.BookingsTotal))
}

func TestAdmissionDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.AdmissionDuration.WithLabelValues("CREATED").Observe(0.012)
	m.AdmissionDuration.WithLabelValues("INTERNAL_ERROR").Observe(5)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "booking_admission_duration_seconds" {
			found = true
			assert.Equal(t, 2, len(f.GetMetric()))
		}
	}
	assert.True(t, found, "booking_admission_duration_seconds metric not found")
}

func TestSideEffectMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.SideEffectFailuresTotal.WithLabelValues("cache").Inc()
	m.SideEffectFailuresTotal.WithLabelValues("notification").Inc()
	m.SideEffectFailuresTotal.WithLabelValues("notification").Inc()
	m.SideEffectQueueDepth.Inc()
	m.SideEffectQueueDepth.Inc()
	m.SideEffectQueueDepth.Dec()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.SideEffectFailuresTotal.WithLabelValues("cache")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.SideEffectFailuresTotal.WithLabelValues("notification")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SideEffectQueueDepth))
}

func TestHTTPRequestDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	// レイテンシを観測
	m.HTTPRequestDuration.WithLabelValues("GET", "/api/events").Observe(0.025)
	m.HTTPRequestDuration.WithLabelValues("POST", "/api/bookings/reserve").Observe(0.150)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "http_request_duration_seconds" {
			found = true
		}
	}
	assert.True(t, found, "http_request_duration_seconds metric not found")
}

func TestInit_CreatesDefaultMetrics(t *testing.T) {
	// 既存のdefaultMetricsをバックアップ
	oldMetrics := defaultMetrics
	defer func() { defaultMetrics = oldMetrics }()

	// Initを呼ぶとデフォルトレジストリに登録するため、テストでは直接セット
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)
	defaultMetrics = m

	got := Get()
	assert.NotNil(t, got)
	assert.Equal(t, m, got)
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-seat-booking/internal/pkg/logger"
)

const healthCheckTimeout = 2 * time.Second

// Pinger は依存先の疎通確認
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck は名前付きの疎通確認
type HealthCheck struct {
	Name   string
	Pinger Pinger
}

// HealthHandler はヘルスチェックハンドラー
type HealthHandler struct {
	environment string
	startedAt   time.Time
	checks      []HealthCheck
	now         func() time.Time
}

// NewHealthHandler はHealthHandlerを作成する
func NewHealthHandler(environment string, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		environment: environment,
		startedAt:   time.Now(),
		checks:      checks,
		now:         time.Now,
	}
}

// HealthResponse はヘルスチェックのレスポンス
type HealthResponse struct {
	Status      string            `json:"status"`
	Timestamp   string            `json:"timestamp"`
	Uptime      float64           `json:"uptime"`
	Environment string            `json:"environment"`
	Checks      map[string]string `json:"checks,omitempty"`
}

// Check はヘルスチェックを行う
// 依存先のどれかが応答しなければ 503 を返す
// @Summary ヘルスチェック
// @Description アプリケーションと依存先の健全性を確認する
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Check(c echo.Context) error {
	status := "ok"
	code := http.StatusOK

	var results map[string]string
	if len(h.checks) > 0 {
		results = make(map[string]string, len(h.checks))
	}
	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		err := check.Pinger.Ping(ctx)
		cancel()
		if err != nil {
			logger.Warn("ヘルスチェック失敗", zap.String("check", check.Name), zap.Error(err))
			results[check.Name] = "error"
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		results[check.Name] = "ok"
	}

	now := h.now()
	return c.JSON(code, HealthResponse{
		Status:      status,
		Timestamp:   now.Format(time.RFC3339),
		Uptime:      now.Sub(h.startedAt).Seconds(),
		Environment: h.environment,
		Checks:      results,
	})
}

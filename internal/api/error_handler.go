package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-seat-booking/internal/pkg/logger"
)

// CustomHTTPErrorHandler はハンドラーが返したエラーを共通形式のJSONにする
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	code := CodeInternalServer
	message := MessageUnexpected

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		switch {
		case status == http.StatusNotFound:
			code, message = CodeNotFound, "Route not found"
		case status == http.StatusMethodNotAllowed:
			code, message = CodeMethodNotAllowed, "Method not allowed"
		case status == http.StatusUnauthorized:
			code, message = CodeUnauthorized, "Unauthorized"
		case status < http.StatusInternalServerError:
			code = CodeValidation
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		}
	}

	// エラーログを出力（5xx エラーの場合）
	if status >= http.StatusInternalServerError {
		logger.Error("サーバーエラー",
			zap.Int("status", status),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = Fail(c, status, code, message)
	}
	if err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}

package api

import (
	"github.com/labstack/echo/v4"
)

// エラーコード（予約の拒否理由は booking.Rejection の値をそのまま使う）
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeEventNotFound    = "EVENT_NOT_FOUND"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeInternalServer   = "INTERNAL_SERVER_ERROR"
)

// MessageUnexpected は想定外のエラー時のメッセージ
const MessageUnexpected = "An unexpected error occurred"

// Envelope はすべてのJSONレスポンスの共通形式
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Success は成功レスポンスを返す
func Success(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// Fail はエラーレスポンスを返す
func Fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, Envelope{
		Success: false,
		Error:   code,
		Message: message,
	})
}

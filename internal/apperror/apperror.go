// Package apperror 定義由業務邏輯主動拋出的應用錯誤.
//
// 任何經 errors.As 可取得 *Error 的錯誤，都會被全域錯誤處理歸類為應用錯誤，
// 其餘錯誤一律視為其他錯誤.
package apperror

import (
	"errors"
	"fmt"
)

// Error 應用錯誤，Message 即回應給客戶端的詳細原因.
type Error struct {
	Message string
	Cause   error
}

// New 建立應用錯誤.
func New(message string) *Error {
	return &Error{Message: message}
}

// Newf 以格式化字串建立應用錯誤.
func Newf(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Wrap 以應用錯誤包裝底層錯誤，cause 僅用於日誌與 errors.Is.
func Wrap(cause error, message string) *Error {
	return &Error{Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// As 從錯誤鏈中取出應用錯誤.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

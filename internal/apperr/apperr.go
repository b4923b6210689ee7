package apperr

import (
	"fmt"
	"net/http"
)

// Error 统一的应用错误：带 HTTP 状态码和 operational 标记。
// operational = 业务上预期的失败（带着明确状态码抛出来的），
// 相对于运行期的意外故障。
type Error struct {
	StatusCode  int
	Message     string
	Operational bool
	Err         error
	Stack       string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "Internal Server Error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(msg string, status int) *Error {
	if status <= 0 {
		status = http.StatusInternalServerError
	}
	return &Error{StatusCode: status, Message: msg, Operational: true}
}

func BadRequest(msg string) *Error   { return New(msg, http.StatusBadRequest) }
func Unauthorized(msg string) *Error { return New(msg, http.StatusUnauthorized) }
func Forbidden(msg string) *Error    { return New(msg, http.StatusForbidden) }
func NotFound(msg string) *Error     { return New(msg, http.StatusNotFound) }
func Conflict(msg string) *Error     { return New(msg, http.StatusConflict) }

// Internal 非预期故障，operational=false
func Internal(msg string, err error) *Error {
	return &Error{
		StatusCode: http.StatusInternalServerError,
		Message:    msg,
		Err:        err,
	}
}

func Internalf(format string, a ...any) *Error {
	return Internal(fmt.Sprintf(format, a...), nil)
}

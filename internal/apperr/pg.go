package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Translate 把异构失败源拍平成 *Error：
// 已是 *Error 原样返回；postgres 错误码走映射表；
// gorm 记录不存在映射 404；其余按 500 兜底。
func Translate(err error) *Error {
	if err == nil {
		return nil
	}

	var ae *Error
	if errors.As(err, &ae) {
		if ae.StatusCode <= 0 {
			ae.StatusCode = http.StatusInternalServerError
		}
		return ae
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("Record not found.")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code != "" {
		return fromPgCode(pgErr)
	}

	out := Internal(err.Error(), err)
	return out
}

// postgres 错误码 → (message, status)
func fromPgCode(e *pgconn.PgError) *Error {
	switch e.Code {
	case "23505": // unique_violation
		return New(fmt.Sprintf("Unique constraint violation: Constraint '%s' violated", e.ConstraintName), http.StatusBadRequest)
	case "22P02", "23502": // invalid_text_representation / not_null_violation
		return New(fmt.Sprintf("Invalid data type for column: %s", e.ColumnName), http.StatusBadRequest)
	case "23503": // foreign_key_violation
		return New(fmt.Sprintf("Foreign key constraint violation: Constraint '%s' violated", e.ConstraintName), http.StatusBadRequest)
	case "42703": // undefined_column
		return New(fmt.Sprintf("Undefined column: '%s'", e.ColumnName), http.StatusBadRequest)
	case "42P01": // undefined_table
		return New(fmt.Sprintf("Undefined table: '%s'", e.TableName), http.StatusBadRequest)
	case "42601", "42000": // syntax_error
		return New(fmt.Sprintf("Code: %s, Syntax error or invalid SQL statement", e.Code), http.StatusBadRequest)
	case "42501": // insufficient_privilege
		return New("Insufficient privileges", http.StatusForbidden)
	case "08006", "08001": // connection failures
		return New("Database connection error", http.StatusInternalServerError)
	case "57P01": // admin_shutdown
		return New("Client connection closed unexpectedly", http.StatusInternalServerError)
	case "40P01": // deadlock_detected
		return New("Deadlock detected", http.StatusInternalServerError)
	case "40001": // serialization_failure
		return New("Data serialization failure", http.StatusInternalServerError)
	default:
		msg := e.Message
		if msg == "" {
			msg = "Internal Server Error"
		}
		return New(msg, http.StatusInternalServerError)
	}
}

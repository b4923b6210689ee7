package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate_PassThrough(t *testing.T) {
	orig := Conflict("User already exists.")
	got := Translate(orig)
	assert.Same(t, orig, got)
	assert.Equal(t, http.StatusConflict, got.StatusCode)
	assert.True(t, got.Operational)
}

func TestTranslate_UniqueViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	got := Translate(err)

	assert.Equal(t, http.StatusBadRequest, got.StatusCode)
	assert.Contains(t, got.Message, "users_email_key")
	assert.Contains(t, got.Message, "Unique constraint violation")
}

func TestTranslate_CodeTable(t *testing.T) {
	cases := []struct {
		code   string
		status int
	}{
		{"22P02", 400},
		{"23502", 400},
		{"23503", 400},
		{"42703", 400},
		{"42P01", 400},
		{"42601", 400},
		{"42000", 400},
		{"42501", 403},
		{"08006", 500},
		{"08001", 500},
		{"57P01", 500},
		{"40P01", 500},
		{"40001", 500},
	}
	for _, tc := range cases {
		got := Translate(&pgconn.PgError{Code: tc.code})
		assert.Equal(t, tc.status, got.StatusCode, "code=%s", tc.code)
		assert.True(t, got.Operational, "code=%s", tc.code)
	}
}

func TestTranslate_UnknownPgCode(t *testing.T) {
	got := Translate(&pgconn.PgError{Code: "P0001", Message: "custom raise"})
	assert.Equal(t, http.StatusInternalServerError, got.StatusCode)
	assert.Equal(t, "custom raise", got.Message)
}

func TestTranslate_RecordNotFound(t *testing.T) {
	got := Translate(gorm.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, got.StatusCode)
}

func TestTranslate_UnknownError(t *testing.T) {
	got := Translate(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, got.StatusCode)
	assert.False(t, got.Operational)
	assert.Equal(t, "boom", got.Message)
}

func TestTranslate_WrappedAppError(t *testing.T) {
	// errors.As 能穿透包装
	wrapped := errorWrap{NotFound("Record not found.")}
	got := Translate(wrapped)
	assert.Equal(t, http.StatusNotFound, got.StatusCode)
}

type errorWrap struct{ inner error }

func (w errorWrap) Error() string { return w.inner.Error() }
func (w errorWrap) Unwrap() error { return w.inner }

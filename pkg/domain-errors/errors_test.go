package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodes(t *testing.T) {
	t.Run("HasCode sees through wrapping", func(t *testing.T) {
		inner := New(CodeNotFound, "payment not found")
		outer := fmt.Errorf("lookup: %w", inner)

		assert.True(t, HasCode(outer, CodeNotFound))
		assert.False(t, HasCode(outer, CodeValidation))
		assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
	})

	t.Run("CodeOf defaults to internal", func(t *testing.T) {
		assert.Equal(t, CodeValidation, CodeOf(New(CodeValidation, "bad input")))
		assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	})

	t.Run("Wrap preserves the cause chain", func(t *testing.T) {
		cause := errors.New("sql: no rows")
		err := Wrap(cause, CodeInternal, "find scheme")

		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "find scheme")
		assert.Contains(t, err.Error(), "sql: no rows")
	})
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeNotFound:          http.StatusNotFound,
		CodeInvalidTransition: http.StatusConflict,
		CodeValidation:        http.StatusUnprocessableEntity,
		CodeBadRequest:        http.StatusBadRequest,
		CodeUnauthorized:      http.StatusUnauthorized,
		CodeInternal:          http.StatusInternalServerError,
		Code("mystery"):       http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), string(code))
	}
}

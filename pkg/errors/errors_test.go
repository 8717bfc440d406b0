package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDetailDoesNotMutateShared(t *testing.T) {
	e1 := ErrValidation.WithDetail("primer detalle")
	e2 := ErrValidation.WithDetail("segundo detalle")

	// 两次调用互不干扰，共享值保持干净
	require.NotSame(t, e1, e2)
	assert.Equal(t, "primer detalle", e1.Detail)
	assert.Equal(t, "segundo detalle", e2.Detail)
	assert.Empty(t, ErrValidation.Detail)

	// 副本保留错误码与 HTTP 状态
	assert.Equal(t, CodeValidationFailed, e1.Code)
	assert.Equal(t, http.StatusBadRequest, e1.HTTPStatus)
	assert.True(t, IsCode(e1, CodeValidationFailed))
}

func TestWithErrorDoesNotMutateShared(t *testing.T) {
	cause := errors.New("connection refused")

	e := ErrProvider.WithError(cause)

	require.NotSame(t, ErrProvider, e)
	assert.Nil(t, ErrProvider.Err)
	assert.Equal(t, cause, e.Unwrap())
	assert.True(t, errors.Is(e, cause))
	assert.Equal(t, http.StatusServiceUnavailable, e.HTTPStatus)
}

func TestCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{code: CodeValidationFailed, want: http.StatusBadRequest},
		{code: CodeNotFound, want: http.StatusNotFound},
		{code: CodeTooManyRequests, want: http.StatusTooManyRequests},
		{code: CodeLLMProviderError, want: http.StatusServiceUnavailable},
		{code: CodeConfigError, want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.code, "x").HTTPStatus)
	}
}

func TestAsAppErrorWrapsUnknown(t *testing.T) {
	plain := errors.New("boom")

	appErr := AsAppError(plain)
	assert.Equal(t, CodeUnknown, appErr.Code)
	assert.Equal(t, plain, appErr.Unwrap())
}

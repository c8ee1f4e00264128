package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
	}{
		{NotFound("tour %d not found", 1), http.StatusNotFound},
		{Validation("bad"), http.StatusBadRequest},
		{Permission("no"), http.StatusForbidden},
		{Unauthorized("who"), http.StatusUnauthorized},
		{Conflict("busy"), http.StatusConflict},
		{Internal(errors.New("boom"), "oops"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
		})
	}
}

func TestAsUnwrapsWrappedErrors(t *testing.T) {
	base := NotFound("POI %d not found", 7)
	wrapped := fmt.Errorf("delete poi: %w", base)

	got := As(wrapped)
	assert.Same(t, base, got)
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindValidation))
}

func TestAsPlainErrorIsInternal(t *testing.T) {
	cause := errors.New("disk full")
	got := As(cause)

	assert.Equal(t, KindInternal, got.Kind)
	assert.ErrorIs(t, got, cause)
}

func TestWithDetail(t *testing.T) {
	err := Validation("missing").WithDetail("missing", []int64{3, 4})
	assert.Equal(t, []int64{3, 4}, err.Details["missing"])
}

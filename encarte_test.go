package encarte_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/encarte"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := encarte.Errorf(encarte.ENOTFOUND, "source %q not found", "mercado-a")

	assert.Equal(t, encarte.ENOTFOUND, encarte.ErrorCode(err))
	assert.Equal(t, "source \"mercado-a\" not found", encarte.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, encarte.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, encarte.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("storing products: %w", encarte.Errorf(encarte.EINVALID, "bad"))

	assert.Equal(t, encarte.EINVALID, encarte.ErrorCode(err))
	assert.Equal(t, "bad", encarte.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk full")

	assert.Equal(t, encarte.EINTERNAL, encarte.ErrorCode(err))
	assert.Equal(t, "Internal error", encarte.ErrorMessage(err))
}

package earmark_test

import (
	"errors"
	"testing"

	"github.com/jkow/earmark"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := earmark.Errorf(earmark.ENOTFOUND, "unknown source %q", "test")

	assert.Equal(t, earmark.ENOTFOUND, earmark.ErrorCode(err))
	assert.Equal(t, "unknown source \"test\"", earmark.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, earmark.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, earmark.EINTERNAL, earmark.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, earmark.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", earmark.ErrorMessage(errors.New("boom")))
}

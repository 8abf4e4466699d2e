package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf("error: %s %d", "test", 42)
	require.NotNil(t, err)
	assert.Equal(t, "error: test 42", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWrapf(t *testing.T) {
	original := New("original")
	wrapped := Wrapf(original, "wrapped: %d", 42)

	assert.Contains(t, wrapped.Error(), "wrapped: 42")
	assert.Contains(t, wrapped.Error(), "original")
}

func TestIs(t *testing.T) {
	err1 := New("error 1")
	err2 := New("error 2")
	wrapped := Wrap(err1, "wrapped")

	assert.True(t, Is(wrapped, err1))
	assert.False(t, Is(wrapped, err2))
	assert.False(t, Is(nil, err1))
}

type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}

func TestAs(t *testing.T) {
	original := &customError{msg: "custom"}
	wrapped := Wrap(original, "wrapped")

	var target *customError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, "custom", target.msg)
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("bad row"), "check the page markup")
	assert.Contains(t, GetAllHints(err), "check the page markup")
}

func TestMalformedPageError(t *testing.T) {
	err := NewMalformedPageError("expected 3 cells, got %d", 2)

	assert.True(t, IsMalformedPageError(err))
	assert.True(t, IsMalformedPageError(Wrapf(err, "command %s", "polyCube")))
	assert.Contains(t, err.Error(), "expected 3 cells, got 2")
	assert.False(t, IsMalformedPageError(nil))
	assert.False(t, IsMalformedPageError(fmt.Errorf("plain")))
}

func TestInvalidTableError(t *testing.T) {
	err := NewInvalidTableError("table %s: empty key", "query_return_types")
	assert.True(t, Is(err, ErrInvalidTable))
	assert.False(t, IsNotFoundError(err))
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(Wrap(ErrNotFound, "page ls")))
	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsNotFoundError(New("something else")))
}

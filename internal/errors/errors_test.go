package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesSentinel(t *testing.T) {
	sentinel := New("record missing")

	wrapped := Wrap(sentinel, "failed to load record")

	require.Error(t, wrapped)
	assert.ErrorContains(t, wrapped, "failed to load record")
	assert.True(t, Is(wrapped, sentinel))
	assert.Equal(t, sentinel, Cause(wrapped))
}

type codedError struct{ code string }

func (e *codedError) Error() string { return e.code }

func TestAsFindsTypedError(t *testing.T) {
	wrapped := Wrap(&codedError{code: "E42"}, "call failed")

	var coded *codedError
	require.True(t, As(wrapped, &coded))
	assert.Equal(t, "E42", coded.code)
}

func TestJoinMatchesEveryBranch(t *testing.T) {
	first := New("first")
	second := New("second")

	joined := Join(first, second)

	assert.True(t, Is(joined, first))
	assert.True(t, Is(joined, second))
}

package try

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestSuccess(t *testing.T) {
	t.Parallel()

	res := Success(42)

	assert.True(t, res.IsSuccess())
	assert.False(t, res.IsFailure())

	val, err := res.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, val)
}

func TestFailure(t *testing.T) {
	t.Parallel()

	res := Failure[int](errBoom)

	assert.True(t, res.IsFailure())

	val, err := res.Get()
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 0, val)
}

func TestGetOrElse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hi", Success("hi").GetOrElse("fallback"))
	assert.Equal(t, "fallback", Failure[string](errBoom).GetOrElse("fallback"))
}

func TestMap(t *testing.T) {
	t.Parallel()

	res := Map(Success(7), func(v int) (string, error) {
		return strconv.Itoa(v), nil
	})

	val, err := res.Get()
	require.NoError(t, err)
	assert.Equal(t, "7", val)

	failed := Map(Failure[int](errBoom), func(v int) (string, error) {
		t.Fatal("must not be called on failure")

		return "", nil
	})
	assert.ErrorIs(t, failed.Error, errBoom)
}

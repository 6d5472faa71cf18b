package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRetrierSucceedsAfterTransientFailures(t *testing.T) {
	retry := NewRetrier(3, 0)

	calls := 0
	err := retry.Do("test.op", func() error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetrierExhaustionYieldsTransientError(t *testing.T) {
	retry := NewRetrier(2, 0)

	cause := errors.New("connection refused")
	err := retry.Do("test.op", func() error { return cause })

	var transient *TransientError
	require.ErrorAs(t, err, &transient)
	assert.Equal(t, 2, transient.Attempts)
	assert.ErrorIs(t, err, cause)
}

func TestRetrierDoesNotRetryRecordNotFound(t *testing.T) {
	retry := NewRetrier(3, 0)

	calls := 0
	err := retry.Do("test.op", func() error {
		calls++
		return gorm.ErrRecordNotFound
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Equal(t, 1, calls)
}

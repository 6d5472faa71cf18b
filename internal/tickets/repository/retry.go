package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

// TransientError reports a store operation that kept failing after every
// retry attempt.
type TransientError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("store operation %s failed after %d attempts: %v", e.Op, e.Attempts, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// Retrier applies a single retry policy to every store operation: a fixed
// number of attempts with a fixed backoff between them.
type Retrier struct {
	attempts int
	backoff  time.Duration
}

func NewRetrier(attempts int, backoff time.Duration) *Retrier {
	if attempts < 1 {
		attempts = 1
	}
	return &Retrier{attempts: attempts, backoff: backoff}
}

// Do runs fn until it succeeds, fails with a non-retryable error, or the
// attempts run out. Exhaustion is reported as a TransientError.
func (r *Retrier) Do(op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		log.Printf("[Store] %s failed (attempt %d/%d): %v", op, attempt, r.attempts, err)
		if attempt < r.attempts {
			time.Sleep(r.backoff)
		}
	}
	return &TransientError{Op: op, Attempts: r.attempts, Err: err}
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrInvalidData),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}

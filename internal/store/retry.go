package store

import (
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const maxWriteRetries = 3

// isTransientSQLiteErr reports whether err is lock contention that a retry can clear.
func isTransientSQLiteErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, pattern := range []string{
		"SQLITE_BUSY",
		"SQLITE_LOCKED",
		"database is locked",
		"database table is locked",
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

func newWriteBackOff() backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 50 * time.Millisecond
	eb.MaxInterval = 500 * time.Millisecond
	return backoff.WithMaxRetries(eb, maxWriteRetries)
}

// retryOnContention runs fn, retrying transient SQLite errors with exponential backoff.
// Any other error is returned immediately.
func retryOnContention(fn func() error) error {
	return backoff.Retry(func() error {
		err := fn()
		if err != nil && !isTransientSQLiteErr(err) {
			return backoff.Permanent(err)
		}
		return err
	}, newWriteBackOff())
}

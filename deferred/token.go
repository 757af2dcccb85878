package deferred

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrCancelled is returned by operations which stopped because their token
// has been cancelled.
var ErrCancelled = errors.New("deferred: operation cancelled")

// Token is a cooperative cancellation flag shared between the issuer of an
// operation and the operation itself.
type Token struct {
	cancelled atomic.Bool
}

// NewToken creates a token which is not cancelled.
func NewToken() *Token {
	return &Token{}
}

// Cancel requests the operation holding the token to stop.
func (tok *Token) Cancel() {
	tok.cancelled.Store(true)
}

// IsCancellationRequested is polled by operations.
func (tok *Token) IsCancellationRequested() bool {
	return tok.cancelled.Load()
}

// Err returns ErrCancelled if cancellation has been requested.
func (tok *Token) Err() error {
	if tok.IsCancellationRequested() {
		return ErrCancelled
	}
	return nil
}

// Canceller hands out tokens for a sequence of overlapping operations. Each
// new token cancels the previous one. The zero value is ready to use.
type Canceller struct {
	mu      sync.Mutex
	current *Token
}

// Next cancels the token of the previous operation and returns a fresh one.
func (c *Canceller) Next() *Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		c.current.Cancel()
	}
	c.current = NewToken()
	return c.current
}

// Cancel cancels the token of the current operation, if any.
func (c *Canceller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		c.current.Cancel()
		c.current = nil
	}
}

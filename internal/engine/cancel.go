package engine

import (
	"context"
	"sync/atomic"
)

// Token is the cooperative cancellation flag for one run.
//
// The caller sets it with Cancel; the running algorithm polls IsCancelled at
// the start of every visible step. A token cannot be reset: create a fresh
// one for every run.
//
// Thread-safety: Cancel may be called from any goroutine, concurrently with
// IsCancelled.
type Token struct {
	cancelled atomic.Bool
}

// NewToken creates a token that is not cancelled.
func NewToken() *Token {
	return &Token{}
}

// Cancel requests that the run stop. Safe to call multiple times.
func (t *Token) Cancel() {
	t.cancelled.Store(true)
}

// IsCancelled reports whether Cancel has been called.
func (t *Token) IsCancelled() bool {
	return t.cancelled.Load()
}

// CancelOnDone cancels t when ctx is done. The returned function detaches
// the watch; it reports false if the token was already cancelled by ctx.
func (t *Token) CancelOnDone(ctx context.Context) (stop func() bool) {
	return context.AfterFunc(ctx, t.Cancel)
}

// Package ctxutil provides context utility functions.
package ctxutil

import (
	"context"
	"fmt"
)

// Canceled returns the context error if ctx is done, nil otherwise.
// Callers use it at the top of each network step so a SIGINT delivered while
// the hook is waiting skips the remaining requests.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}

// CanceledBefore is Canceled with the name of the skipped operation attached.
func CanceledBefore(ctx context.Context, op string) error {
	if err := Canceled(ctx); err != nil {
		return fmt.Errorf("%s skipped: %w", op, err)
	}
	return nil
}

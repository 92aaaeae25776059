// SPDX-License-Identifier: MPL-2.0

package samplegen

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Batches splits count rows into batches of at most size rows and calls fn
// with each batch length in order. A positive rowsPerSecond throttles the
// calls so no more than that many rows are handed out per second. The first
// error from fn or from waiting on ctx stops the loop.
func Batches(ctx context.Context, count int64, size int, rowsPerSecond float64, fn func(n int) error) error {
	if count <= 0 {
		return nil
	}
	size = max(size, 1)

	var limiter *rate.Limiter
	if rowsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(rowsPerSecond), size)
	}

	for done := int64(0); done < count; {
		n := int(min(int64(size), count-done))
		if limiter != nil {
			if err := limiter.WaitN(ctx, n); err != nil {
				return fmt.Errorf("throttle batch: %w", err)
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(n); err != nil {
			return err
		}
		done += int64(n)
	}
	return nil
}

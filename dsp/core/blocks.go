package core

import (
	"context"
	"fmt"
)

// ForEachBlock calls fn for consecutive frame ranges [start, end) covering
// [0, n), at most blockSize frames each. ctx is checked before every block;
// on cancellation ctx.Err() is returned and no further blocks run.
func ForEachBlock(ctx context.Context, n, blockSize int, fn func(start, end int) error) error {
	if blockSize <= 0 {
		return fmt.Errorf("%w: block size must be > 0: %d", ErrInvalidParameter, blockSize)
	}

	for start := 0; start < n; start += blockSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := fn(start, min(start+blockSize, n)); err != nil {
			return err
		}
	}

	return ctx.Err()
}

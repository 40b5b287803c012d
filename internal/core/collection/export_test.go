package collection

import "context"

// MoveAsync applies the move to the view and persists it in the background,
// so tests can observe the in-flight window. The channel yields exactly one
// value (nil on success) and is then closed.
func (c *OrderedCollection[T]) MoveAsync(ctx context.Context, from, to int) <-chan error {
	done := make(chan error, 1)
	pending, err := c.beginMove(ctx, atIndex[T](from), to)
	if err != nil || pending == nil {
		done <- err
		close(done)
		return done
	}
	go func() {
		done <- c.finishMove(ctx, pending)
		close(done)
	}()
	return done
}

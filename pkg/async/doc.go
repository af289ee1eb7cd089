// Package async provides a generic Future for running a blocking operation in the
// background and waiting for its result with an optional deadline.
//
// # Usage
//
//	future := async.Async(ctx, r.Body, func(ctx context.Context, body io.Reader) ([]byte, error) {
//		return io.ReadAll(body)
//	})
//
//	data, err := future.AwaitWithTimeout(3 * time.Second)
//	if errors.Is(err, async.ErrTimeout) {
//		// the read is abandoned, not aborted
//	}
//
// # Timeout Semantics
//
// AwaitWithTimeout races the future against a timer. When the timer fires first the caller
// gets ErrTimeout and the goroutine running the operation keeps going until the operation
// returns on its own. Its result is stored in the Future and can still be observed through
// Await or IsComplete, but nothing else happens with it.
//
// # Context Support
//
// The context passed to Async is checked before the operation starts; a cancelled context
// completes the future immediately with the context's error.
package async

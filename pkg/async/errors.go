package async

import "errors"

// ErrTimeout is returned by AwaitWithTimeout when the deadline elapses first.
var ErrTimeout = errors.New("async: operation timed out")

package cache

import "errors"

// errInvalidWatermarks is the message New panics with when the caller's
// Options violate 1 ≤ LowWatermark ≤ HighWatermark. Violating the
// watermark ordering is a programmer error, so New asserts rather than
// returning an error value.
var errInvalidWatermarks = errors.New("cache: watermarks must satisfy 1 <= LowWatermark <= HighWatermark")

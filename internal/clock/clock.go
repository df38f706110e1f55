package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now returns NowFunc() stripped of its monotonic clock reading, so values
// compare equal after a serialization round trip.
func Now() time.Time { return NowFunc().Round(0) }

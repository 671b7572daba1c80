package channels

import "time"

// ReceiveAll drains ch until it is closed, no message arrives within idle,
// or max messages have been received. A max of 0 means no limit.
func ReceiveAll[T any](ch <-chan T, idle time.Duration, max int) []T {
	var out []T
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, msg)
			if max > 0 && len(out) >= max {
				return out
			}
		case <-time.After(idle):
			return out
		}
	}
}

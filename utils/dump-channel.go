package utils

// DumpChannel drains a channel and discards everything. Used for
// subscriptions that must stay open so publishers never block, e.g.
// the feedback stream when persistence is disabled.
func DumpChannel[T any](ch <-chan T) {
	go func() {
		for range ch {
		}
	}()
}

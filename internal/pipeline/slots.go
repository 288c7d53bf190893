package pipeline

import "context"

// runSlots caps how many generations run at once. A nil *runSlots admits
// every caller.
type runSlots struct {
	ch chan struct{}
}

// newRunSlots returns nil when limit is not positive.
func newRunSlots(limit int) *runSlots {
	if limit <= 0 {
		return nil
	}
	return &runSlots{ch: make(chan struct{}, limit)}
}

// take waits for a free slot; the caller must give it back when it returns nil.
func (s *runSlots) take(ctx context.Context) error {
	if s == nil {
		return nil
	}
	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *runSlots) give() {
	if s == nil {
		return
	}
	<-s.ch
}

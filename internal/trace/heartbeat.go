package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits a driver-scope event at a fixed interval. A trace whose
// heartbeats keep coming without span ends points at a stuck check.
type Heartbeat struct {
	tracer Tracer
	every  time.Duration
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// StartHeartbeat starts ticking; it returns nil when tracing is off or
// every is not positive. Stop on a nil Heartbeat is a no-op.
func StartHeartbeat(tracer Tracer, every time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || every <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer: tracer,
		every:  every,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go h.loop()
	return h
}

func (h *Heartbeat) loop() {
	defer close(h.done)
	ticker := time.NewTicker(h.every)
	defer ticker.Stop()
	for beat := 1; ; beat++ {
		select {
		case now := <-ticker.C:
			h.tracer.Emit(&Event{
				Time:   now,
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    getGoroutineID(),
				Name:   "cito.alive",
				Detail: "beat " + strconv.Itoa(beat),
			})
		case <-h.stop:
			return
		}
	}
}

// Stop ends the ticker and waits for the last event to be emitted.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}

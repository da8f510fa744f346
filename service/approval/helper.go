package approval

import (
	"context"
	"fmt"
	"time"
)

// DecisionFunc decides what to do with a pending request.
// Return (true,  "") to approve
//
//	(false, "…") to reject with reason.
type DecisionFunc func(r *Request) (approved bool, reason string)

// AutoDecider starts a goroutine that polls ListPending and applies fn to
// every request.  It returns stop() – call it (or cancel ctx) to exit.
func AutoDecider(ctx context.Context,
	svc Service,
	fn DecisionFunc,
	interval time.Duration) (stop func()) {

	if interval <= 0 {
		interval = 20 * time.Millisecond
	}
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				reqs, _ := svc.ListPending(ctx)
				for _, r := range reqs {
					ok, reason := fn(r)
					_, _ = svc.Decide(ctx, r.ID, ok, reason)
				}
			}
		}
	}()
	return func() { close(done) }
}

// AutoApprove automatically approves all pending requests
func AutoApprove(ctx context.Context,
	svc Service,
	interval time.Duration) func() {
	return AutoDecider(ctx, svc,
		func(*Request) (bool, string) { return true, "" }, interval)
}

// AutoReject automatically rejects all pending requests with the given reason
func AutoReject(ctx context.Context,
	svc Service,
	reason string,
	interval time.Duration) func() {
	return AutoDecider(ctx, svc,
		func(*Request) (bool, string) { return false, reason }, interval)
}

// WaitForDecision consumes the service queue until a decision for the request
// identified by id is published or the timeout elapses.
//
// The queue has single-consumer semantics: events that do not match id are
// acked and dropped, so run at most one waiter per service. Observers that
// need the full event stream (approval UIs, audit sinks) should attach their
// own queue via the memory service's WithQueue option instead of sharing this
// one.
func WaitForDecision(ctx context.Context, svc Service, id string, timeout time.Duration) (*Decision, error) {
	if timeout <= 0 {
		timeout = time.Minute
	}
	wctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	queue := svc.Queue()
	for {
		msg, err := queue.Consume(wctx)
		if err != nil {
			return nil, fmt.Errorf("no decision for request %v: %w", id, err)
		}
		if msg == nil {
			continue
		}
		event := msg.T()
		_ = msg.Ack()
		if event.Topic != TopicDecisionCreated {
			continue
		}
		decision, ok := event.Data.(*Decision)
		if !ok || decision.ID != id {
			continue
		}
		return decision, nil
	}
}

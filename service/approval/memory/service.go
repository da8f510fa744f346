package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/toolgate/internal/clock"
	"github.com/viant/toolgate/internal/idgen"
	approval "github.com/viant/toolgate/service/approval"
	"github.com/viant/toolgate/service/messaging"
	qmem "github.com/viant/toolgate/service/messaging/memory"
	"github.com/viant/toolgate/service/store"
)

type service struct {
	// stores
	requests  store.Service[string, approval.Request]
	decisions store.Service[string, approval.Decision]

	// fan-out queue
	events messaging.Queue[approval.Event]

	// optional audit journal
	journal *approval.Journal
}

// key selectors – grab ID field
func reqKey(r *approval.Request) string  { return r.ID }
func decKey(d *approval.Decision) string { return d.ID }

func New(options ...Option) approval.Service {
	ret := &service{
		requests:  store.NewMemoryStore[string, approval.Request](reqKey),
		decisions: store.NewMemoryStore[string, approval.Decision](decKey),
		events:    qmem.NewQueue[approval.Event](qmem.DefaultConfig()),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

/* ---------------- store-backed operations ------------------------------ */

func (s *service) RequestApproval(ctx context.Context, r *approval.Request) error {
	if r == nil {
		return errors.New("invalid request")
	}

	// Ensure the request has a globally unique identifier.  If the caller did
	// not specify one we fall back to the tool call ID (unique within a
	// conversation) – this keeps the function generic and protects against
	// silent drops caused by empty IDs.
	if r.ID == "" {
		if r.CallID != "" {
			r.ID = r.CallID
		} else {
			r.ID = idgen.New()
		}
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = clock.Now()
	}

	// Idempotent save – overwrite any previous copy to handle re-submissions
	// gracefully.
	_ = s.requests.Save(ctx, r)
	_ = s.events.Publish(ctx, &approval.Event{Topic: approval.TopicRequestCreated, Data: r})
	s.journal.RequestCreated(ctx, r)
	return nil
}

func (s *service) ListPending(ctx context.Context) ([]*approval.Request, error) {
	all, err := s.requests.List(ctx)
	if err != nil {
		return nil, err
	}
	now := clock.Now()
	pending := make([]*approval.Request, 0, len(all))
	for _, r := range all {
		if d, _ := s.decisions.Load(ctx, r.ID); d != nil {
			continue
		}
		if r.Expired(now) {
			_ = s.requests.Delete(ctx, r.ID)
			_ = s.events.Publish(ctx, &approval.Event{Topic: approval.TopicRequestExpired, Data: r})
			continue
		}
		pending = append(pending, r)
	}
	return pending, nil
}

func (s *service) Decide(ctx context.Context, id string,
	ok bool, reason string) (*approval.Decision, error) {

	if id == "" {
		return nil, errors.New("empty id")
	}
	request, _ := s.requests.Load(ctx, id)
	if request == nil {
		return nil, fmt.Errorf("request %s not found", id)
	}
	if d, _ := s.decisions.Load(ctx, id); d != nil {
		return nil, fmt.Errorf("already decided")
	}
	if request.Expired(clock.Now()) {
		_ = s.requests.Delete(ctx, id)
		_ = s.events.Publish(ctx, &approval.Event{Topic: approval.TopicRequestExpired, Data: request})
		return nil, fmt.Errorf("request %s expired", id)
	}

	d := &approval.Decision{
		ID:        id,
		Approved:  ok,
		Reason:    reason,
		DecidedAt: clock.Now(),
	}
	_ = s.decisions.Save(ctx, d)
	_ = s.events.Publish(ctx, &approval.Event{Topic: approval.TopicDecisionCreated, Data: d})
	s.journal.DecisionCreated(ctx, request, d)
	return d, nil
}

/* ---------------- broker-style ----------------------------------------- */

func (s *service) Queue() messaging.Queue[approval.Event] { return s.events }

var _ approval.Service = (*service)(nil)

package memory

import (
	approval "github.com/viant/toolgate/service/approval"
	"github.com/viant/toolgate/service/messaging"
)

type Option func(*service)

// WithJournal attaches an audit journal recording every request and decision.
func WithJournal(journal *approval.Journal) Option {
	return func(s *service) { s.journal = journal }
}

// WithQueue overrides the fan-out event queue.
func WithQueue(queue messaging.Queue[approval.Event]) Option {
	return func(s *service) { s.events = queue }
}

package toolgate

import (
	"context"
	"time"

	"github.com/viant/toolgate/extension"
	"github.com/viant/toolgate/model/types"
	"github.com/viant/toolgate/policy"
	"github.com/viant/toolgate/service/action/lint"
	"github.com/viant/toolgate/service/action/system/exec"
	"github.com/viant/toolgate/service/action/weather"
	"github.com/viant/toolgate/service/approval"
	amemory "github.com/viant/toolgate/service/approval/memory"
	qmemory "github.com/viant/toolgate/service/messaging/memory"
	"github.com/viant/toolgate/service/executor"
	"github.com/viant/x"
)

// Service is the root façade: a tool registry with a policy-gated executor
// and a human-in-the-loop approval processor in front of it.
type Service struct {
	config            *Config
	tools             *extension.Tools
	extensionTypes    []*x.Type
	extensionServices []types.Service
	executor          executor.Service
	executorOptions   []executor.Option
	approvalService   approval.Service
	processor         *approval.Processor
	gate              *policy.Policy
	execService       *exec.Service
}

func (s *Service) init(ctx context.Context, options []Option) error {
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	s.ensureBaseSetup()

	s.tools = extension.NewTools(s.extensionTypes...)
	s.tools.Register(weather.New(&s.config.Weather))

	var lintOptions []lint.EngineOption
	if s.config.Lint.BundleURL != "" {
		lintOptions = append(lintOptions, lint.WithBundleURL(s.config.Lint.BundleURL))
	}
	lintService, err := lint.New(ctx, lintOptions...)
	if err != nil {
		return err
	}
	s.tools.Register(lintService)

	s.execService = exec.New()
	s.tools.Register(s.execService)
	for _, service := range s.extensionServices {
		s.tools.Register(service)
	}

	executorOptions := append(
		[]executor.Option{executor.WithApprovalService(s.approvalService)},
		s.executorOptions...)
	s.executor = executor.New(s.tools, executorOptions...)

	processorOptions := []approval.ProcessorOption{
		approval.WithService(s.approvalService),
	}
	if s.gate != nil {
		processorOptions = append(processorOptions, approval.WithGate(s.gate))
	}
	if s.config.Approval.DefaultTTLMs > 0 {
		processorOptions = append(processorOptions,
			approval.WithRequestTTL(time.Duration(s.config.Approval.DefaultTTLMs)*time.Millisecond))
	}
	s.processor = approval.NewProcessor(s.executor, processorOptions...)
	return nil
}

func (s *Service) ensureBaseSetup() {
	if s.approvalService == nil {
		var approvalOptions []amemory.Option
		if s.config.Approval.JournalURL != "" {
			approvalOptions = append(approvalOptions, amemory.WithJournal(approval.NewJournal(s.config.Approval.JournalURL)))
		}
		if s.config.Approval.QueueBuffer > 0 {
			queueConfig := qmemory.DefaultConfig()
			queueConfig.QueueBuffer = s.config.Approval.QueueBuffer
			approvalOptions = append(approvalOptions, amemory.WithQueue(qmemory.NewQueue[approval.Event](queueConfig)))
		}
		s.approvalService = amemory.New(approvalOptions...)
	}
	if s.gate == nil {
		s.gate = &policy.Policy{Mode: policy.ModeAsk}
	}
}

// Tools exposes the tool registry
func (s *Service) Tools() *extension.Tools {
	return s.tools
}

// Executor exposes the policy-gated tool executor
func (s *Service) Executor() executor.Service {
	return s.executor
}

// Approval exposes the approval bookkeeping service
func (s *Service) Approval() approval.Service {
	return s.approvalService
}

// Processor exposes the conversation approval processor
func (s *Service) Processor() *approval.Processor {
	return s.processor
}

// Policy exposes the approval gate policy
func (s *Service) Policy() *policy.Policy {
	return s.gate
}

// RegisterExtensionTypes registers additional Go types for tool IO conversion
func (s *Service) RegisterExtensionTypes(types ...*x.Type) {
	for i := range types {
		s.tools.Types().Register(types[i])
	}
}

// RegisterExtensionServices registers additional tool services
func (s *Service) RegisterExtensionServices(services ...types.Service) {
	for i := range services {
		s.tools.Register(services[i])
	}
}

// Close releases resources held by the registered tool services
func (s *Service) Close(ctx context.Context) error {
	if s.execService != nil {
		return s.execService.Close(ctx)
	}
	return nil
}

// New creates a toolgate service with the built-in weather, lint and
// system/exec tools registered.
func New(ctx context.Context, options ...Option) (*Service, error) {
	ret := &Service{}
	if err := ret.init(ctx, options); err != nil {
		return nil, err
	}
	return ret, nil
}

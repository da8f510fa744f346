package lint

import (
	"context"
)

// Service exposes lint and format operations backed by the embedded engine
type Service struct {
	engine *Engine
}

// New creates a lint service with the embedded bundle
func New(ctx context.Context, options ...EngineOption) (*Service, error) {
	engine, err := NewEngine(ctx, options...)
	if err != nil {
		return nil, err
	}
	return &Service{engine: engine}, nil
}

// Check lints the supplied source
func (s *Service) Check(ctx context.Context, input *CheckInput, output *CheckOutput) error {
	diagnostics, err := s.engine.Check(input.Source, input.Path, input.Options)
	if err != nil {
		return err
	}
	output.Diagnostics = diagnostics
	output.Count = len(diagnostics)
	return nil
}

// Format rewrites the supplied source and reports the rewrite as a diff
func (s *Service) Format(ctx context.Context, input *FormatInput, output *FormatOutput) error {
	formatted, err := s.engine.Format(input.Source, input.Options)
	if err != nil {
		return err
	}
	output.Formatted = formatted
	output.Changed = formatted != input.Source
	if !output.Changed {
		output.Stats = &DiffStats{}
		return nil
	}
	diff, stats, err := generateDiff(input.Path, input.Source, formatted)
	if err != nil {
		return err
	}
	output.Diff = diff
	output.Stats = stats
	return nil
}

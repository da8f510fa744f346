package lint

import (
	"context"
	"reflect"
	"strings"

	"github.com/viant/toolgate/model/types"
)

const Name = "lint"

func (s *Service) Name() string {
	return Name
}

func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "check",
			Description: "Lints source text and reports diagnostics with rule, message, line, column and severity.",
			Input:       reflect.TypeOf(&CheckInput{}),
			Output:      reflect.TypeOf(&CheckOutput{}),
		},
		{
			Name:        "format",
			Description: "Formats source text and reports the rewrite as a unified diff with stats.",
			Input:       reflect.TypeOf(&FormatInput{}),
			Output:      reflect.TypeOf(&FormatOutput{}),
		},
	}
}

func (s *Service) check(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*CheckInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*CheckOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Check(ctx, input, output)
}

func (s *Service) format(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*FormatInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*FormatOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Format(ctx, input, output)
}

// Method returns method by Name
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "check":
		return s.check, nil
	case "format":
		return s.format, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

package lint

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/dop251/goja"
	"github.com/viant/afs"
)

//go:embed engine.js
var engineJS string

// Engine runs the embedded linter/formatter bundle. The bundle is compiled
// once; each call gets a fresh VM so no state leaks between invocations.
type Engine struct {
	program *goja.Program
}

// EngineOption customises engine construction
type EngineOption func(*engineOptions)

type engineOptions struct {
	bundleURL string
}

// WithBundleURL loads an alternative bundle from any afs-supported URL
func WithBundleURL(URL string) EngineOption {
	return func(o *engineOptions) {
		o.bundleURL = URL
	}
}

// NewEngine compiles the linter/formatter bundle
func NewEngine(ctx context.Context, options ...EngineOption) (*Engine, error) {
	opts := &engineOptions{}
	for _, option := range options {
		option(opts)
	}
	source := engineJS
	if opts.bundleURL != "" {
		fs := afs.New()
		data, err := fs.DownloadWithURL(ctx, opts.bundleURL)
		if err != nil {
			return nil, fmt.Errorf("failed to load bundle from %s: %w", opts.bundleURL, err)
		}
		source = string(data)
	}
	program, err := goja.Compile("engine.js", source, false)
	if err != nil {
		return nil, fmt.Errorf("failed to compile bundle: %w", err)
	}
	return &Engine{program: program}, nil
}

// Check runs lintCheck over the supplied source; path, when set, is stamped
// onto every reported diagnostic.
func (e *Engine) Check(source, path string, options *Options) ([]*Diagnostic, error) {
	var response struct {
		Diagnostics []*Diagnostic `json:"diagnostics"`
	}
	if err := e.call("lintCheck", &engineRequest{Source: source, Path: path, Options: options}, &response); err != nil {
		return nil, err
	}
	return response.Diagnostics, nil
}

// Format runs lintFormat over the supplied source
func (e *Engine) Format(source string, options *Options) (string, error) {
	var response struct {
		Formatted string `json:"formatted"`
	}
	if err := e.call("lintFormat", &engineRequest{Source: source, Options: options}, &response); err != nil {
		return "", err
	}
	return response.Formatted, nil
}

type engineRequest struct {
	Source  string   `json:"source"`
	Path    string   `json:"path,omitempty"`
	Options *Options `json:"options,omitempty"`
}

func (e *Engine) call(function string, request *engineRequest, result interface{}) error {
	vm := goja.New()
	if _, err := vm.RunProgram(e.program); err != nil {
		return fmt.Errorf("failed to evaluate bundle: %w", err)
	}
	payload, err := json.Marshal(request)
	if err != nil {
		return err
	}
	value, err := vm.RunString(fmt.Sprintf("JSON.stringify(%s(%s))", function, payload))
	if err != nil {
		return fmt.Errorf("%s failed: %w", function, err)
	}
	if err := json.Unmarshal([]byte(value.String()), result); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", function, err)
	}
	return nil
}

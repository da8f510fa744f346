package toolgate

import (
	"fmt"

	"github.com/viant/toolgate/service/action/weather"
)

// Config is a serialisable representation of the service configuration. It can
// be populated from JSON or YAML. The zero-value is useful - all nested fields
// inherit their package defaults.
type Config struct {
	Approval ApprovalConfig `json:"approval" yaml:"approval"`
	Weather  weather.Config `json:"weather" yaml:"weather"`
	Lint     LintConfig     `json:"lint" yaml:"lint"`
}

type ApprovalConfig struct {
	// QueueBuffer sizes the approval event queue
	QueueBuffer int `json:"queueBuffer" yaml:"queueBuffer"`
	// DefaultTTLMs expires undecided approval requests; zero means no expiry
	DefaultTTLMs int `json:"defaultTTLMs" yaml:"defaultTTLMs"`
	// JournalURL enables the audit journal when set (any afs-supported URL)
	JournalURL string `json:"journalURL" yaml:"journalURL"`
}

type LintConfig struct {
	// BundleURL overrides the embedded linter/formatter bundle
	BundleURL string `json:"bundleURL" yaml:"bundleURL"`
}

// DefaultConfig returns a Config populated with the package defaults. Callers
// may modify the returned struct before passing it to New via WithConfig.
func DefaultConfig() *Config {
	return &Config{
		Approval: ApprovalConfig{
			QueueBuffer: 100,
		},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Approval.QueueBuffer < 0 {
		return fmt.Errorf("approval.queueBuffer must be >= 0")
	}
	if c.Approval.DefaultTTLMs < 0 {
		return fmt.Errorf("approval.defaultTTLMs must be >= 0")
	}
	return nil
}

package lint

// Options controls lint and format behaviour
type Options struct {
	MaxLineLength int `json:"maxLineLength,omitempty" description:"max allowed line length (default 100)"`
	TabSize       int `json:"tabSize,omitempty" description:"spaces per tab when formatting (default 4)"`
}

// Diagnostic represents a single lint finding
type Diagnostic struct {
	Rule     string `json:"rule"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
}

// DiffStats summarises a formatting rewrite
type DiffStats struct {
	Hunks      int `json:"hunks"`
	Insertions int `json:"insertions"`
	Deletions  int `json:"deletions"`
}

// CheckInput defines parameters for the check method
type CheckInput struct {
	Source  string   `json:"source" required:"true" description:"source text to lint"`
	Path    string   `json:"path,omitempty" description:"file path used in reported locations"`
	Options *Options `json:"options,omitempty" description:"lint options"`
}

// CheckOutput contains lint diagnostics
type CheckOutput struct {
	Diagnostics []*Diagnostic `json:"diagnostics,omitempty" description:"lint findings ordered by position"`
	Count       int           `json:"count" description:"number of findings"`
}

// FormatInput defines parameters for the format method
type FormatInput struct {
	Source  string   `json:"source" required:"true" description:"source text to format"`
	Path    string   `json:"path,omitempty" description:"file path used in the diff header"`
	Options *Options `json:"options,omitempty" description:"format options"`
}

// FormatOutput contains the formatted source and the rewrite diff
type FormatOutput struct {
	Formatted string     `json:"formatted" description:"formatted source"`
	Changed   bool       `json:"changed" description:"whether formatting changed the source"`
	Diff      string     `json:"diff,omitempty" description:"unified diff of the rewrite"`
	Stats     *DiffStats `json:"stats,omitempty" description:"diff statistics"`
}

package lint

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	sgdiff "github.com/sourcegraph/go-diff/diff"
)

// generateDiff produces a unified diff of the rewrite plus parsed stats
func generateDiff(path, original, formatted string) (string, *DiffStats, error) {
	if path == "" {
		path = "source"
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(formatted),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	}
	patch, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", nil, fmt.Errorf("diff generation: %w", err)
	}
	if patch == "" {
		return "", &DiffStats{}, nil
	}

	fileDiff, err := sgdiff.ParseFileDiff([]byte(patch))
	if err != nil {
		return "", nil, fmt.Errorf("diff parse: %w", err)
	}
	stats := &DiffStats{Hunks: len(fileDiff.Hunks)}
	for _, hunk := range fileDiff.Hunks {
		for _, line := range strings.Split(string(hunk.Body), "\n") {
			switch {
			case strings.HasPrefix(line, "+"):
				stats.Insertions++
			case strings.HasPrefix(line, "-"):
				stats.Deletions++
			}
		}
	}
	return patch, stats, nil
}

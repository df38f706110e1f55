package versioned

import (
	"bytes"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	sgdiff "github.com/sourcegraph/go-diff/diff"
	"gopkg.in/yaml.v3"
)

// Diff renders both record values as YAML and returns their unified diff,
// or "" when they render identically.
func Diff[P any](from, to *Record[P]) (string, error) {
	fromText, err := yaml.Marshal(from.Value)
	if err != nil {
		return "", fmt.Errorf("failed to render %v: %w", from.Loc, err)
	}
	toText, err := yaml.Marshal(to.Value)
	if err != nil {
		return "", fmt.Errorf("failed to render %v: %w", to.Loc, err)
	}
	if string(fromText) == string(toText) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(fromText)),
		B:        difflib.SplitLines(string(toText)),
		FromFile: from.Loc.String(),
		ToFile:   to.Loc.String(),
		Context:  3,
	})
}

// DiffStats summarises a unified diff produced by Diff.
type DiffStats struct {
	Hunks   int `json:"hunks" yaml:"hunks"`
	Added   int `json:"added" yaml:"added"`
	Removed int `json:"removed" yaml:"removed"`
}

// Changed reports whether the diff carries any line change.
func (s DiffStats) Changed() bool { return s.Added+s.Removed > 0 }

// Stats parses a unified diff and counts its hunks and changed lines.
func Stats(patch string) (DiffStats, error) {
	var ret DiffStats
	if patch == "" {
		return ret, nil
	}
	fd, err := sgdiff.ParseFileDiff([]byte(patch))
	if err != nil {
		return ret, fmt.Errorf("failed to parse diff: %w", err)
	}
	for _, hunk := range fd.Hunks {
		ret.Hunks++
		for _, line := range bytes.Split(hunk.Body, []byte{'\n'}) {
			if len(line) == 0 {
				continue
			}
			switch line[0] {
			case '+':
				ret.Added++
			case '-':
				ret.Removed++
			}
		}
	}
	return ret, nil
}

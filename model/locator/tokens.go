package locator

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const separator = "@"

const (
	codeCode = iota
	separatorCode
	versionCode
)

var (
	codeToken      = parsly.NewToken(codeCode, "Code", &codeMatcher{})
	separatorToken = parsly.NewToken(separatorCode, separator, matcher.NewByte(separator[0]))
	versionToken   = parsly.NewToken(versionCode, "Version", &versionMatcher{})
)

// codeMatcher matches everything up to the separator.
type codeMatcher struct{}

func (m *codeMatcher) Match(cursor *parsly.Cursor) int {
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if cursor.Input[i] == separator[0] {
			break
		}
		matched++
	}
	return matched
}

// versionMatcher matches a run of decimal digits.
type versionMatcher struct{}

func (m *versionMatcher) Match(cursor *parsly.Cursor) int {
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if c := cursor.Input[i]; c < '0' || c > '9' {
			break
		}
		matched++
	}
	return matched
}

package locator

import (
	"strconv"

	"github.com/viant/parsly"
	"github.com/viant/versionary/model/types"
	"github.com/viant/versionary/model/uid"
)

// Parse parses the text form produced by String: code@version.
func Parse(text string) (Locator, error) {
	cursor := parsly.NewCursor("", []byte(text), 0)

	matched := cursor.MatchOne(codeToken)
	if matched.Code != codeToken.Code {
		return Locator{}, types.NewInvalidArgumentError("locator %q: %v", text, cursor.NewError(codeToken))
	}
	code := matched.Text(cursor)

	matched = cursor.MatchOne(separatorToken)
	if matched.Code != separatorToken.Code {
		return Locator{}, types.NewInvalidArgumentError("locator %q: %v", text, cursor.NewError(separatorToken))
	}

	matched = cursor.MatchOne(versionToken)
	if matched.Code != versionToken.Code {
		return Locator{}, types.NewInvalidArgumentError("locator %q: %v", text, cursor.NewError(versionToken))
	}
	if cursor.Pos < cursor.InputSize {
		return Locator{}, types.NewInvalidArgumentError("locator %q: unexpected trailing %q", text, text[cursor.Pos:])
	}
	version, err := strconv.Atoi(matched.Text(cursor))
	if err != nil {
		return Locator{}, types.NewInvalidArgumentError("locator %q: %v", text, err)
	}

	id, err := uid.Parse(code)
	if err != nil {
		return Locator{}, err
	}
	return New(id, version)
}

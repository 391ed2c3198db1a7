package workload

import (
	"github.com/viant/parsly"
)

// Token codes
const (
	separatorCode = iota + 1
	digitsCode
)

// Token definitions
var (
	separatorToken = parsly.NewToken(separatorCode, "Separator", newSeparatorMatcher())
	digitsToken    = parsly.NewToken(digitsCode, "Integer", newDigitsMatcher())
)

func newSeparatorMatcher() parsly.Matcher {
	return &separatorMatcher{}
}

func newDigitsMatcher() parsly.Matcher {
	return &digitsMatcher{}
}

// separatorMatcher matches a run of non-digit bytes. Any such byte,
// whitespace and punctuation alike, separates two integers.
type separatorMatcher struct{}

func (m *separatorMatcher) Match(cursor *parsly.Cursor) int {
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if isDigit(cursor.Input[i]) {
			break
		}
		matched++
	}
	return matched
}

// digitsMatcher matches a run of decimal digits.
type digitsMatcher struct{}

func (m *digitsMatcher) Match(cursor *parsly.Cursor) int {
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if !isDigit(cursor.Input[i]) {
			break
		}
		matched++
	}
	return matched
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

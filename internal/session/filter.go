package session

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Allows reports whether r may be typed at rune offset pos of a buffer
// holding value.
func (f Filter) Allows(value string, pos int, r rune) bool {
	switch f {
	case FilterNone:
		return true
	case FilterMoney:
		if r != '.' && !unicode.IsDigit(r) {
			return false
		}
		return moneyShaped(insertRune(value, pos, r))
	case FilterAlphabetic:
		return unicode.IsLetter(r) || r == ' '
	case FilterNoSpace:
		return r != ' '
	case FilterNumeric:
		return unicode.IsDigit(r)
	}
	return false
}

func insertRune(value string, pos int, r rune) string {
	runes := []rune(value)
	pos = max(0, min(pos, len(runes)))
	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[:pos]...)
	out = append(out, r)
	return string(append(out, runes[pos:]...))
}

// moneyShaped accepts digits with at most one dot and two decimals.
func moneyShaped(s string) bool {
	whole, frac, found := strings.Cut(s, ".")
	if found && (strings.Contains(frac, ".") || len(frac) > 2) {
		return false
	}
	return strings.IndexFunc(whole+frac, func(r rune) bool { return !unicode.IsDigit(r) }) < 0
}

// Submitted field limits, in characters.
const (
	maxUsername      = 32
	maxPassword      = 64
	maxID            = 10
	maxTransactionID = 24
	maxWeight        = 8
	maxContent       = 60
	maxURL           = 200
)

// fieldExcessError opens the FieldExcess popup instead of DisplayMsg.
type fieldExcessError struct {
	Field string
	Max   int
}

func (e *fieldExcessError) Error() string {
	return fmt.Sprintf("%s cannot be longer than %d characters", e.Field, e.Max)
}

func checkLen(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return &fieldExcessError{Field: field, Max: max}
	}
	return nil
}

package lexer

import (
	"strconv"
	"unicode/utf8"
)

func quoteRune(r rune) string {
	if r == utf8.RuneError {
		return "(invalid UTF-8)"
	}
	return strconv.QuoteRune(r)
}

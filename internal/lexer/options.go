package lexer

import (
	"rpncalc/internal/diag"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибка только возвращается
}

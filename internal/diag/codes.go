package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001

	// Синтаксические (конвертер)
	SynInfo            Code = 2000
	SynUnbalancedParen Code = 2006
	SynUnexpectedToken Code = 2007

	// Вычисление
	EvalInfo           Code = 3000
	EvalDivisionByZero Code = 3001
	EvalInternal       Code = 3002

	// Ввод-вывод и конфигурация
	IOLoadFileError Code = 4001
	IOConfigError   Code = 4002
)

var codeTitles = map[Code]string{
	UnknownCode:        "Unknown error",
	LexInfo:            "Lexical information",
	LexUnknownChar:     "Unrecognized character",
	SynInfo:            "Syntax information",
	SynUnbalancedParen: "Unbalanced parentheses",
	SynUnexpectedToken: "Unexpected token",
	EvalInfo:           "Evaluation information",
	EvalDivisionByZero: "Division by zero",
	EvalInternal:       "Internal evaluation error",
	IOLoadFileError:    "I/O load file error",
	IOConfigError:      "Configuration error",
}

// ID returns the stable textual identifier, e.g. LEX1001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EVAL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if title, ok := codeTitles[c]; ok {
		return title
	}
	return codeTitles[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

package lexer

import "rpncalc/internal/token"

// LexState is a state of the tokenizer automaton. Scanning states keep the
// machine running; accept states end the current token.
type LexState uint8

const (
	// StateStart is the between-tokens state.
	StateStart LexState = iota
	// StateNumber is inside a run of digits.
	StateNumber
	// StateSpace is inside a run of whitespace.
	StateSpace

	AcceptNumber
	AcceptWhitespace
	AcceptPlus
	AcceptMinus
	AcceptStar
	AcceptSlash
	AcceptLParen
	AcceptRParen

	// StateEnd: the sentinel was reached between tokens.
	StateEnd
	// StateReject: the next character has no category.
	StateReject

	numScanStates = StateSpace + 1
)

var stateNames = [...]string{
	StateStart:       "Start",
	StateNumber:      "Number",
	StateSpace:       "Space",
	AcceptNumber:     "AcceptNumber",
	AcceptWhitespace: "AcceptWhitespace",
	AcceptPlus:       "AcceptPlus",
	AcceptMinus:      "AcceptMinus",
	AcceptStar:       "AcceptStar",
	AcceptSlash:      "AcceptSlash",
	AcceptLParen:     "AcceptLParen",
	AcceptRParen:     "AcceptRParen",
	StateEnd:         "End",
	StateReject:      "Reject",
}

func (s LexState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "LexState(?)"
}

// Scanning reports whether the machine keeps reading in this state.
func (s LexState) Scanning() bool {
	return s < numScanStates
}

// Accepting reports whether the state completes a token.
func (s LexState) Accepting() bool {
	return s >= AcceptNumber && s <= AcceptRParen
}

// PushesBack reports whether the character that led into s belongs to the
// next token. Numbers and whitespace runs only end when the machine has
// already looked one character past them.
func (s LexState) PushesBack() bool {
	return s == AcceptNumber || s == AcceptWhitespace
}

// acceptKinds decouples accept states from token kinds.
var acceptKinds = map[LexState]token.Kind{
	AcceptNumber:     token.Number,
	AcceptWhitespace: token.Whitespace,
	AcceptPlus:       token.Plus,
	AcceptMinus:      token.Minus,
	AcceptStar:       token.Star,
	AcceptSlash:      token.Slash,
	AcceptLParen:     token.LParen,
	AcceptRParen:     token.RParen,
}

// Kind returns the token kind produced by an accept state.
func (s LexState) Kind() token.Kind {
	if k, ok := acceptKinds[s]; ok {
		return k
	}
	return token.Invalid
}

// category classifies the next input character.
type category uint8

const (
	catOther category = iota // no category: lexing error
	catDigit
	catSpace
	catPlus
	catMinus
	catStar
	catSlash
	catLParen
	catRParen
	catEnd // end-of-input sentinel
	numCategories
)

func categorize(b byte) category {
	switch {
	case b >= '0' && b <= '9':
		return catDigit
	case b == ' ', b == '\t', b == '\n', b == '\r', b == '\v', b == '\f':
		return catSpace
	}
	switch b {
	case '+':
		return catPlus
	case '-':
		return catMinus
	case '*':
		return catStar
	case '/':
		return catSlash
	case '(':
		return catLParen
	case ')':
		return catRParen
	}
	return catOther
}

// transitions[state][category]: таблица переходов автомата.
var transitions = [numScanStates][numCategories]LexState{
	StateStart: {
		catOther:  StateReject,
		catDigit:  StateNumber,
		catSpace:  StateSpace,
		catPlus:   AcceptPlus,
		catMinus:  AcceptMinus,
		catStar:   AcceptStar,
		catSlash:  AcceptSlash,
		catLParen: AcceptLParen,
		catRParen: AcceptRParen,
		catEnd:    StateEnd,
	},
	StateNumber: {
		catOther:  StateReject,
		catDigit:  StateNumber,
		catSpace:  AcceptNumber,
		catPlus:   AcceptNumber,
		catMinus:  AcceptNumber,
		catStar:   AcceptNumber,
		catSlash:  AcceptNumber,
		catLParen: AcceptNumber,
		catRParen: AcceptNumber,
		catEnd:    AcceptNumber,
	},
	StateSpace: {
		catOther:  StateReject,
		catDigit:  AcceptWhitespace,
		catSpace:  StateSpace,
		catPlus:   AcceptWhitespace,
		catMinus:  AcceptWhitespace,
		catStar:   AcceptWhitespace,
		catSlash:  AcceptWhitespace,
		catLParen: AcceptWhitespace,
		catRParen: AcceptWhitespace,
		catEnd:    AcceptWhitespace,
	},
}

func nextState(s LexState, c category) LexState {
	if !s.Scanning() {
		return s
	}
	return transitions[s][c]
}

package token

// Kind represents the category of an expression token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the expression.
	EOF
	// Whitespace is a run of space-like characters; dropped before conversion.
	Whitespace

	// Number represents a non-negative integer literal.
	Number

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Whitespace: "Whitespace",
	Number:     "Number",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	LParen:     "LParen",
	RParen:     "RParen",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Symbol returns the single-character spelling of operator and parenthesis kinds.
func (k Kind) Symbol() string {
	switch k {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case LParen:
		return "("
	case RParen:
		return ")"
	default:
		return ""
	}
}

package token

import "strings"

// Kind represents the kind of a token in the SDL scanner.
type Kind string

const (
	// Special tokens
	ILLEGAL Kind = "ILLEGAL" // Unknown character
	EOF     Kind = "EOF"     // End of input

	// Content tokens
	IDENT   Kind = "IDENT"   // Identifiers (field names, type names, etc.)
	KEYWORD Kind = "KEYWORD" // Reserved SDL words (type, enum, union, ...)
	NUMBER  Kind = "NUMBER"  // Numeric literals (default values)
	STRING  Kind = "STRING"  // String and block-string literals
	PUNCT   Kind = "PUNCT"   // Single punctuation characters

	// Trivia tokens. Preserved so every byte of the source maps to
	// exactly one token span.
	COMMENT    Kind = "COMMENT"    // '#' to end of line
	WHITESPACE Kind = "WHITESPACE" // Runs of spaces, tabs, newlines
)

// keywords lists the reserved words of the schema definition language.
var keywords = map[string]bool{
	"type":         true,
	"interface":    true,
	"enum":         true,
	"union":        true,
	"input":        true,
	"scalar":       true,
	"implements":   true,
	"extend":       true,
	"schema":       true,
	"directive":    true,
	"on":           true,
	"query":        true,
	"mutation":     true,
	"subscription": true,
	"true":         true,
	"false":        true,
	"null":         true,
}

// LookupIdent returns KEYWORD for reserved words and IDENT otherwise.
func LookupIdent(literal string) Kind {
	if keywords[literal] {
		return KEYWORD
	}
	return IDENT
}

// Token represents a single positioned lexeme in the SDL source.
// Start and End are byte offsets into the source that produced it,
// with End exclusive. Line and Column are 1-based.
type Token struct {
	Kind   Kind   // The kind of the token
	Text   string // The raw source slice, quotes and markers included
	Start  int    // Byte offset of the first character
	End    int    // Byte offset one past the last character
	Line   int    // 1-based line of Start
	Column int    // 1-based column of Start, counted in bytes
}

// Contains reports whether the byte offset falls inside the token's span.
func (t Token) Contains(offset int) bool {
	return offset >= t.Start && offset < t.End
}

// Is reports whether the token is the given punctuation mark.
func (t Token) Is(punct string) bool {
	return t.Kind == PUNCT && t.Text == punct
}

// IsKeyword reports whether the token is the given reserved word.
func (t Token) IsKeyword(word string) bool {
	return t.Kind == KEYWORD && t.Text == word
}

// IsTrivia reports whether the token carries no syntactic content.
func (t Token) IsTrivia() bool {
	return t.Kind == WHITESPACE || t.Kind == COMMENT
}

// StringValue returns the content of a STRING token with its quote or
// block-quote markers stripped. Unterminated literals keep whatever
// content ran to end of input.
func (t Token) StringValue() string {
	s := t.Text
	if strings.HasPrefix(s, `"""`) {
		s = s[3:]
		s = strings.TrimSuffix(s, `"""`)
		return strings.TrimSpace(s)
	}
	if strings.HasPrefix(s, `"`) {
		s = s[1:]
		s = strings.TrimSuffix(s, `"`)
		return s
	}
	return s
}

// CommentValue returns the content of a COMMENT token without the
// leading '#' and surrounding whitespace.
func (t Token) CommentValue() string {
	return strings.TrimSpace(strings.TrimPrefix(t.Text, "#"))
}

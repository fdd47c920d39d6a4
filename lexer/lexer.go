package lexer

import (
	"unicode"

	"github.com/Protocol-Lattice/schemalens/token"
)

// Scanner tokenizes SDL source text. It is total: any input, including
// mid-edit invalid text, produces a token stream, never an error.
// Whitespace and comments are emitted as tokens so every byte of the
// source belongs to exactly one token span.
type Scanner struct {
	input        string // The input string
	position     int    // Current position in input (points to current char)
	readPosition int    // Next reading position (after current char)
	ch           byte   // Current char under examination
	line         int    // 1-based line of the current char
	lineStart    int    // Offset of the first char of the current line
}

// New creates a new Scanner for the given input string.
func New(input string) *Scanner {
	l := &Scanner{input: input, line: 1}
	l.readChar()
	return l
}

// Scan tokenizes the whole input in one forward pass. The returned
// tokens are ordered, non-overlapping, and cover the input exactly.
// The trailing EOF token is not included.
func Scan(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

// readChar advances the scanner to the next character.
func (l *Scanner) readChar() {
	if l.readPosition > l.position && l.position < len(l.input) && l.input[l.position] == '\n' {
		l.line++
		l.lineStart = l.readPosition
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII 0 signifies end-of-input
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// peekChar returns the next character without advancing.
func (l *Scanner) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// NextToken returns the next token from the input.
func (l *Scanner) NextToken() token.Token {
	start := l.position
	line := l.line
	column := l.position - l.lineStart + 1

	mk := func(kind token.Kind) token.Token {
		return token.Token{
			Kind:   kind,
			Text:   l.input[start:l.position],
			Start:  start,
			End:    l.position,
			Line:   line,
			Column: column,
		}
	}

	if l.position >= len(l.input) {
		return token.Token{Kind: token.EOF, Start: start, End: start, Line: line, Column: column}
	}

	switch {
	case isWhitespace(l.ch):
		for isWhitespace(l.ch) && l.position < len(l.input) {
			l.readChar()
		}
		return mk(token.WHITESPACE)
	case l.ch == '#':
		for l.ch != '\n' && l.position < len(l.input) {
			l.readChar()
		}
		return mk(token.COMMENT)
	case l.ch == '"':
		l.readString()
		return mk(token.STRING)
	case isLetter(l.ch):
		l.readIdentifier()
		tok := mk(token.IDENT)
		tok.Kind = token.LookupIdent(tok.Text)
		return tok
	case isDigit(l.ch) || (l.ch == '-' && isDigit(l.peekChar())):
		l.readNumber()
		return mk(token.NUMBER)
	case isPunct(l.ch):
		l.readChar()
		return mk(token.PUNCT)
	default:
		l.readChar()
		return mk(token.ILLEGAL)
	}
}

// readString consumes a string literal, either a regular `"..."` form
// or a block `"""..."""` form. Unterminated literals run to the end of
// the input instead of failing.
func (l *Scanner) readString() {
	if l.peekChar() == '"' && l.readPosition+1 < len(l.input) && l.input[l.readPosition+1] == '"' {
		// Block string: consume the opening quotes, then scan for the
		// closing triple.
		l.readChar()
		l.readChar()
		l.readChar()
		for l.position < len(l.input) {
			if l.ch == '"' && l.peekChar() == '"' &&
				l.readPosition+1 < len(l.input) && l.input[l.readPosition+1] == '"' {
				l.readChar()
				l.readChar()
				l.readChar()
				return
			}
			l.readChar()
		}
		return
	}
	// Regular string. Backslash escapes the next character.
	l.readChar()
	for l.position < len(l.input) {
		if l.ch == '\\' {
			l.readChar()
			if l.position < len(l.input) {
				l.readChar()
			}
			continue
		}
		if l.ch == '"' {
			l.readChar()
			return
		}
		l.readChar()
	}
}

// readIdentifier consumes an identifier. A '.' is accepted inside an
// identifier when followed by a letter, so reserved Dgraph names such
// as dgraph.type lex as one token.
func (l *Scanner) readIdentifier() {
	for l.position < len(l.input) {
		if isLetter(l.ch) || isDigit(l.ch) {
			l.readChar()
			continue
		}
		if l.ch == '.' && isLetter(l.peekChar()) {
			l.readChar()
			continue
		}
		return
	}
}

// readNumber consumes an integer or float literal.
func (l *Scanner) readNumber() {
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) && l.position < len(l.input) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) && l.position < len(l.input) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '+' || next == '-' {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) && l.position < len(l.input) {
				l.readChar()
			}
		}
	}
}

// isWhitespace checks if a byte is a space, tab, or line break.
func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// isLetter checks if a byte is a letter or underscore.
func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_'
}

// isDigit checks if a byte is a digit.
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// isPunct checks if a byte is one of the SDL punctuation characters.
func isPunct(ch byte) bool {
	switch ch {
	case '{', '}', '[', ']', '(', ')', ':', '=', '!', '|', '&', '@', ',', '$', '.', ';':
		return true
	}
	return false
}

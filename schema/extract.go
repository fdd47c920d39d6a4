package schema

import "github.com/Protocol-Lattice/schemalens/token"

// defKinds maps the keywords that open a type definition to the kind
// they produce.
var defKinds = map[string]Kind{
	"type":      Object,
	"interface": Interface,
	"enum":      Enum,
	"union":     Union,
	"input":     Input,
	"scalar":    Scalar,
}

// Extract walks a token stream and builds the type index, plus the
// table of identifier tokens in type-reference position. It is total:
// malformed bodies terminate that one definition at end-of-input and
// keep whatever was extracted, never an error. Partial results are
// better than none for an editor live on dirty text.
func Extract(toks []token.Token) (*Index, []Ref) {
	e := &extractor{toks: toks, index: NewIndex()}
	e.skipTrivia()
	iterations := 0
	maxIterations := len(toks) + 1 // safeguard
	for !e.atEOF() {
		iterations++
		if iterations > maxIterations {
			break
		}
		e.parseTopLevel()
	}
	return e.index, e.refs
}

// extractor is a cursor over the token stream. The cursor always rests
// on a significant token; trivia is skipped on every advance.
type extractor struct {
	toks  []token.Token
	pos   int
	index *Index
	refs  []Ref
}

var eofToken = token.Token{Kind: token.EOF}

func (e *extractor) cur() token.Token {
	if e.pos >= len(e.toks) {
		return eofToken
	}
	return e.toks[e.pos]
}

func (e *extractor) atEOF() bool {
	return e.pos >= len(e.toks)
}

// next advances the cursor to the next significant token.
func (e *extractor) next() {
	e.pos++
	e.skipTrivia()
}

func (e *extractor) skipTrivia() {
	for e.pos < len(e.toks) && e.toks[e.pos].IsTrivia() {
		e.pos++
	}
}

// peek returns the significant token after the cursor without moving.
func (e *extractor) peek() token.Token {
	for i := e.pos + 1; i < len(e.toks); i++ {
		if !e.toks[i].IsTrivia() {
			return e.toks[i]
		}
	}
	return eofToken
}

// addRef records the token under the cursor as a type reference.
func (e *extractor) addRef() {
	e.refs = append(e.refs, Ref{Name: e.cur().Text, TokenIndex: e.pos})
}

func loc(tok token.Token) Location {
	return Location{Start: tok.Start, Line: tok.Line, Column: tok.Column}
}

// parseTopLevel dispatches on the token under the cursor. Unknown
// tokens are skipped so a single stray character never derails the
// whole pass.
func (e *extractor) parseTopLevel() {
	tok := e.cur()
	switch {
	case tok.IsKeyword("extend"):
		e.parseExtend()
	case tok.IsKeyword("schema"):
		e.parseSchemaBlock()
	case tok.IsKeyword("directive"):
		e.parseDirectiveDefinition()
	case tok.Kind == token.KEYWORD && defKinds[tok.Text] != "":
		e.parseDefinition(defKinds[tok.Text])
	case tok.Is("("):
		e.skipParens()
	default:
		e.next()
	}
}

// parseDefinition consumes one type definition starting at its kind
// keyword and adds it to the index.
func (e *extractor) parseDefinition(kind Kind) {
	description := e.docBefore(e.pos)
	e.next() // skip the kind keyword
	if e.cur().Kind != token.IDENT {
		return
	}
	name := e.cur()
	def := &TypeDefinition{
		Name:        name.Text,
		Kind:        kind,
		Description: description,
		Location:    loc(name),
	}
	e.next()

	if e.cur().IsKeyword("implements") {
		e.next()
		for e.cur().Kind == token.IDENT || e.cur().Is("&") {
			if e.cur().Kind == token.IDENT {
				e.addRef()
			}
			e.next()
		}
	}
	e.skipDirectives()

	switch kind {
	case Scalar:
		// No body.
	case Union:
		if e.cur().Is("=") {
			e.next()
			for {
				if e.cur().Is("|") {
					e.next()
					continue
				}
				if e.cur().Kind != token.IDENT {
					break
				}
				e.addRef()
				def.Fields = append(def.Fields, FieldDefinition{
					Name:     e.cur().Text,
					Location: loc(e.cur()),
				})
				e.next()
			}
		}
	case Enum:
		if e.cur().Is("{") {
			e.next()
			e.parseEnumValues(def)
		}
	default:
		if e.cur().Is("{") {
			e.next()
			e.parseFieldList(def)
		}
	}
	e.index.add(def)
}

// parseEnumValues consumes enum value names up to the closing brace or
// end of input. Values become fields with an empty type.
func (e *extractor) parseEnumValues(def *TypeDefinition) {
	for !e.atEOF() && !e.cur().Is("}") {
		if e.startsTopLevel() {
			return // missing '}', recover at the next definition
		}
		if e.cur().Kind == token.IDENT {
			def.Fields = append(def.Fields, FieldDefinition{
				Name:     e.cur().Text,
				Location: loc(e.cur()),
			})
			e.next()
			e.skipDirectives()
			continue
		}
		e.next()
	}
	if e.cur().Is("}") {
		e.next()
	}
}

// parseFieldList consumes field declarations up to the closing brace
// or end of input. An unbalanced body keeps the fields read so far.
func (e *extractor) parseFieldList(def *TypeDefinition) {
	for !e.atEOF() && !e.cur().Is("}") {
		if e.startsTopLevel() {
			return
		}
		if e.fieldNameAhead() {
			name := e.cur()
			e.next()
			fd := FieldDefinition{Name: name.Text, Location: loc(name)}
			if e.cur().Is("(") {
				e.parseArguments()
			}
			if e.cur().Is(":") {
				e.next()
				fd.Type = e.parseTypeExpr()
			}
			if e.cur().Is("=") {
				e.next()
				e.skipValue()
			}
			e.skipDirectives()
			def.Fields = append(def.Fields, fd)
			continue
		}
		e.next()
	}
	if e.cur().Is("}") {
		e.next()
	}
}

// fieldNameAhead reports whether the cursor sits on a field name. A
// reserved word counts when it is used as a field, e.g. a field named
// "type", which the following ':' or '(' gives away.
func (e *extractor) fieldNameAhead() bool {
	switch e.cur().Kind {
	case token.IDENT:
		return true
	case token.KEYWORD:
		next := e.peek()
		return next.Is(":") || next.Is("(")
	}
	return false
}

// startsTopLevel reports whether the cursor sits on a keyword opening
// a new top-level construct rather than a field named like one.
func (e *extractor) startsTopLevel() bool {
	tok := e.cur()
	if tok.Kind != token.KEYWORD {
		return false
	}
	switch tok.Text {
	case "type", "interface", "enum", "union", "input", "scalar",
		"extend", "schema", "directive":
	default:
		return false
	}
	next := e.peek()
	return !next.Is(":") && !next.Is("(")
}

// parseArguments consumes an argument list, recording the type
// reference of every argument annotation.
func (e *extractor) parseArguments() {
	e.next() // skip '('
	for !e.atEOF() && !e.cur().Is(")") {
		switch {
		case e.cur().Is(":"):
			e.next()
			e.parseTypeExpr()
		case e.cur().Is("="):
			e.next()
			e.skipValue()
		case e.cur().Is("@"):
			e.skipDirectives()
		case e.cur().Is("("):
			e.skipParens()
		default:
			e.next()
		}
	}
	if e.cur().Is(")") {
		e.next()
	}
}

// parseTypeExpr consumes a type expression (e.g. String, [Post!]!)
// and renders it back to a string. The named identifier inside is
// recorded as a type reference.
func (e *extractor) parseTypeExpr() string {
	if e.cur().Is("[") {
		e.next()
		rendered := "[" + e.parseTypeExpr()
		if !e.cur().Is("]") {
			return rendered // unbalanced, keep what we have
		}
		rendered += "]"
		e.next()
		if e.cur().Is("!") {
			rendered += "!"
			e.next()
		}
		return rendered
	}
	if e.cur().Kind == token.IDENT {
		e.addRef()
		rendered := e.cur().Text
		e.next()
		if e.cur().Is("!") {
			rendered += "!"
			e.next()
		}
		return rendered
	}
	return ""
}

// skipValue consumes a default value: a single literal, or a balanced
// list/object value.
func (e *extractor) skipValue() {
	if !e.cur().Is("[") && !e.cur().Is("{") {
		if !e.atEOF() {
			e.next()
		}
		return
	}
	depth := 0
	for !e.atEOF() {
		switch {
		case e.cur().Is("[") || e.cur().Is("{"):
			depth++
		case e.cur().Is("]") || e.cur().Is("}"):
			depth--
		}
		e.next()
		if depth <= 0 {
			return
		}
	}
}

// skipDirectives consumes any run of @directive applications,
// including their argument lists.
func (e *extractor) skipDirectives() {
	for e.cur().Is("@") {
		e.next()
		if e.cur().Kind == token.IDENT || e.cur().Kind == token.KEYWORD {
			e.next()
		}
		if e.cur().Is("(") {
			e.skipParens()
		}
	}
}

// skipParens skips over a balanced parenthesized block.
func (e *extractor) skipParens() {
	if !e.cur().Is("(") {
		return
	}
	depth := 1
	e.next() // skip the opening '('
	for depth > 0 && !e.atEOF() {
		if e.cur().Is("(") {
			depth++
		} else if e.cur().Is(")") {
			depth--
		}
		e.next()
	}
}

// parseExtend consumes a type extension. The extended name is a
// reference to an existing type, not a new definition; body
// annotations still contribute references.
func (e *extractor) parseExtend() {
	e.next() // skip 'extend'
	if e.cur().Kind == token.KEYWORD && defKinds[e.cur().Text] != "" {
		e.next()
	}
	if e.cur().Kind == token.IDENT {
		e.addRef()
		e.next()
	}
	if e.cur().IsKeyword("implements") {
		e.next()
		for e.cur().Kind == token.IDENT || e.cur().Is("&") {
			if e.cur().Kind == token.IDENT {
				e.addRef()
			}
			e.next()
		}
	}
	e.skipDirectives()
	if e.cur().Is("{") {
		e.next()
		e.parseFieldList(&TypeDefinition{})
	}
}

// parseSchemaBlock consumes a schema block. Its operation-type
// bindings (query: Query, ...) are references like any field
// annotation; no definition is produced.
func (e *extractor) parseSchemaBlock() {
	e.next() // skip 'schema'
	e.skipDirectives()
	if e.cur().Is("{") {
		e.next()
		e.parseFieldList(&TypeDefinition{})
	}
}

// parseDirectiveDefinition consumes a directive definition header.
// Argument annotations are references; the location list after 'on'
// is skipped by the top-level loop.
func (e *extractor) parseDirectiveDefinition() {
	e.next() // skip 'directive'
	if e.cur().Is("@") {
		e.next()
	}
	if e.cur().Kind == token.IDENT || e.cur().Kind == token.KEYWORD {
		e.next()
	}
	if e.cur().Is("(") {
		e.parseArguments()
	}
}

// docBefore returns the description attached to a definition: the
// string or comment token immediately preceding the keyword at
// tokenIndex, with only whitespace between.
func (e *extractor) docBefore(tokenIndex int) string {
	for i := tokenIndex - 1; i >= 0; i-- {
		switch e.toks[i].Kind {
		case token.WHITESPACE:
			continue
		case token.STRING:
			return e.toks[i].StringValue()
		case token.COMMENT:
			return e.toks[i].CommentValue()
		default:
			return ""
		}
	}
	return ""
}

package resolve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Protocol-Lattice/schemalens/lexer"
	"github.com/Protocol-Lattice/schemalens/schema"
)

const src = `type User { id: ID! name: String posts: [Post!] }
type Post { title: String author: User }
`

func newResolver(t *testing.T, text string) *Resolver {
	t.Helper()
	toks := lexer.Scan(text)
	_, refs := schema.Extract(toks)
	return New(toks, refs)
}

func TestResolveAtTypeAnnotation(t *testing.T) {
	r := newResolver(t, src)

	off := strings.Index(src, "[Post!]") + 1 // first byte of Post inside the list
	ref := r.ResolveAt(off)
	require.NotNil(t, ref)
	assert.Equal(t, "Post", ref.Name)
	assert.Equal(t, off, ref.Start)
	assert.Equal(t, off+len("Post"), ref.End)

	// Every offset inside the identifier resolves identically.
	for p := ref.Start; p < ref.End; p++ {
		got := r.ResolveAt(p)
		require.NotNil(t, got, "offset %d", p)
		assert.Equal(t, *ref, *got)
	}
}

func TestResolveAtFieldNameIsAbsent(t *testing.T) {
	r := newResolver(t, src)

	// "posts" is a field name; it must never resolve even though
	// offsets inside it sit on an identifier.
	off := strings.Index(src, "posts")
	for p := off; p < off+len("posts"); p++ {
		assert.Nil(t, r.ResolveAt(p), "offset %d", p)
	}
}

func TestResolveAtDefinitionNameIsAbsent(t *testing.T) {
	r := newResolver(t, src)

	// "User" right after the 'type' keyword declares, it does not
	// reference.
	off := strings.Index(src, "User")
	assert.Nil(t, r.ResolveAt(off))

	// The same name in annotation position does resolve.
	annOff := strings.Index(src, "author: User") + len("author: ")
	ref := r.ResolveAt(annOff)
	require.NotNil(t, ref)
	assert.Equal(t, "User", ref.Name)
}

func TestResolveAtUndefinedTypeStillReported(t *testing.T) {
	text := `type A { b: Missing }`
	r := newResolver(t, text)

	ref := r.ResolveAt(strings.Index(text, "Missing"))
	require.NotNil(t, ref, "references to undefined types are still references")
	assert.Equal(t, "Missing", ref.Name)
}

func TestResolveAtKeywordAndTrivia(t *testing.T) {
	r := newResolver(t, src)

	assert.Nil(t, r.ResolveAt(0), "'type' keyword is not a reference")
	assert.Nil(t, r.ResolveAt(strings.Index(src, " ")), "whitespace is not a reference")
}

func TestResolveAtOutOfRange(t *testing.T) {
	r := newResolver(t, src)

	assert.Nil(t, r.ResolveAt(-1))
	assert.Nil(t, r.ResolveAt(len(src)))
	assert.Nil(t, r.ResolveAt(len(src)+100))
}

func TestResolveAtEmptyText(t *testing.T) {
	r := newResolver(t, "")
	assert.Nil(t, r.ResolveAt(0))
}

func TestResolveAtIdempotent(t *testing.T) {
	r := newResolver(t, src)

	off := strings.Index(src, "[Post!]") + 1
	first := r.ResolveAt(off)
	second := r.ResolveAt(off)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
}

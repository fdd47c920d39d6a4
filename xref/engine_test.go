package xref

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const src = `type User { id: ID! name: String posts: [Post!] }
type Post { title: String }
`

func TestFindTypeDefinition(t *testing.T) {
	engine := NewEngine(src)

	def := engine.FindTypeDefinition("User")
	require.NotNil(t, def)
	assert.Equal(t, "User", def.Name)
	require.Len(t, def.Fields, 3)
	assert.Equal(t, "ID!", def.Fields[0].Type)
	assert.Equal(t, "String", def.Fields[1].Type)
	assert.Equal(t, "[Post!]", def.Fields[2].Type)

	assert.Nil(t, engine.FindTypeDefinition("Comment"))
}

func TestHoverReferenceResolvesToDefinition(t *testing.T) {
	engine := NewEngine(src)

	// The Post occurrence inside [Post!].
	off := strings.Index(src, "[Post!]") + 1
	ref := engine.FindTypeAtPosition(off)
	require.NotNil(t, ref)
	assert.Equal(t, "Post", ref.Name)

	def := engine.FindTypeDefinition(ref.Name)
	require.NotNil(t, def)

	// The definition's location points at the Post name token in
	// "type Post {...}", the navigation target.
	wantOff := strings.Index(src, "type Post") + len("type ")
	assert.Equal(t, wantOff, def.Location.Start)
	assert.Equal(t, 2, def.Location.Line)
}

func TestFindTypeAtPositionMisses(t *testing.T) {
	engine := NewEngine(src)

	assert.Nil(t, engine.FindTypeAtPosition(strings.Index(src, "title")))
	assert.Nil(t, engine.FindTypeAtPosition(-5))
	assert.Nil(t, engine.FindTypeAtPosition(len(src)+1))
}

func TestQueriesAreIdempotent(t *testing.T) {
	engine := NewEngine(src)
	off := strings.Index(src, "[Post!]") + 1

	first := engine.FindTypeAtPosition(off)
	second := engine.FindTypeAtPosition(off)
	require.NotNil(t, first)
	assert.Equal(t, *first, *second)

	assert.Same(t, engine.FindTypeDefinition("User"), engine.FindTypeDefinition("User"))
}

func TestRebuildReplacesSnapshot(t *testing.T) {
	engine := NewEngine(src)
	require.NotNil(t, engine.FindTypeDefinition("Post"))

	edited := strings.ReplaceAll(src, "Post", "Article")
	engine = NewEngine(edited)
	assert.Nil(t, engine.FindTypeDefinition("Post"))
	require.NotNil(t, engine.FindTypeDefinition("Article"))
	assert.Equal(t, edited, engine.Text())
}

func TestMalformedTextStillAnswers(t *testing.T) {
	engine := NewEngine(`type A { id: ID!`)

	def := engine.FindTypeDefinition("A")
	require.NotNil(t, def)
	require.Len(t, def.Fields, 1)
	assert.Equal(t, "id", def.Fields[0].Name)
}

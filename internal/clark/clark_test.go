package clark_test

import (
	"testing"

	"github.com/lestrrat-go/xmlwrap/internal/clark"
	"github.com/stretchr/testify/require"
)

func TestRewrite(t *testing.T) {
	alloc := func(t *testing.T) (func(string) string, *[]string) {
		var seen []string
		return func(uri string) string {
			seen = append(seen, uri)
			return "p"
		}, &seen
	}

	t.Run("NoNotation", func(t *testing.T) {
		f, seen := alloc(t)
		require.Equal(t, "a/b/c", clark.Rewrite("a/b/c", f))
		require.Empty(t, *seen)
	})

	t.Run("SingleURI", func(t *testing.T) {
		f, seen := alloc(t)
		require.Equal(t, "a/p:b", clark.Rewrite("a/{urn:abc}b", f))
		require.Equal(t, []string{"urn:abc"}, *seen)
	})

	t.Run("MultipleURIs", func(t *testing.T) {
		f, seen := alloc(t)
		require.Equal(t, "p:a/p:b", clark.Rewrite("{urn:a}a/{urn:b}b", f))
		require.Equal(t, []string{"urn:a", "urn:b"}, *seen)
	})

	t.Run("NonGreedy", func(t *testing.T) {
		// the URI stops at the first closing brace
		f, seen := alloc(t)
		require.Equal(t, "p:a}b", clark.Rewrite("{urn:x}a}b", f))
		require.Equal(t, []string{"urn:x"}, *seen)
	})

	t.Run("UnterminatedBrace", func(t *testing.T) {
		f, seen := alloc(t)
		require.Equal(t, "a/{urn:abc", clark.Rewrite("a/{urn:abc", f))
		require.Empty(t, *seen)
	})
}

func TestURIs(t *testing.T) {
	require.Equal(t, []string{"urn:a", "urn:b"}, clark.URIs("{urn:a}x/{urn:b}y/{urn:a}z"))
	require.Nil(t, clark.URIs("a/b"))
}

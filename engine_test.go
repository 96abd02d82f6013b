package xmlwrap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFastEligible(t *testing.T) {
	eligible := []string{
		"a",
		"a/b",
		"a/b/c",
		"ns:a/b",
		"prefix_0:a/prefix_1:b",
		// no flagged character; the manual walk just fails to match
		// an element literally named "text()"
		"a/text()",
	}
	for _, q := range eligible {
		t.Run(q, func(t *testing.T) {
			require.True(t, fastEligible(q))
		})
	}

	ineligible := map[string]string{
		"/a":       "leading slash",
		"//a":      "descendant step",
		"a//b":     "descendant step",
		"child::a": "axis syntax",
		"a[1]":     "predicate",
		"a|b":      "union",
		"*":        "wildcard",
		".":        "self step",
		"..":       "parent step",
		"@id":      "attribute",
		"a/@id":    "attribute",
		"a[b='c']": "predicate",
	}
	for q, reason := range ineligible {
		t.Run(q, func(t *testing.T) {
			require.False(t, fastEligible(q), reason)
		})
	}
}

func TestQueryPrefixes(t *testing.T) {
	require.Equal(t, []string{"ns"}, queryPrefixes("a/ns:b"))
	require.Equal(t, []string{"prefix_0", "n-s.2"}, queryPrefixes("prefix_0:a/n-s.2:b"))
	require.Nil(t, queryPrefixes("a/b"))
	require.Nil(t, queryPrefixes("self::a"), "axis, not a prefix")
	require.Equal(t, []string{"ns"}, queryPrefixes("a/@ns:id"))
}

func TestCapped(t *testing.T) {
	source := func(pulled *int) func(yield func(int) bool) {
		return func(yield func(int) bool) {
			for i := 0; ; i++ {
				*pulled++
				if !yield(i) {
					return
				}
			}
		}
	}

	t.Run("StopsPullingAtCap", func(t *testing.T) {
		var pulled int
		var got []int
		for v := range capped(source(&pulled), 3) {
			got = append(got, v)
		}
		require.Equal(t, []int{0, 1, 2}, got)
		require.Equal(t, 3, pulled, "source must not be pulled past the cap")
	})

	t.Run("Zero", func(t *testing.T) {
		var pulled int
		for range capped(source(&pulled), 0) {
			t.Fatal("should not yield")
		}
		require.Equal(t, 0, pulled)
	})
}

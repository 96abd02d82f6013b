package nstable_test

import (
	"testing"

	"github.com/lestrrat-go/xmlwrap/internal/nstable"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	t.Run("DeterministicAllocation", func(t *testing.T) {
		tbl := nstable.New()
		require.Equal(t, "prefix_0", tbl.Register("urn:a"))
		require.Equal(t, "prefix_1", tbl.Register("urn:b"))
		require.Equal(t, "prefix_2", tbl.Register("urn:c"))
		require.Equal(t, 3, tbl.Len())
	})

	t.Run("Idempotent", func(t *testing.T) {
		tbl := nstable.New()
		p := tbl.Register("urn:a")
		require.Equal(t, p, tbl.Register("urn:a"))
		require.Equal(t, 1, tbl.Len())
	})

	t.Run("LookupURI", func(t *testing.T) {
		tbl := nstable.New()
		p := tbl.Register("urn:a")

		uri, ok := tbl.LookupURI(p)
		require.True(t, ok)
		require.Equal(t, "urn:a", uri)

		_, ok = tbl.LookupURI("prefix_99")
		require.False(t, ok)
	})

	t.Run("MappingIsSnapshot", func(t *testing.T) {
		tbl := nstable.New()
		tbl.Register("urn:a")

		m := tbl.Mapping()
		require.Equal(t, map[string]string{"prefix_0": "urn:a"}, m)

		tbl.Register("urn:b")
		require.Len(t, m, 1, "snapshot should not grow")
	})

	t.Run("RangeOrder", func(t *testing.T) {
		tbl := nstable.New()
		tbl.Register("urn:a")
		tbl.Register("urn:b")

		var prefixes, uris []string
		for p, uri := range tbl.Range() {
			prefixes = append(prefixes, p)
			uris = append(uris, uri)
		}
		require.Equal(t, []string{"prefix_0", "prefix_1"}, prefixes)
		require.Equal(t, []string{"urn:a", "urn:b"}, uris)
	})
}

package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/topograph/builder"
)

func TestIDSchemes(t *testing.T) {
	cases := []struct {
		fn   builder.IDFn
		idx  int
		want string
	}{
		{builder.DecimalIDs, 0, "0"},
		{builder.DecimalIDs, 123, "123"},
		{builder.LetterIDs, 0, "A"},
		{builder.LetterIDs, 25, "Z"},
		{builder.LetterIDs, 26, "AA"},
		{builder.LetterIDs, 27, "AB"},
		{builder.LetterIDs, 701, "ZZ"},
		{builder.LetterIDs, 702, "AAA"},
		{builder.LetterIDs, -3, "-3"},
		{builder.HexIDs, 255, "ff"},
		{builder.Base36IDs, 35, "z"},
		{builder.Base36IDs, 36, "10"},
		{builder.PrefixedIDs("v"), 7, "v7"},
	}
	for _, tc := range cases {
		if got := tc.fn(tc.idx); got != tc.want {
			t.Errorf("scheme(%d) = %q, want %q", tc.idx, got, tc.want)
		}
	}
}

func TestParseIDScheme(t *testing.T) {
	assert.Equal(t, []string{"base36", "decimal", "hex", "letters"}, builder.IDSchemes())

	for _, name := range append(builder.IDSchemes(), "") {
		fn, err := builder.ParseIDScheme(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, fn(3))
	}
	fn, err := builder.ParseIDScheme("letters")
	require.NoError(t, err)
	assert.Equal(t, "D", fn(3))

	_, err = builder.ParseIDScheme("roman")
	require.ErrorIs(t, err, builder.ErrUnknownIDScheme)
}

func TestPrefixedIDsInScene(t *testing.T) {
	sc, err := builder.BuildScene(nil, []builder.BuilderOption{builder.WithPrefixedIDs("p")}, builder.Path(3))
	require.NoError(t, err)
	for _, id := range []string{"p0", "p1", "p2"} {
		_, ok := sc.Store.Node(id)
		assert.True(t, ok, id)
	}
}

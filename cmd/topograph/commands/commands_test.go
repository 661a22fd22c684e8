package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square is the unit square a-b-c-d with a diagonal a-c and a "length"
// attribute that makes the diagonal expensive.
const square = `
points:
  - {id: a, at: [0, 0, 0]}
  - {id: b, at: [1, 0, 0]}
  - {id: c, at: [1, 1, 0]}
  - {id: d, at: [0, 1, 0]}
  - {id: lone, at: [5, 5, 0]}
segments:
  - {from: a, to: b, attrs: {length: 1}}
  - {from: b, to: c, attrs: {length: 1}}
  - {from: c, to: d, attrs: {length: 1}}
  - {from: d, to: a, attrs: {length: 1}}
  - {from: a, to: c, attrs: {length: 9}}
`

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

// execute runs the command tree with args and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd("test")
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()

	return out.String(), err
}

func TestStats(t *testing.T) {
	path := writeTemp(t, "square.yaml", square)
	out, err := execute(t, "", "stats", "--scene", path, "--degrees")
	require.NoError(t, err)
	for _, want := range []string{"nodes", "5", "segments", "components", "2", "cycles", "[3 3 2 2 0]", "unreachable"} {
		assert.Contains(t, out, want)
	}
}

func TestQueries(t *testing.T) {
	path := writeTemp(t, "square.yaml", square)

	out, err := execute(t, "", "distance", "a", "c", "-s", path)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = execute(t, "", "distance", "a", "lone", "-s", path)
	require.NoError(t, err)
	assert.Equal(t, "unreachable\n", out)

	out, err = execute(t, "", "shortest", "a", "1,1,0", "-s", path, "--edge-key", "length")
	require.NoError(t, err)
	assert.Contains(t, out, "hops 2, cost 2")

	out, err = execute(t, "", "shortest", "a", "c", "-s", path, "--edge-key", "length", "--all")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)

	out, err = execute(t, "", "all-paths", "a", "c", "-s", path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)

	out, err = execute(t, "", "path", "a", "lone", "-s", path)
	require.NoError(t, err)
	assert.Equal(t, "no path\n", out)
}

func TestQueryErrors(t *testing.T) {
	path := writeTemp(t, "square.yaml", square)

	_, err := execute(t, "", "distance", "a", "c")
	require.ErrorIs(t, err, errNoScene)

	_, err = execute(t, "", "distance", "a", "nowhere", "-s", path)
	require.ErrorIs(t, err, errBadEndpoint)

	_, err = execute(t, "", "distance", "a", "c", "-s", path, "--metric", "manhattan")
	require.Error(t, err)
}

func TestGenerateThenStats(t *testing.T) {
	out := filepath.Join(t.TempDir(), "grid.yaml")
	_, err := execute(t, "", "generate", "grid", "3", "4", "-o", out, "--weight-key", "length", "--weight", "2")
	require.NoError(t, err)

	stats, err := execute(t, "", "stats", "-s", out)
	require.NoError(t, err)
	assert.Contains(t, stats, "12")
	assert.Contains(t, stats, "17")

	res, err := execute(t, "", "shortest", "0,0,0", "3,2,0", "-s", out, "--edge-key", "length")
	require.NoError(t, err)
	assert.Contains(t, res, "hops 5, cost 10")

	line := filepath.Join(t.TempDir(), "path.yaml")
	_, err = execute(t, "", "generate", "path", "3", "-o", line, "--spacing", "2",
		"--weight-key", "length", "--weight", "1.5", "--by-length")
	require.NoError(t, err)
	res, err = execute(t, "", "shortest", "0,0,0", "4,0,0", "-s", line, "--edge-key", "length")
	require.NoError(t, err)
	assert.Contains(t, res, "hops 2, cost 6")
}

func TestGenerateErrors(t *testing.T) {
	_, err := execute(t, "", "generate", "hexagon", "3")
	require.Error(t, err)
	_, err = execute(t, "", "generate", "grid", "3")
	require.Error(t, err)
	_, err = execute(t, "", "generate", "cycle", "x")
	require.Error(t, err)
	_, err = execute(t, "", "generate", "cycle", "3", "--ids", "roman")
	require.Error(t, err)
}

func TestBatch(t *testing.T) {
	path := writeTemp(t, "square.yaml", square)
	queries := `# comment
distance a c
shortest a c length

path b d
shortest-all a c length
`
	out, err := execute(t, queries, "batch", "-", "-s", path, "-w", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "1. distance a c")
	assert.Contains(t, out, "4. shortest a c")
	assert.Less(t, strings.Index(out, "1. distance"), strings.Index(out, "2. shortest"), "results keep input order")

	_, err = execute(t, "teleport a c\n", "batch", "-", "-s", path)
	require.ErrorIs(t, err, errUnknownQuery)

	_, err = execute(t, "distance a\n", "batch", "-", "-s", path)
	require.ErrorIs(t, err, errQueryArgCount)
}

func TestParseQueries(t *testing.T) {
	qs, err := parseQueries(strings.NewReader("shortest-all a b length toll\n"))
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, query{kind: queryShortest, from: "a", to: "b", edgeKey: "length", vertexKey: "toll", all: true}, qs[0])
}

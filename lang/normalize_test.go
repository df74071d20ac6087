package lang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeCollapsesBlankRunsAndTrailingNewline(t *testing.T) {
	src := "BLOCK FT {\n  10 wall_balls;\n\n\n  200m run;\n}\n\n"
	first := Normalize(src)
	require.False(t, strings.Contains(first, "\n\n\n"))
	require.True(t, strings.HasSuffix(first, "\n"))
	require.False(t, strings.HasSuffix(first, "\n\n"))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	src := "BLOCK FT {\n  10 wall_balls;\n\n\n  200m run;\n}\n\n"
	once := Normalize(src)
	twice := Normalize(once)
	require.Equal(t, once, twice)
}

func TestNormalizeStripsTrailingWhitespace(t *testing.T) {
	src := "BLOCK FT {  \n 10 wall_balls;\t\n}\n"
	out := Normalize(src)
	for _, line := range strings.Split(out, "\n") {
		require.Equal(t, strings.TrimRight(line, " \t"), line)
	}
}

func TestNormalizePreservesParseability(t *testing.T) {
	src := "BLOCK FT {\n  10 wall_balls;\n\n\n  200m run;\n}\n\n"
	before, err := Parse(src)
	require.NoError(t, err)
	after, err := Parse(Normalize(src))
	require.NoError(t, err)
	require.Equal(t, len(before.Body), len(after.Body))
	require.Equal(t, before.Body[0].Block.Stmts[0].Line.Movement, after.Body[0].Block.Stmts[0].Line.Movement)
	require.Equal(t, before.Body[0].Block.Stmts[1].Line.Movement, after.Body[0].Block.Stmts[1].Line.Movement)
}

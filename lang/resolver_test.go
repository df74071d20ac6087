package lang

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveDualCalFemaleBranch(t *testing.T) {
	prog, err := Parse("BLOCK FT {\n 15/12 cal row;\n}")
	require.NoError(t, err)
	Resolve(prog, ResolveOptions{Gender: Female})
	qty := prog.Body[0].Block.Stmts[0].Line.Qty
	require.Equal(t, QtyCal, qty.Kind)
	require.Equal(t, 12.0, qty.Value)
}

func TestResolveDualMaleBranch(t *testing.T) {
	prog, err := Parse("BLOCK FT {\n 21/15 pullups;\n}")
	require.NoError(t, err)
	Resolve(prog, ResolveOptions{Gender: Male})
	qty := prog.Body[0].Block.Stmts[0].Line.Qty
	require.Equal(t, QtyReps, qty.Kind)
	require.Equal(t, 21.0, qty.Value)
}

func TestResolveAliasRewrite(t *testing.T) {
	prog, err := Parse("BLOCK FT {\n 10 wb;\n}")
	require.NoError(t, err)
	Resolve(prog, ResolveOptions{})
	require.Equal(t, "wall_balls", prog.Body[0].Block.Stmts[0].Line.Movement)
	require.Len(t, prog.Meta.Normalized, 1)
	require.Equal(t, AliasNote{Code: "W050", From: "wb", To: "wall_balls"}, prog.Meta.Normalized[0])
}

func TestResolveNoDualLeaksPostResolve(t *testing.T) {
	prog, err := Parse("BLOCK FT {\n 400/300m run;\n 10 thrusters @70/52.5kg;\n}")
	require.NoError(t, err)
	Resolve(prog, ResolveOptions{Gender: Female})
	for _, st := range prog.Body[0].Block.Stmts {
		require.False(t, st.Line.Qty != nil && st.Line.Qty.Kind.isDual())
		require.False(t, st.Line.Load != nil && st.Line.Load.Kind == LoadDual)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	prog, err := Parse("BLOCK FT {\n 15/12 cal row;\n 10 wb;\n}")
	require.NoError(t, err)
	opts := ResolveOptions{Gender: Female}
	Resolve(prog, opts)
	first := RenderLine(prog.Body[0].Block.Stmts[0].Line)
	notesAfterFirst := len(prog.Meta.Normalized)
	Resolve(prog, opts)
	second := RenderLine(prog.Body[0].Block.Stmts[0].Line)
	require.Equal(t, first, second)
	require.Equal(t, notesAfterFirst, len(prog.Meta.Normalized))
}

func TestResolveCatalogDefaulting(t *testing.T) {
	catJSON := []byte(`{
		"movements": {
			"wall_balls": {
				"reps": {"rx": {"male": 20, "female": 14}},
				"load": {"rx": {"male": "9kg", "female": "6kg"}}
			}
		}
	}`)
	cat, err := LoadCatalog(catJSON)
	require.NoError(t, err)

	prog, err := Parse("BLOCK FT {\n wall_balls;\n}")
	require.NoError(t, err)
	Resolve(prog, ResolveOptions{Catalog: cat, Track: "RX", Gender: Female})

	line := prog.Body[0].Block.Stmts[0].Line
	require.Equal(t, QtyReps, line.Qty.Kind)
	require.Equal(t, 14.0, line.Qty.Value)
	require.Equal(t, LoadWeight, line.Load.Kind)
	require.Equal(t, 6.0, line.Load.Value)
}

func TestResolveCatalogDoesNotOverwriteExplicitValue(t *testing.T) {
	catJSON := []byte(`{"movements": {"wall_balls": {"reps": {"rx": {"male": 20}}}}}`)
	cat, err := LoadCatalog(catJSON)
	require.NoError(t, err)

	prog, err := Parse("BLOCK FT {\n 9 wall_balls;\n}")
	require.NoError(t, err)
	Resolve(prog, ResolveOptions{Catalog: cat})

	require.Equal(t, 9.0, prog.Body[0].Block.Stmts[0].Line.Qty.Value)
}

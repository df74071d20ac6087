package lang

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSimpleFTBlock(t *testing.T) {
	src := "WOD \"Test\"\nBLOCK FT {\n 10 wall_balls;\n}\n"
	prog, err := Parse(src)
	require.NoError(t, err)
	require.NotNil(t, prog.Meta.Title)
	require.Equal(t, "Test", *prog.Meta.Title)
	require.Len(t, prog.Body, 1)
	seg := prog.Body[0]
	require.Equal(t, SegBlock, seg.Kind)
	require.Equal(t, ModeFT, seg.Block.Head.Mode)
	require.Len(t, seg.Block.Stmts, 1)
	line := seg.Block.Stmts[0].Line
	require.Equal(t, "wall_balls", line.Movement)
	require.Equal(t, QtyReps, line.Qty.Kind)
	require.Equal(t, float64(10), line.Qty.Value)
}

func TestParseEmomMissingDurationFails(t *testing.T) {
	_, err := Parse("BLOCK EMOM { }")
	require.Error(t, err)
}

func TestParseEmomSlotLines(t *testing.T) {
	src := "BLOCK EMOM 2:00 {\n 1: 10 wall_balls;\n 2: 8 box_jumps;\n}"
	prog, err := Parse(src)
	require.NoError(t, err)
	block := prog.Body[0].Block
	require.Equal(t, 120, block.Head.Duration)
	require.Len(t, block.Stmts, 2)
	require.Equal(t, 1, block.Stmts[0].Slot)
	require.Equal(t, 2, block.Stmts[1].Slot)
}

func TestParseDualQuantities(t *testing.T) {
	src := "BLOCK FT {\n 15/12 cal row;\n 400/300m run;\n 21/15 pullups;\n}"
	prog, err := Parse(src)
	require.NoError(t, err)
	stmts := prog.Body[0].Block.Stmts
	require.Equal(t, QtyDualCal, stmts[0].Line.Qty.Kind)
	require.Equal(t, 15.0, stmts[0].Line.Qty.A)
	require.Equal(t, 12.0, stmts[0].Line.Qty.B)
	require.Equal(t, QtyDualDistance, stmts[1].Line.Qty.Kind)
	require.Equal(t, 400.0, stmts[1].Line.Qty.A)
	require.Equal(t, QtyDualReps, stmts[2].Line.Qty.Kind)
}

func TestParseDistanceNormalizesKm(t *testing.T) {
	src := "BLOCK FT {\n 1.5km run;\n}"
	prog, err := Parse(src)
	require.NoError(t, err)
	qty := prog.Body[0].Block.Stmts[0].Line.Qty
	require.Equal(t, QtyDistance, qty.Kind)
	require.Equal(t, 1500.0, qty.Value)
	require.Equal(t, "m", qty.Unit)
}

func TestParseLoadForms(t *testing.T) {
	src := "BLOCK FT {\n 10 thrusters @42.5kg;\n 10 thrusters @70/52.5kg;\n 10 thrusters @75%;\n 10 thrusters @bodyweight;\n}"
	prog, err := Parse(src)
	require.NoError(t, err)
	stmts := prog.Body[0].Block.Stmts
	require.Equal(t, LoadWeight, stmts[0].Line.Load.Kind)
	require.Equal(t, 42.5, stmts[0].Line.Load.Value)
	require.Equal(t, LoadDual, stmts[1].Line.Load.Kind)
	require.Equal(t, LoadWeight, stmts[1].Line.Load.A.Kind)
	require.Equal(t, LoadPercentRaw, stmts[2].Line.Load.Kind)
	require.Equal(t, LoadRaw, stmts[3].Line.Load.Kind)
	require.Equal(t, "bodyweight", stmts[3].Line.Load.Raw)
}

func TestParseLineSuffixFlags(t *testing.T) {
	src := "BLOCK FT {\n 10 thrusters @42kg SYNC @shared;\n}"
	prog, err := Parse(src)
	require.NoError(t, err)
	line := prog.Body[0].Block.Stmts[0].Line
	require.Equal(t, []string{"SYNC", "@shared"}, line.Flags)
}

func TestParseTabataHead(t *testing.T) {
	src := "BLOCK TABATA 0:20 : 0:10 x 8 {\n 10 wall_balls;\n}"
	prog, err := Parse(src)
	require.NoError(t, err)
	head := prog.Body[0].Block.Head
	require.Equal(t, ModeTabata, head.Mode)
	require.Equal(t, 20, head.Work)
	require.Equal(t, 10, head.Rest)
	require.Equal(t, 8, head.Sets)
}

func TestParseIntervalHead(t *testing.T) {
	src := "BLOCK INTERVAL 5 x ( 0:40 on / 0:20 off ) {\n 10 burpees;\n}"
	prog, err := Parse(src)
	require.NoError(t, err)
	head := prog.Body[0].Block.Head
	require.Equal(t, ModeInterval, head.Mode)
	require.Equal(t, 5, head.Sets)
	require.Equal(t, 40, head.Work)
	require.Equal(t, 20, head.Rest)
}

func TestParseWorkAndPartitionOpts(t *testing.T) {
	src := "BLOCK FT WORK waterfall offset:0:10 PARTITION scheme 21-15-9 {\n 21 thrusters;\n}"
	prog, err := Parse(src)
	require.NoError(t, err)
	block := prog.Body[0].Block
	require.Equal(t, WorkWaterfall, block.Work.Kind)
	require.Equal(t, 10, block.Work.OffsetSec)
	require.Equal(t, PartitionScheme, block.Partition.Kind)
	require.Equal(t, []int{21, 15, 9}, block.Partition.Scheme)
}

func TestParseTiebreak(t *testing.T) {
	src := "BLOCK AMRAP 10:00 {\n 10 burpees;\n} TIEBREAK after 21 reps"
	prog, err := Parse(src)
	require.NoError(t, err)
	tb := prog.Body[0].Block.Tiebreak
	require.Equal(t, TiebreakCount, tb.Kind)
	require.Equal(t, 21, tb.Count)
	require.Equal(t, "reps", tb.Unit)
}

func TestParseEmptyBlockBodyFails(t *testing.T) {
	_, err := Parse("BLOCK FT { }")
	require.Error(t, err)
}

func TestParseUnterminatedBlockFails(t *testing.T) {
	_, err := Parse("BLOCK FT {\n 10 burpees;\n")
	require.Error(t, err)
}

func TestParseUnrecognizedModeFails(t *testing.T) {
	_, err := Parse("BLOCK NOTAMODE {\n 10 burpees;\n}")
	require.Error(t, err)
}

func TestParseTrackBlockIgnored(t *testing.T) {
	src := "TRACKS [ RX, SCALED ]\nTRACK SCALED {\n 5 burpees;\n}\nBLOCK FT {\n 10 burpees;\n}"
	prog, err := Parse(src)
	require.NoError(t, err)
	require.Equal(t, []string{"RX", "SCALED"}, prog.Meta.TracksDeclared)
	require.Equal(t, SegTrackBlock, prog.Body[0].Kind)
	require.True(t, prog.Body[0].Ignored)
}

func TestParseScoreLine(t *testing.T) {
	prog, err := Parse("SCORE primary=time, cap=20:00\nBLOCK FT {\n 10 burpees;\n}")
	require.NoError(t, err)
	require.Equal(t, "time", prog.Meta.Score["primary"])
}

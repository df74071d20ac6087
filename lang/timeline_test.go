package lang

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimelineEmomSlotRotation(t *testing.T) {
	prog, err := Parse("BLOCK EMOM 2:00 {\n 1: 10 wall_balls;\n 2: 8 box_jumps;\n}")
	require.NoError(t, err)
	Resolve(prog, ResolveOptions{})
	events := BuildTimeline(prog)

	var slots []Event
	for _, e := range events {
		if e.Type == EvNextSlot {
			slots = append(slots, e)
		}
	}
	require.Len(t, slots, 2)
	require.Equal(t, 1, slots[0].Slot)
	require.Equal(t, 2, slots[1].Slot)
	require.Equal(t, 0, slots[0].T)
	require.Equal(t, 60, slots[1].T)
}

func TestTimelineAmrapEndsAtDuration(t *testing.T) {
	prog, err := Parse("BLOCK AMRAP 1:00 {\n 10 burpees;\n}")
	require.NoError(t, err)
	Resolve(prog, ResolveOptions{})
	events := BuildTimeline(prog)
	last := events[len(events)-1]
	require.Equal(t, EvEndBlock, last.Type)
	require.Equal(t, 60, last.T)
}

func TestTimelineMonotonic(t *testing.T) {
	prog, err := Parse("BUYIN {\n 10 wall_balls;\n}\nREST 30s\nBLOCK FT {\n 10 thrusters;\n 200m run;\n}\nCASHOUT {\n 5 burpees;\n}")
	require.NoError(t, err)
	Resolve(prog, ResolveOptions{})
	events := BuildTimeline(prog)
	for i := 1; i < len(events); i++ {
		require.GreaterOrEqual(t, events[i].T, events[i-1].T)
	}
}

func TestTimelineRestAdvancesClock(t *testing.T) {
	prog, err := Parse("REST 30s\nBLOCK FT {\n 10 burpees;\n}")
	require.NoError(t, err)
	Resolve(prog, ResolveOptions{})
	events := BuildTimeline(prog)
	require.Equal(t, EvRestStart, events[0].Type)
	require.Equal(t, 0, events[0].T)
	require.Equal(t, 30, events[0].Duration)
	require.Equal(t, EvRestEnd, events[1].Type)
	require.Equal(t, 30, events[1].T)
}

func TestTimelineEmomWithoutSlotsEmitsNoNextSlot(t *testing.T) {
	prog, err := Parse("BLOCK EMOM 2:00 {\n 10 burpees;\n}")
	require.NoError(t, err)
	Resolve(prog, ResolveOptions{})
	events := BuildTimeline(prog)
	for _, e := range events {
		require.NotEqual(t, EvNextSlot, e.Type)
	}
}

func TestEstBlockSecondsRFT(t *testing.T) {
	prog, err := Parse("BLOCK RFT 3 {\n 10 thrusters;\n}")
	require.NoError(t, err)
	Resolve(prog, ResolveOptions{})
	block := prog.Body[0].Block
	require.Equal(t, 90.0, estBlockSeconds(block))
}

package export

import "github.com/wodcraft/wodc/lang"

// Period is an elapsed-second interval, adapted from busoc-assist's
// periods.go (there, a time.Time pair over a satellite pass; here, an
// integer second-offset pair over a compiled program's timeline).
// Exports use it to report each segment's start/end window.
type Period struct {
	Label        string
	Starts, Ends int
}

func (p Period) Duration() int {
	return p.Ends - p.Starts
}

func (p Period) IsZero() bool {
	return p.Starts == 0 && p.Ends == 0
}

func (p Period) Overlaps(o Period) bool {
	return !(o.Starts > p.Ends || o.Ends < p.Starts)
}

var windowOpeners = map[lang.EventType]bool{
	lang.EvStartBuyin: true, lang.EvStartCashout: true,
	lang.EvStartBlock: true, lang.EvRestStart: true,
}

var windowClosers = map[lang.EventType]bool{
	lang.EvEndBuyin: true, lang.EvEndCashout: true,
	lang.EvEndBlock: true, lang.EvRestEnd: true,
}

// windowsFromTimeline pairs each START_*/END_* (and REST_START/
// REST_END) event with its closing counterpart in emission order,
// producing one Period per top-level segment.
func windowsFromTimeline(events []lang.Event) []Period {
	var (
		out   []Period
		stack []Period
	)
	for _, e := range events {
		if windowOpeners[e.Type] {
			stack = append(stack, Period{Label: string(e.Type), Starts: e.T})
			continue
		}
		if windowClosers[e.Type] {
			if len(stack) == 0 {
				continue
			}
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			p.Ends = e.T
			out = append(out, p)
		}
	}
	return out
}

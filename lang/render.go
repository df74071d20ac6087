package lang

import (
	"fmt"
	"strings"
)

// Hhmmss formats seconds as "mm:ss" below the hour mark, else
// "hh:mm:ss", zero-padded, per the GLOSSARY.
func Hhmmss(totalSeconds int) string {
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	if totalSeconds < 3600 {
		return fmt.Sprintf("%02d:%02d", m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// RenderLine formats a single resolved line back to DSL-like text:
// "[qty ][movement][ @load][ flags]", trimmed of trailing whitespace.
// Used both by the timeline synthesizer (PROMPT/NEXT_SLOT text) and by
// exports.
func RenderLine(line *Line) string {
	var b strings.Builder
	if line.Qty != nil {
		b.WriteString(renderQty(line.Qty))
	}
	b.WriteString(line.Movement)
	if line.Load != nil {
		if s := renderLoad(line.Load); s != "" {
			b.WriteString(" ")
			b.WriteString(s)
		}
	}
	for _, f := range line.Flags {
		b.WriteString(" ")
		b.WriteString(f)
	}
	return strings.TrimRight(b.String(), " \t")
}

func renderQty(q *Qty) string {
	switch q.Kind {
	case QtyReps:
		return fmt.Sprintf("%d ", int(q.Value))
	case QtyCal:
		return fmt.Sprintf("%s cal ", trimFloat(q.Value))
	case QtyDistance:
		return fmt.Sprintf("%dm ", int(q.Value))
	case QtyTime:
		return Hhmmss(int(q.Value)) + " "
	default:
		return ""
	}
}

func renderLoad(l *Load) string {
	switch l.Kind {
	case LoadWeight, LoadHeight:
		return fmt.Sprintf("@%d%s", int(l.Value), l.Unit)
	case LoadDistance:
		return fmt.Sprintf("@%dm", int(l.Value))
	case LoadPercentRaw:
		return fmt.Sprintf("@%d%%", int(l.Value))
	case LoadRaw:
		return ""
	default:
		return ""
	}
}

// trimFloat prints a float without a trailing ".0" for whole numbers,
// matching how calorie counts are usually written by hand.
func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

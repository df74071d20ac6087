package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/wodcraft/wodc/lang"
)

// HTML renders a self-contained document listing segments with small
// badges for team size, cap, primary score and per-block annotations.
// No template library: the original implementation builds the HTML-ish
// document by string concatenation too, and the pack carries no HTML
// template dependency worth adding just for this one export.
func HTML(prog *lang.Program, events []lang.Event) []byte {
	title := "WODCraft Program"
	if prog.Meta.Title != nil {
		title = *prog.Meta.Title
	}
	windows := windowsFromTimeline(events)

	var b strings.Builder
	fmt.Fprintf(&b, "<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head><body>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "<h1>%s</h1>\n<div class=\"badges\">\n", html.EscapeString(title))
	if prog.Meta.Team != nil {
		fmt.Fprintf(&b, "<span class=\"badge\">team: %d</span>\n", prog.Meta.Team.Size)
	}
	if prog.Meta.Cap != nil {
		fmt.Fprintf(&b, "<span class=\"badge\">cap: %dm</span>\n", *prog.Meta.Cap/60)
	}
	if primary, ok := prog.Meta.Score["primary"]; ok {
		fmt.Fprintf(&b, "<span class=\"badge\">score: %s</span>\n", html.EscapeString(primary))
	}
	b.WriteString("</div>\n<ol class=\"segments\">\n")

	wi := 0
	nextWindow := func() (Period, bool) {
		if wi >= len(windows) {
			return Period{}, false
		}
		w := windows[wi]
		wi++
		return w, true
	}

	for _, seg := range prog.Body {
		switch seg.Kind {
		case lang.SegBuyin, lang.SegCashout:
			w, _ := nextWindow()
			fmt.Fprintf(&b, "<li class=\"segment buyin\">%s %s\n<ul>\n", string(seg.Kind), windowLabel(w))
			for _, l := range seg.Lines {
				fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(lang.RenderLine(l)))
			}
			b.WriteString("</ul></li>\n")
		case lang.SegRest:
			w, _ := nextWindow()
			fmt.Fprintf(&b, "<li class=\"segment rest\">REST %s %s</li>\n", lang.Hhmmss(seg.Duration), windowLabel(w))
		case lang.SegBlock:
			w, _ := nextWindow()
			fmt.Fprintf(&b, "<li class=\"segment block\">%s %s\n", seg.Block.Head.Mode, windowLabel(w))
			writeBlockAnnotations(&b, seg.Block)
			b.WriteString("<ul>\n")
			for _, st := range seg.Block.Stmts {
				line := html.EscapeString(lang.RenderLine(st.Line))
				if st.Slot > 0 {
					fmt.Fprintf(&b, "<li>%d: %s</li>\n", st.Slot, line)
				} else {
					fmt.Fprintf(&b, "<li>%s</li>\n", line)
				}
			}
			b.WriteString("</ul></li>\n")
		case lang.SegTrackBlock:
			fmt.Fprintf(&b, "<li class=\"segment track ignored\">TRACK %s (ignored)</li>\n", html.EscapeString(seg.TrackID))
		}
	}
	b.WriteString("</ol>\n</body></html>\n")
	return []byte(b.String())
}

func windowLabel(w Period) string {
	if w.IsZero() && w.Label == "" {
		return ""
	}
	return fmt.Sprintf("(%s–%s)", lang.Hhmmss(w.Starts), lang.Hhmmss(w.Ends))
}

func writeBlockAnnotations(b *strings.Builder, block *lang.Block) {
	if block.Work != nil {
		fmt.Fprintf(b, "<span class=\"annotation work\">WORK %s</span>\n", block.Work.Kind)
	}
	if block.Partition != nil {
		fmt.Fprintf(b, "<span class=\"annotation partition\">PARTITION %s</span>\n", block.Partition.Kind)
	}
	if block.Cap != nil {
		fmt.Fprintf(b, "<span class=\"annotation cap\">CAP %s</span>\n", lang.Hhmmss(*block.Cap))
	}
	if block.Tiebreak != nil {
		if block.Tiebreak.Kind == lang.TiebreakMovement {
			fmt.Fprintf(b, "<span class=\"annotation tiebreak\">TIEBREAK after movement %s</span>\n", html.EscapeString(block.Tiebreak.Movement))
		} else {
			fmt.Fprintf(b, "<span class=\"annotation tiebreak\">TIEBREAK after %d %s</span>\n", block.Tiebreak.Count, block.Tiebreak.Unit)
		}
	}
}

package export

import (
	"crypto/sha1"
	"fmt"
	"strings"

	"github.com/wodcraft/wodc/lang"
)

// icsEscape escapes text for ICS TEXT values (RFC 5545 §3.3.11):
// backslash, semicolon, comma, then newline last so the other
// escapes' inserted backslashes are not themselves re-escaped.
func icsEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`)
	s = r.Replace(s)
	return strings.ReplaceAll(s, "\n", `\n`)
}

// icsUID derives a stable calendar UID from the source file path using
// a content hash, replacing the original implementation's dependency
// on Python's randomized hash() builtin — see SPEC_FULL.md's
// SUPPLEMENTED FEATURES #2. sha1 mirrors busoc-assist's own use of a
// hash.Hash digest (crypto/md5, over command files) to fingerprint
// inputs deterministically.
func icsUID(sourcePath string) string {
	sum := sha1.Sum([]byte(sourcePath))
	return fmt.Sprintf("%x@wodcraft", sum)
}

// ICS renders a single VEVENT summarizing the program: DURATION is the
// declared cap, or (when absent) the sum of REST durations and block
// estimates recovered from the timeline. DTSTAMP/DTSTART are fixed:
// this is a program template, not a scheduled occurrence.
func ICS(prog *lang.Program, events []lang.Event, sourcePath string) []byte {
	capSecs := capSeconds(prog, events)

	title := "WODCraft Program"
	if prog.Meta.Title != nil {
		title = *prog.Meta.Title
	}

	var desc strings.Builder
	for _, seg := range prog.Body {
		switch seg.Kind {
		case lang.SegBuyin:
			desc.WriteString("BUYIN\\n")
			writeLines(&desc, seg.Lines)
		case lang.SegCashout:
			desc.WriteString("CASHOUT\\n")
			writeLines(&desc, seg.Lines)
		case lang.SegRest:
			desc.WriteString(fmt.Sprintf("REST %s\\n", lang.Hhmmss(seg.Duration)))
		case lang.SegBlock:
			desc.WriteString(fmt.Sprintf("%s\\n", seg.Block.Head.Mode))
			for _, st := range seg.Block.Stmts {
				desc.WriteString("- " + icsEscape(lang.RenderLine(st.Line)) + "\\n")
			}
		}
	}

	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//wodcraft//wodc//EN\r\n")
	b.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(&b, "UID:%s\r\n", icsUID(sourcePath))
	b.WriteString("DTSTAMP:19700101T000000Z\r\n")
	b.WriteString("DTSTART:19700101T000000Z\r\n")
	fmt.Fprintf(&b, "DURATION:PT%dS\r\n", capSecs)
	fmt.Fprintf(&b, "SUMMARY:%s\r\n", icsEscape(title))
	fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", desc.String())
	b.WriteString("END:VEVENT\r\n")
	b.WriteString("END:VCALENDAR\r\n")
	return []byte(b.String())
}

func writeLines(b *strings.Builder, lines []*lang.Line) {
	for _, l := range lines {
		b.WriteString("- " + icsEscape(lang.RenderLine(l)) + "\\n")
	}
}

// capSeconds implements spec.md §6's ICS cap-defaulting rule.
func capSeconds(prog *lang.Program, events []lang.Event) int {
	if prog.Meta.Cap != nil {
		return *prog.Meta.Cap
	}
	var total int
	for _, seg := range prog.Body {
		if seg.Kind == lang.SegRest {
			total += seg.Duration
		}
	}
	for _, w := range windowsFromTimeline(events) {
		if strings.HasPrefix(w.Label, "START_BLOCK") {
			total += w.Duration()
		}
	}
	return total
}

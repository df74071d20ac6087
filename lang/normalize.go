package lang

import "strings"

// Normalize applies the fmt pass described in spec.md §4.6: strip
// trailing whitespace per line, collapse any run of blank lines to a
// single blank line, and guarantee exactly one trailing newline. It is
// idempotent and never produces "\n\n\n".
func Normalize(src string) string {
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\r")
	}

	var out []string
	blank := false
	for _, l := range lines {
		if l == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, l)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n") + "\n"
}

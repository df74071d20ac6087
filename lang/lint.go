package lang

import (
	"fmt"
	"regexp"
)

// Diagnostic is one lint finding. Path is a stable locator string
// (e.g. "BLOCK[2].LINE[0]", "REST[4]", "META") so tests can assert on
// Code without matching brittle message text.
type Diagnostic struct {
	Level string `json:"level"`
	Code  string `json:"code"`
	Path  string `json:"path"`
	Msg   string `json:"msg"`
}

var rawLoadPattern = regexp.MustCompile(`^\d+(\.\d+)?(kg|lb|cm|in|m|km|%.*)?$`)

// Lint walks a resolved AST and returns its diagnostics. Resolver
// alias notes (W050) are reported first, in the order Resolve recorded
// them, followed by the structural walk over BUYIN/CASHOUT/BLOCK
// bodies — matching wodc_merged.py's lint(), which concatenates
// resolver issues ahead of its own findings.
func Lint(prog *Program) []Diagnostic {
	var diags []Diagnostic

	for _, note := range prog.Meta.Normalized {
		diags = append(diags, Diagnostic{
			Level: "warning", Code: "W050", Path: "META",
			Msg: fmt.Sprintf("movement %q normalized to %q", note.From, note.To),
		})
	}

	restIdx := 0
	blockIdx := 0
	for _, seg := range prog.Body {
		switch seg.Kind {
		case SegBuyin:
			diags = append(diags, lintLines("BUYIN", seg.Lines)...)
		case SegCashout:
			diags = append(diags, lintLines("CASHOUT", seg.Lines)...)
		case SegRest:
			path := fmt.Sprintf("REST[%d]", restIdx)
			restIdx++
			if seg.Duration <= 0 {
				diags = append(diags, Diagnostic{
					Level: "error", Code: "E010", Path: path,
					Msg: fmt.Sprintf("REST duration %d must be > 0", seg.Duration),
				})
			}
		case SegBlock:
			path := fmt.Sprintf("BLOCK[%d]", blockIdx)
			blockIdx++
			diags = append(diags, lintBlock(path, seg.Block)...)
		}
	}
	return diags
}

func lintBlock(path string, b *Block) []Diagnostic {
	var diags []Diagnostic
	if b.Head.Mode == ModeEMOM {
		hasSlot := false
		for _, st := range b.Stmts {
			if st.Slot > 0 {
				hasSlot = true
				break
			}
		}
		if !hasSlot {
			diags = append(diags, Diagnostic{
				Level: "error", Code: "E020", Path: path,
				Msg: "EMOM block has no slot-lines",
			})
		}
	}
	for i, st := range b.Stmts {
		linePath := fmt.Sprintf("%s.LINE[%d]", path, i)
		diags = append(diags, lintLine(linePath, st.Line)...)
	}
	return diags
}

func lintLines(kind string, lines []*Line) []Diagnostic {
	var diags []Diagnostic
	for i, line := range lines {
		diags = append(diags, lintLine(fmt.Sprintf("%s.LINE[%d]", kind, i), line)...)
	}
	return diags
}

func lintLine(path string, line *Line) []Diagnostic {
	var diags []Diagnostic
	if !KnownMovements[line.Movement] {
		diags = append(diags, Diagnostic{
			Level: "warning", Code: "W001", Path: path,
			Msg: fmt.Sprintf("movement %q is not in the known-movement set", line.Movement),
		})
	}
	if line.Load != nil && line.Load.Kind == LoadRaw && !rawLoadPattern.MatchString(line.Load.Raw) {
		diags = append(diags, Diagnostic{
			Level: "warning", Code: "W002", Path: path,
			Msg: fmt.Sprintf("load %q does not look like a recognized load token", line.Load.Raw),
		})
	}
	return diags
}

// HasError reports whether any diagnostic is at error level, the
// condition that makes `lint` exit nonzero.
func HasError(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Level == "error" {
			return true
		}
	}
	return false
}

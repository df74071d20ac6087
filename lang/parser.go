package lang

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Parse lexes and parses source text into a Program. It is the only
// entry point callers outside the package need for the parse stage;
// the resulting AST still carries dual quantities/loads and raw
// movement names until Resolve runs.
func Parse(src string) (*Program, error) {
	toks, err := newLexer(src).tokenize()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.parseProgram()
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) next() token { t := p.toks[p.pos]; if p.pos < len(p.toks)-1 { p.pos++ }; return t }
func (p *parser) at(off int) token {
	i := p.pos + off
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", p.cur().line, fmt.Sprintf(format, args...))
}

// skipNewlines consumes any run of blank-line tokens; newlines are
// only significant as statement terminators, never as structure.
func (p *parser) skipNewlines() {
	for p.cur().kind == tokNewline {
		p.next()
	}
}

func (p *parser) isIdent(text string) bool {
	return p.cur().kind == tokIdent && p.cur().text == text
}

func (p *parser) isSymbol(text string) bool {
	return p.cur().kind == tokSymbol && p.cur().text == text
}

func (p *parser) expectSymbol(text string) error {
	if !p.isSymbol(text) {
		return p.errf("expected %q, found %q", text, p.cur().text)
	}
	p.next()
	return nil
}

func (p *parser) expectIdent(text string) error {
	if !p.isIdent(text) {
		return p.errf("expected %q, found %q", text, p.cur().text)
	}
	p.next()
	return nil
}

// metaKeywords identifies the tokens that begin a meta declaration;
// they may appear interleaved with segments (the grammar's own
// `segment: score_line | ...` rule already allows SCORE mid-body, and
// nothing here prevents later WOD/TEAM/CAP/TRACKS redeclaration —
// later values simply win, which is left unspecified rather than
// rejected).
var metaKeywords = map[string]bool{
	"WOD": true, "TEAM": true, "CAP": true, "SCORE": true, "TRACKS": true,
}

func (p *parser) parseProgram() (*Program, error) {
	prog := &Program{Meta: Meta{Score: map[string]string{}}}
	p.skipNewlines()
	for p.cur().kind != tokEOF {
		if p.cur().kind == tokIdent && metaKeywords[p.cur().text] {
			if err := p.parseMeta(&prog.Meta); err != nil {
				return nil, err
			}
		} else {
			seg, err := p.parseSegment()
			if err != nil {
				return nil, err
			}
			prog.Body = append(prog.Body, *seg)
		}
		p.skipNewlines()
	}
	if len(prog.Meta.Score) == 0 {
		prog.Meta.Score = nil
	}
	return prog, nil
}

func (p *parser) parseMeta(m *Meta) error {
	switch p.cur().text {
	case "WOD":
		p.next()
		if p.cur().kind != tokString {
			return p.errf("WOD requires a quoted title")
		}
		title := p.next().text
		m.Title = &title
	case "TEAM":
		p.next()
		n, err := p.parseInt()
		if err != nil {
			return err
		}
		m.Team = &TeamMeta{Size: n}
	case "CAP":
		p.next()
		secs, err := p.parseTimeValue()
		if err != nil {
			return err
		}
		m.Cap = &secs
	case "SCORE":
		p.next()
		raw := p.scanRestOfLine()
		for _, pair := range strings.Split(raw, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			kv := strings.SplitN(pair, "=", 2)
			if len(kv) == 2 {
				m.Score[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
			}
		}
	case "TRACKS":
		p.next()
		if err := p.expectSymbol("["); err != nil {
			return err
		}
		for !p.isSymbol("]") {
			if p.cur().kind != tokIdent {
				return p.errf("expected track identifier, found %q", p.cur().text)
			}
			m.TracksDeclared = append(m.TracksDeclared, p.next().text)
			if p.isSymbol(",") {
				p.next()
			}
		}
		p.next() // ']'
	}
	return p.consumeTerminator()
}

// scanRestOfLine consumes raw tokens until the next newline/EOF and
// reconstitutes them, used for SCORE's free-form "k=v,k2=v2" tail.
func (p *parser) scanRestOfLine() string {
	var b strings.Builder
	for p.cur().kind != tokNewline && p.cur().kind != tokEOF && !p.isSymbol(";") {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.next().text)
	}
	return b.String()
}

func (p *parser) consumeTerminator() error {
	if p.cur().kind == tokNewline || p.isSymbol(";") {
		p.next()
		return nil
	}
	if p.cur().kind == tokEOF || p.isSymbol("}") {
		return nil
	}
	return p.errf("expected end of line, found %q", p.cur().text)
}

func (p *parser) parseSegment() (*Segment, error) {
	if p.cur().kind != tokIdent {
		return nil, p.errf("expected a segment, found %q", p.cur().text)
	}
	switch p.cur().text {
	case "BUYIN", "CASHOUT":
		kind := SegBuyin
		if p.cur().text == "CASHOUT" {
			kind = SegCashout
		}
		p.next()
		lines, err := p.parseLineBody()
		if err != nil {
			return nil, err
		}
		return &Segment{Kind: kind, Lines: lines}, nil
	case "REST":
		p.next()
		secs, err := p.parseTimeValue()
		if err != nil {
			return nil, err
		}
		if err := p.consumeTerminator(); err != nil {
			return nil, err
		}
		return &Segment{Kind: SegRest, Duration: secs}, nil
	case "BLOCK":
		p.next()
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &Segment{Kind: SegBlock, Block: block}, nil
	case "TRACK":
		p.next()
		if p.cur().kind != tokIdent {
			return nil, p.errf("TRACK requires an identifier")
		}
		id := p.next().text
		// Parsed and discarded: see DESIGN.md open-question decision.
		if _, err := p.parseLineBody(); err != nil {
			return nil, err
		}
		return &Segment{Kind: SegTrackBlock, TrackID: id, Ignored: true}, nil
	default:
		return nil, p.errf("unrecognized segment %q", p.cur().text)
	}
}

// parseLineBody parses "{" <line>+ "}" and rejects an empty body, used
// by BUYIN/CASHOUT/TRACK.
func (p *parser) parseLineBody() ([]*Line, error) {
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	var lines []*Line
	for !p.isSymbol("}") {
		if p.cur().kind == tokEOF {
			return nil, p.errf("unterminated block: missing '}'")
		}
		line, err := p.parseLine()
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
		if err := p.consumeTerminator(); err != nil {
			return nil, err
		}
		p.skipNewlines()
	}
	p.next() // '}'
	if len(lines) == 0 {
		return nil, p.errf("empty body: at least one line is required")
	}
	return lines, nil
}

var blockModes = map[string]BlockMode{
	"AMRAP": ModeAMRAP, "EMOM": ModeEMOM, "FT": ModeFT, "RFT": ModeRFT,
	"CHIPPER": ModeChipper, "TABATA": ModeTabata, "INTERVAL": ModeInterval,
}

func (p *parser) parseBlock() (*Block, error) {
	if p.cur().kind != tokIdent || blockModes[p.cur().text] == "" {
		return nil, p.errf("unrecognized block mode %q", p.cur().text)
	}
	mode := blockModes[p.next().text]
	head := BlockHead{Mode: mode}
	switch mode {
	case ModeAMRAP, ModeEMOM:
		d, err := p.parseTimeValue()
		if err != nil {
			return nil, p.errf("%s requires a duration: %v", mode, err)
		}
		head.Duration = d
	case ModeRFT:
		n, err := p.parseInt()
		if err != nil {
			return nil, p.errf("RFT requires a round count: %v", err)
		}
		head.Rounds = n
	case ModeFT, ModeChipper:
		// no parameters
	case ModeTabata:
		work, err := p.parseTimeValue()
		if err != nil {
			return nil, p.errf("TABATA requires a work time: %v", err)
		}
		if err := p.expectSymbol(":"); err != nil {
			return nil, err
		}
		rest, err := p.parseTimeValue()
		if err != nil {
			return nil, p.errf("TABATA requires a rest time: %v", err)
		}
		if err := p.expectIdent("x"); err != nil {
			return nil, err
		}
		sets, err := p.parseInt()
		if err != nil {
			return nil, p.errf("TABATA requires a set count: %v", err)
		}
		head.Work, head.Rest, head.Sets = work, rest, sets
	case ModeInterval:
		sets, err := p.parseInt()
		if err != nil {
			return nil, p.errf("INTERVAL requires a set count: %v", err)
		}
		if err := p.expectIdent("x"); err != nil {
			return nil, err
		}
		if err := p.expectSymbol("("); err != nil {
			return nil, err
		}
		work, err := p.parseTimeValue()
		if err != nil {
			return nil, p.errf("INTERVAL requires a work time: %v", err)
		}
		if err := p.expectIdent("on"); err != nil {
			return nil, err
		}
		if err := p.expectSymbol("/"); err != nil {
			return nil, err
		}
		rest, err := p.parseTimeValue()
		if err != nil {
			return nil, p.errf("INTERVAL requires a rest time: %v", err)
		}
		if err := p.expectIdent("off"); err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		head.Sets, head.Work, head.Rest = sets, work, rest
	}

	block := &Block{Head: head}
	for {
		p.skipNewlines()
		if p.isIdent("WORK") {
			w, err := p.parseWorkOpt()
			if err != nil {
				return nil, err
			}
			block.Work = w
			continue
		}
		if p.isIdent("PARTITION") {
			part, err := p.parsePartitionOpt()
			if err != nil {
				return nil, err
			}
			block.Partition = part
			continue
		}
		if p.isIdent("CAP") {
			p.next()
			c, err := p.parseTimeValue()
			if err != nil {
				return nil, err
			}
			block.Cap = &c
			continue
		}
		break
	}

	stmts, err := p.parseStmtBody()
	if err != nil {
		return nil, err
	}
	block.Stmts = stmts

	p.skipNewlines()
	if p.isIdent("TIEBREAK") {
		tb, err := p.parseTiebreak()
		if err != nil {
			return nil, err
		}
		block.Tiebreak = tb
	}
	return block, nil
}

func (p *parser) parseWorkOpt() (*WorkOpt, error) {
	p.next() // WORK
	switch {
	case p.isIdent("split"):
		p.next()
		if err := p.expectSymbol(":"); err != nil {
			return nil, err
		}
		if p.isIdent("any") {
			p.next()
			return &WorkOpt{Kind: WorkSplitAny}, nil
		}
		if p.isIdent("even") {
			p.next()
			return &WorkOpt{Kind: WorkSplitEven}, nil
		}
		return nil, p.errf("expected 'any' or 'even' after split:")
	case p.isIdent("ygig"):
		p.next()
		return &WorkOpt{Kind: WorkYgig}, nil
	case p.isIdent("relay"):
		p.next()
		return &WorkOpt{Kind: WorkRelay}, nil
	case p.isIdent("waterfall"):
		p.next()
		if err := p.expectIdent("offset"); err != nil {
			return nil, err
		}
		if err := p.expectSymbol(":"); err != nil {
			return nil, err
		}
		off, err := p.parseTimeValue()
		if err != nil {
			return nil, err
		}
		return &WorkOpt{Kind: WorkWaterfall, OffsetSec: off}, nil
	case p.isIdent("synchro"):
		p.next()
		if p.isIdent("all") {
			p.next()
			return &WorkOpt{Kind: WorkSynchroAll}, nil
		}
		if err := p.expectIdent("lines"); err != nil {
			return nil, err
		}
		if err := p.expectSymbol(":"); err != nil {
			return nil, err
		}
		if err := p.expectSymbol("["); err != nil {
			return nil, err
		}
		var nums []int
		for !p.isSymbol("]") {
			n, err := p.parseInt()
			if err != nil {
				return nil, err
			}
			nums = append(nums, n)
			if p.isSymbol(",") {
				p.next()
			}
		}
		p.next() // ']'
		return &WorkOpt{Kind: WorkSynchroLines, Lines: nums}, nil
	default:
		return nil, p.errf("unrecognized WORK form %q", p.cur().text)
	}
}

func (p *parser) parsePartitionOpt() (*PartitionOpt, error) {
	p.next() // PARTITION
	switch {
	case p.isIdent("any"):
		p.next()
		return &PartitionOpt{Kind: PartitionAny}, nil
	case p.isIdent("even"):
		p.next()
		return &PartitionOpt{Kind: PartitionEven}, nil
	case p.isIdent("scheme"):
		p.next()
		var scheme []int
		n, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		scheme = append(scheme, n)
		for p.isSymbol("-") {
			p.next()
			n, err := p.parseInt()
			if err != nil {
				return nil, err
			}
			scheme = append(scheme, n)
		}
		return &PartitionOpt{Kind: PartitionScheme, Scheme: scheme}, nil
	default:
		return nil, p.errf("unrecognized PARTITION form %q", p.cur().text)
	}
}

func (p *parser) parseTiebreak() (*Tiebreak, error) {
	p.next() // TIEBREAK
	if err := p.expectIdent("after"); err != nil {
		return nil, err
	}
	if p.isIdent("movement") {
		p.next()
		if p.cur().kind != tokIdent {
			return nil, p.errf("expected movement identifier after 'movement'")
		}
		return &Tiebreak{Kind: TiebreakMovement, Movement: p.next().text}, nil
	}
	n, err := p.parseInt()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokIdent || (p.cur().text != "thrusters" && p.cur().text != "reps" && p.cur().text != "cal") {
		return nil, p.errf("expected 'thrusters', 'reps' or 'cal' after tiebreak count")
	}
	unit := p.next().text
	return &Tiebreak{Kind: TiebreakCount, Count: n, Unit: unit}, nil
}

// parseStmtBody parses "{" <stmt>+ "}", where a stmt is either a bare
// line or "<int> : <line>".
func (p *parser) parseStmtBody() ([]*Stmt, error) {
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	var stmts []*Stmt
	for !p.isSymbol("}") {
		if p.cur().kind == tokEOF {
			return nil, p.errf("unterminated block: missing '}'")
		}
		slot := 0
		if p.cur().kind == tokNumber && isPlainInt(p.cur().text) && p.at(1).kind == tokSymbol && p.at(1).text == ":" {
			n, _ := strconv.Atoi(p.cur().text)
			slot = n
			p.next() // int
			p.next() // ':'
		}
		line, err := p.parseLine()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, &Stmt{Slot: slot, Line: line})
		if err := p.consumeTerminator(); err != nil {
			return nil, err
		}
		p.skipNewlines()
	}
	p.next() // '}'
	if len(stmts) == 0 {
		return nil, p.errf("empty body: at least one statement is required")
	}
	return stmts, nil
}

func isPlainInt(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return true
}

// parseLine parses "<qty>? <movement> (@<load>)? <flag>*".
func (p *parser) parseLine() (*Line, error) {
	line := &Line{}
	if p.cur().kind == tokNumber {
		qty, err := p.parseQuantity()
		if err != nil {
			return nil, err
		}
		line.Qty = qty
	}
	if p.cur().kind != tokIdent {
		return nil, p.errf("expected a movement identifier, found %q", p.cur().text)
	}
	// underscore-joined movement names (wall_balls, sandbag_carry) lex
	// as a single identifier since '_' is a legal identifier rune.
	line.Movement = p.next().text

	if p.isSymbol("@") && p.at(1).text != "shared" && p.at(1).text != "each" {
		p.next()
		load, err := p.parseLoad()
		if err != nil {
			return nil, err
		}
		line.Load = load
	}

	for {
		if p.isIdent("SYNC") {
			line.Flags = append(line.Flags, "SYNC")
			p.next()
			continue
		}
		if p.isSymbol("@") && (p.at(1).text == "shared" || p.at(1).text == "each") {
			p.next()
			line.Flags = append(line.Flags, "@"+p.next().text)
			continue
		}
		break
	}
	return line, nil
}

// parseInt reads a plain integer token (used for TEAM, RFT, slot
// scheme numbers, set/round counts).
func (p *parser) parseInt() (int, error) {
	if p.cur().kind != tokNumber || !isPlainInt(p.cur().text) {
		return 0, p.errf("expected an integer, found %q", p.cur().text)
	}
	n, err := strconv.Atoi(p.next().text)
	if err != nil {
		return 0, p.errf("malformed integer: %v", err)
	}
	return n, nil
}

var timeMMSS = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
var timeSeconds = regexp.MustCompile(`^(\d+)s$`)

// parseTimeValue reads a "mm:ss" or "Ns" token and returns seconds.
func (p *parser) parseTimeValue() (int, error) {
	if p.cur().kind != tokNumber {
		return 0, p.errf("expected a time value, found %q", p.cur().text)
	}
	raw := p.cur().text
	if m := timeMMSS.FindStringSubmatch(raw); m != nil {
		p.next()
		mm, _ := strconv.Atoi(m[1])
		ss, _ := strconv.Atoi(m[2])
		return mm*60 + ss, nil
	}
	if m := timeSeconds.FindStringSubmatch(raw); m != nil {
		p.next()
		n, _ := strconv.Atoi(m[1])
		return n, nil
	}
	return 0, p.errf("malformed time value %q, expected mm:ss or Ns", raw)
}

var (
	reDualReps     = regexp.MustCompile(`^(\d+)/(\d+)$`)
	reDualUnit     = regexp.MustCompile(`^(\d+(?:\.\d+)?)/(\d+(?:\.\d+)?)(m|km)$`)
	rePlainInt     = regexp.MustCompile(`^\d+$`)
	reDistUnit     = regexp.MustCompile(`^(\d+(?:\.\d+)?)(m|km)$`)
)

// parseQuantity classifies the current number token against the
// precedence table in §4.1: dual forms are tried before their
// single-value equivalents, and the presence of a following bare "cal"
// identifier (no space-sensitivity survives past the lexer) decides
// the calorie forms.
func (p *parser) parseQuantity() (*Qty, error) {
	raw := p.next().text

	if m := reDualUnit.FindStringSubmatch(raw); m != nil {
		a, _ := strconv.ParseFloat(m[1], 64)
		b, _ := strconv.ParseFloat(m[2], 64)
		if m[3] == "km" {
			a, b = a*1000, b*1000
		}
		return &Qty{Kind: QtyDualDistance, A: a, B: b, Unit: "m"}, nil
	}
	if m := reDualReps.FindStringSubmatch(raw); m != nil {
		if p.isIdent("cal") {
			p.next()
			a, _ := strconv.ParseFloat(m[1], 64)
			b, _ := strconv.ParseFloat(m[2], 64)
			return &Qty{Kind: QtyDualCal, A: a, B: b}, nil
		}
		a, _ := strconv.ParseFloat(m[1], 64)
		b, _ := strconv.ParseFloat(m[2], 64)
		return &Qty{Kind: QtyDualReps, A: a, B: b}, nil
	}
	// a dual with decimal reps components only makes sense as dual_cal
	if strings.Contains(raw, "/") && p.isIdent("cal") {
		parts := strings.SplitN(raw, "/", 2)
		a, errA := strconv.ParseFloat(parts[0], 64)
		b, errB := strconv.ParseFloat(parts[1], 64)
		if errA == nil && errB == nil {
			p.next()
			return &Qty{Kind: QtyDualCal, A: a, B: b}, nil
		}
	}
	if rePlainInt.MatchString(raw) {
		if p.isIdent("cal") {
			p.next()
			v, _ := strconv.ParseFloat(raw, 64)
			return &Qty{Kind: QtyCal, Value: v}, nil
		}
		n, _ := strconv.Atoi(raw)
		return &Qty{Kind: QtyReps, Value: float64(n)}, nil
	}
	if p.isIdent("cal") {
		p.next()
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, p.errf("malformed calorie quantity %q", raw)
		}
		return &Qty{Kind: QtyCal, Value: v}, nil
	}
	if m := reDistUnit.FindStringSubmatch(raw); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		if m[2] == "km" {
			v *= 1000
		}
		return &Qty{Kind: QtyDistance, Value: v, Unit: "m"}, nil
	}
	if m := timeMMSS.FindStringSubmatch(raw); m != nil {
		mm, _ := strconv.Atoi(m[1])
		ss, _ := strconv.Atoi(m[2])
		return &Qty{Kind: QtyTime, Value: float64(mm*60 + ss)}, nil
	}
	if m := timeSeconds.FindStringSubmatch(raw); m != nil {
		n, _ := strconv.Atoi(m[1])
		return &Qty{Kind: QtyTime, Value: float64(n)}, nil
	}
	return nil, p.errf("unrecognized quantity %q", raw)
}

var (
	reLoadDual = regexp.MustCompile(`^(\d+(?:\.\d+)?)/(\d+(?:\.\d+)?)(kg|lb|cm|in|km|m|%)$`)
	reLoadUnit = regexp.MustCompile(`^(\d+(?:\.\d+)?)(kg|lb|cm|in|km|m|%)$`)
)

// parseLoad classifies the token following "@" against the LOADVAL /
// LOADDUAL shapes; anything else becomes a raw load (flagged later by
// the linter's W002 if it doesn't even look numeric).
func (p *parser) parseLoad() (*Load, error) {
	raw := p.scanLoadText()
	if m := reLoadDual.FindStringSubmatch(raw); m != nil {
		a := structuredLoad(m[1], m[3])
		b := structuredLoad(m[2], m[3])
		return &Load{Kind: LoadDual, A: a, B: b}, nil
	}
	if m := reLoadUnit.FindStringSubmatch(raw); m != nil {
		return structuredLoad(m[1], m[2]), nil
	}
	return &Load{Kind: LoadRaw, Raw: raw}, nil
}

// scanLoadText consumes one token's worth of text after "@": either a
// single tokNumber (the common case), or a bare identifier (e.g.
// "@bodyweight") which always falls through to a raw load.
func (p *parser) scanLoadText() string {
	if p.cur().kind == tokNumber || p.cur().kind == tokIdent {
		return p.next().text
	}
	return p.next().text
}

func structuredLoad(numText, unit string) *Load {
	v, _ := strconv.ParseFloat(numText, 64)
	switch unit {
	case "kg", "lb":
		return &Load{Kind: LoadWeight, Value: v, Unit: unit}
	case "cm", "in":
		return &Load{Kind: LoadHeight, Value: v, Unit: unit}
	case "m":
		return &Load{Kind: LoadDistance, Value: v, Unit: "m"}
	case "km":
		return &Load{Kind: LoadDistance, Value: v * 1000, Unit: "m"}
	case "%":
		return &Load{Kind: LoadPercentRaw, Value: v}
	}
	return &Load{Kind: LoadRaw, Raw: numText + unit}
}

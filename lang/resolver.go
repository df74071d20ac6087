package lang

import "strings"

// movementAliases is the fixed alias table from the GLOSSARY. Entries
// that already name a canonical movement are intentionally absent:
// Resolve only records a W050 note when the lookup actually changes
// the name.
var movementAliases = map[string]string{
	"wb":                  "wall_balls",
	"wallball":            "wall_balls",
	"bj":                  "box_jumps",
	"box_jump":            "box_jumps",
	"pu":                  "pullups",
	"pull_up":             "pullups",
	"rr":                  "ring_rows",
	"ring_row":            "ring_rows",
	"t2b":                 "toes_to_bar",
	"ttb":                 "toes_to_bar",
	"du":                  "double_unders",
	"dus":                 "double_unders",
	"double_under":        "double_unders",
	"echo_bike":           "bike",
	"bbjo":                "burpee_box_jump_over",
	"bjo":                 "burpee_box_jump_over",
	"burpee_box_jumps":    "burpee_box_jump_over",
	"rc":                  "rope_climbs",
	"rope_climb":          "rope_climbs",
	"pc":                  "power_clean",
	"cleans":              "clean",
	"sb_carry":            "sandbag_carry",
	"burpee":              "burpees",
}

// KnownMovements is the fixed known-movement set from the GLOSSARY,
// checked post-alias by the linter's W001 rule.
var KnownMovements = map[string]bool{
	"wall_balls": true, "box_jumps": true, "run": true, "thrusters": true,
	"pullups": true, "ring_rows": true, "bike": true, "burpees": true,
	"sandbag_carry": true, "hollow_hold": true, "toes_to_bar": true, "row": true,
	"double_unders": true, "clean": true, "rope_climbs": true,
	"burpee_box_jump_over": true, "power_clean": true, "assault_bike": true,
}

// Gender selects the branch of a dual-valued quantity or load.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ResolveOptions configures a Resolve pass.
type ResolveOptions struct {
	Catalog *Catalog
	Track   string // declared track identifier; empty defaults to "RX"
	Gender  Gender // defaults to Male
}

// Resolve mutates prog in place: canonicalizing movement aliases,
// collapsing dual quantities/loads to the selected gender branch, and
// filling missing quantities/loads from the catalog. It is idempotent:
// running it again on its own output is a no-op (aliases are already
// canonical, there are no dual kinds left to collapse, and catalog
// defaulting only fires when a field is still missing).
func Resolve(prog *Program, opts ResolveOptions) {
	track := opts.Track
	if track == "" {
		track = "RX"
	}
	gender := opts.Gender
	if gender == "" {
		gender = Male
	}
	trackKey := strings.ToLower(track)

	var lines []*Line
	for _, seg := range prog.Body {
		switch seg.Kind {
		case SegBuyin, SegCashout:
			lines = append(lines, seg.Lines...)
		case SegBlock:
			for _, st := range seg.Block.Stmts {
				lines = append(lines, st.Line)
			}
		}
	}

	for _, line := range lines {
		resolveAlias(line, prog)
		resolveDual(line, gender)
		applyCatalog(line, opts.Catalog, trackKey, gender)
	}
}

func resolveAlias(line *Line, prog *Program) {
	canon, ok := movementAliases[line.Movement]
	if !ok || canon == line.Movement {
		return
	}
	prog.Meta.Normalized = append(prog.Meta.Normalized, AliasNote{
		Code: "W050", From: line.Movement, To: canon,
	})
	line.Movement = canon
}

func resolveDual(line *Line, gender Gender) {
	if line.Qty != nil && line.Qty.Kind.isDual() {
		v := line.Qty.A
		if gender == Female {
			v = line.Qty.B
		}
		kind := QtyReps
		switch line.Qty.Kind {
		case QtyDualCal:
			kind = QtyCal
		case QtyDualDistance:
			kind = QtyDistance
		}
		line.Qty = &Qty{Kind: kind, Value: v, Unit: line.Qty.Unit}
	}
	if line.Load != nil && line.Load.Kind == LoadDual {
		branch := line.Load.A
		if gender == Female {
			branch = line.Load.B
		}
		line.Load = branch
	}
}

// applyCatalog fills a missing qty or load from the catalog. It never
// overwrites a value the author supplied, except a distance qty whose
// value is exactly 0 — spec.md §4.2 treats that as "missing" too.
func applyCatalog(line *Line, cat *Catalog, trackKey string, gender Gender) {
	if cat == nil {
		return
	}
	mv, ok := cat.Movements[line.Movement]
	if !ok {
		return
	}

	missingQty := line.Qty == nil || (line.Qty.Kind == QtyDistance && line.Qty.Value == 0)
	if missingQty {
		if reps, ok := lookupInt(mv.Reps, trackKey, gender); ok {
			line.Qty = &Qty{Kind: QtyReps, Value: float64(reps)}
		} else if dist, ok := lookupFloat(mv.Distance, trackKey, gender); ok {
			line.Qty = &Qty{Kind: QtyDistance, Value: dist, Unit: "m"}
		} else if cal, ok := lookupFloat(mv.Cal, trackKey, gender); ok {
			line.Qty = &Qty{Kind: QtyCal, Value: cal}
		}
	}

	if line.Load == nil {
		if lv, ok := lookupLoad(mv.Load, trackKey, gender); ok {
			if lv.Structured != nil {
				line.Load = lv.Structured
			} else if parsed := parseCatalogLoadToken(lv.Token); parsed != nil {
				line.Load = parsed
			} else {
				line.Load = &Load{Kind: LoadRaw, Raw: lv.Token}
			}
		}
	}
}

func lookupInt(m map[string]CatalogGenderInt, track string, gender Gender) (int, bool) {
	g, ok := m[track]
	if !ok {
		return 0, false
	}
	p := g.Male
	if gender == Female {
		p = g.Female
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

func lookupFloat(m map[string]CatalogGenderFloat, track string, gender Gender) (float64, bool) {
	g, ok := m[track]
	if !ok {
		return 0, false
	}
	p := g.Male
	if gender == Female {
		p = g.Female
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

func lookupLoad(m map[string]CatalogGenderLoad, track string, gender Gender) (*CatalogLoadValue, bool) {
	g, ok := m[track]
	if !ok {
		return nil, false
	}
	p := g.Male
	if gender == Female {
		p = g.Female
	}
	if p == nil {
		return nil, false
	}
	return p, true
}

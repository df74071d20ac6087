package lang

import (
	"encoding/json"
	"regexp"
	"strconv"
)

// Catalog is the decoded form of the JSON movement dictionary described
// in spec.md §6: a nested mapping movements -> track(lowercase) ->
// gender, tolerant of missing keys at every level. Built with stdlib
// encoding/json: no repo in the example pack reaches for an alternate
// JSON library, so this is the one ambient concern left on the
// standard library rather than a third-party dependency — see
// DESIGN.md.
type Catalog struct {
	Movements map[string]CatalogMovement `json:"movements"`
}

type CatalogMovement struct {
	Category  string                          `json:"category,omitempty"`
	Preferred string                          `json:"preferred,omitempty"`
	Aliases   []string                        `json:"aliases,omitempty"`
	Reps      map[string]CatalogGenderInt     `json:"reps,omitempty"`
	Distance  map[string]CatalogGenderFloat   `json:"distance,omitempty"`
	Cal       map[string]CatalogGenderFloat   `json:"cal,omitempty"`
	Load      map[string]CatalogGenderLoad    `json:"load,omitempty"`
}

type CatalogGenderInt struct {
	Male   *int `json:"male,omitempty"`
	Female *int `json:"female,omitempty"`
}

type CatalogGenderFloat struct {
	Male   *float64 `json:"male,omitempty"`
	Female *float64 `json:"female,omitempty"`
}

// CatalogGenderLoad holds either a raw load-string token ("20kg") or a
// pre-structured load object, matching the "<load-token>|{...}" union
// in spec.md §6. Exactly one of Token/Structured is populated after
// decoding.
type CatalogGenderLoad struct {
	Male   *CatalogLoadValue `json:"male,omitempty"`
	Female *CatalogLoadValue `json:"female,omitempty"`
}

type CatalogLoadValue struct {
	Token      string
	Structured *Load
}

func (v *CatalogLoadValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v.Token = s
		return nil
	}
	var l Load
	if err := json.Unmarshal(data, &l); err != nil {
		return err
	}
	v.Structured = &l
	return nil
}

func (v CatalogLoadValue) MarshalJSON() ([]byte, error) {
	if v.Structured != nil {
		return json.Marshal(v.Structured)
	}
	return json.Marshal(v.Token)
}

// LoadCatalog decodes a catalog JSON document.
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// catalogLoadStringPattern is the original implementation's narrower
// contract for catalog load strings (no km, no %) — see
// SPEC_FULL.md's SUPPLEMENTED FEATURES #4.
var catalogLoadStringPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)(kg|lb|cm|in|m)$`)

// parseCatalogLoadToken turns a catalog load string ("20kg") into a
// structured Load, or nil if it doesn't match the narrower catalog
// pattern.
func parseCatalogLoadToken(s string) *Load {
	m := catalogLoadStringPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	if _, err := strconv.ParseFloat(m[1], 64); err != nil {
		return nil
	}
	return structuredLoad(m[1], m[2])
}

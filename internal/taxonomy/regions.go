// Package taxonomy canonicalizes the free-text state labels found in UIDAI
// portal exports into a closed set of state names.
package taxonomy

import "strings"

// sentinel is a known data-entry artifact that appears in the state column
// of some source files and is not a state.
const sentinel = "100000"

// stateCorrections maps alias spellings to canonical state names. Every
// value is itself canonical, so applying the table twice is a no-op.
var stateCorrections = map[string]string{
	"andaman":              "andaman and nicobar island",
	"nicobar islands":      "andaman and nicobar island",
	"dadra":                "dadra and nagar haveli",
	"the dadra":            "dadra and nagar haveli",
	"nagar haveli":         "dadra and nagar haveli",
	"daman":                "daman and diu",
	"diu":                  "daman and diu",
	"jammu":                "jammu and kashmir",
	"kashmir":              "jammu and kashmir",
	"orissa":               "odisha",
	"pondicherry":          "puducherry",
	"west  bengal":         "west bengal",
	"west bangal":          "west bengal",
	"westbengal":           "west bengal",
	"west bengli":          "west bengal",
	"tamilnadu":            "tamil nadu",
	"uttaranchal":          "uttarakhand",
	"chhatisgarh":          "chhattisgarh",
	"jaipur":               "rajasthan",
	"darbhanga":            "bihar",
	"puttenhalli":          "karnataka",
	"raja annamalai puram": "tamil nadu",
	"nagpur":               "maharashtra",
	"madanapalle":          "andhra pradesh",
	"balanagar":            "telangana",
}

// Normalize canonicalizes a raw state cell. Rows sometimes name several
// states joined by "&", "/" or "and"; each separator splits the cell and
// every surviving candidate is resolved through the correction table, so one
// raw value can yield more than one canonical state. The result is
// de-duplicated, in first-appearance order. A blank cell, or one containing
// only the sentinel, yields nil.
func Normalize(raw string) []string {
	s := strings.ToLower(raw)
	s = strings.ReplaceAll(s, "&", ",")
	s = strings.ReplaceAll(s, "/", ",")
	s = strings.ReplaceAll(s, " and ", ",")

	var states []string
	seen := make(map[string]struct{})
	for _, candidate := range strings.Split(s, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" || candidate == sentinel {
			continue
		}
		state := Canonical(candidate)
		if _, ok := seen[state]; ok {
			continue
		}
		seen[state] = struct{}{}
		states = append(states, state)
	}
	return states
}

// Canonical resolves a single already-split candidate through the correction
// table. Unknown candidates are assumed canonical and returned unchanged.
func Canonical(candidate string) string {
	if fixed, ok := stateCorrections[candidate]; ok {
		return fixed
	}
	return candidate
}

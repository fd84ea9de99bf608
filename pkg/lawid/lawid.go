// Package lawid validates and types law record identifiers.
//
// A law identifier is "<natural number>.<5-digit suffix>", e.g. "100.00001".
// The typed LawID keeps raw strings from crossing the trust boundary: anything
// downstream of Parse is structurally valid, so the resolver and orchestrator
// never see a malformed id.
package lawid

import (
	"regexp"

	"lexgate/pkg/faults"
)

// LawID is a structurally validated law record identifier.
type LawID string

var pattern = regexp.MustCompile(`^\d+\.\d{5}$`)

// Valid reports whether s matches the identifier pattern. Pure, no I/O.
func Valid(s string) bool {
	return pattern.MatchString(s)
}

// Parse validates s and returns it as a typed LawID.
func Parse(s string) (LawID, error) {
	if !Valid(s) {
		return "", faults.Newf(faults.CodeValidation, "invalid law id %q: want <number>.<5 digits>", s)
	}
	return LawID(s), nil
}

func (id LawID) String() string {
	return string(id)
}

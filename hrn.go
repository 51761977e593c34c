package geodata

import (
	"fmt"
	"strings"
)

// HRN is a hierarchical resource name identifying a catalog, in the form
// "hrn:<realm>:<service>:<region>:<account>:<resource>". Region and account
// may be empty.
type HRN struct {
	Realm    string
	Service  string
	Region   string
	Account  string
	Resource string
}

// ParseHRN parses a resource name string. Returns ErrInvalidArgument if the
// string is not a well-formed HRN.
func ParseHRN(s string) (HRN, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 6 || parts[0] != "hrn" {
		return HRN{}, fmt.Errorf("%w: malformed HRN %q", ErrInvalidArgument, s)
	}
	h := HRN{
		Realm:    parts[1],
		Service:  parts[2],
		Region:   parts[3],
		Account:  parts[4],
		Resource: parts[5],
	}
	if h.Realm == "" || h.Service == "" || h.Resource == "" {
		return HRN{}, fmt.Errorf("%w: malformed HRN %q", ErrInvalidArgument, s)
	}
	return h, nil
}

// MustParseHRN is like ParseHRN but panics on error. Use for hardcoded
// resource names.
func MustParseHRN(s string) HRN {
	h, err := ParseHRN(s)
	if err != nil {
		panic(fmt.Sprintf("geodata: must parse HRN %q: %v", s, err))
	}
	return h
}

// String reassembles the canonical HRN string.
func (h HRN) String() string {
	return strings.Join([]string{"hrn", h.Realm, h.Service, h.Region, h.Account, h.Resource}, ":")
}

// IsZero reports whether the HRN is the zero value.
func (h HRN) IsZero() bool { return h == HRN{} }

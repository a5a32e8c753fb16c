package nwb

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Unit is a physical unit with an optional SI decimal prefix, e.g. "mV".
type Unit struct {
	Prefix     string  // SI prefix symbol, "" for none
	Multiplier float64 // power of ten implied by Prefix
	Base       string  // base or derived unit symbol
}

// siPrefixes maps the 20 SI prefix symbols to their power of ten.
// The micro prefix is stored in its NFKC form (Greek small letter mu).
var siPrefixes = map[string]float64{
	"Y":  1e24,
	"Z":  1e21,
	"E":  1e18,
	"P":  1e15,
	"T":  1e12,
	"G":  1e9,
	"M":  1e6,
	"k":  1e3,
	"h":  1e2,
	"da": 1e1,
	"d":  1e-1,
	"c":  1e-2,
	"m":  1e-3,
	"μ":  1e-6,
	"n":  1e-9,
	"p":  1e-12,
	"f":  1e-15,
	"a":  1e-18,
	"z":  1e-21,
	"y":  1e-24,
}

// MicroPrefix is the canonical symbol of the micro prefix.
const MicroPrefix = "μ"

// BaseUnits lists the unit symbols a Unit may be built on.
var BaseUnits = []string{"m", "kg", "s", "A", "K", "mol", "cd", "Hz", "V", "N", "W", "J", "a.u."}

// unitRegexp is anchored on both ends. Two-letter prefixes come first so that
// "da" wins over "d"; RE2 backtracks to an empty prefix for inputs such as
// "mol" and "cd" that are base units on their own.
var unitRegexp = regexp.MustCompile(
	`^(da|Y|Z|E|P|T|G|M|k|h|d|c|m|μ|n|p|f|a|z|y)?\s*(mol|kg|cd|Hz|a\.u\.|m|s|A|K|V|N|W|J)$`)

// ParseUnit decomposes a unit string into prefix and base unit.
//
// Input is NFKC normalised so the micro sign (U+00B5) and the Greek mu
// (U+03BC) are equivalent; ASCII "u" is accepted for micro as well.
//
// Examples:
//
//	ParseUnit("ms")  // {Prefix: "m", Multiplier: 1e-3, Base: "s"}
//	ParseUnit("kHz") // {Prefix: "k", Multiplier: 1e3, Base: "Hz"}
//	ParseUnit("pA")  // {Prefix: "p", Multiplier: 1e-12, Base: "A"}
func ParseUnit(s string) (Unit, error) {
	in := strings.TrimSpace(norm.NFKC.String(s))
	if strings.HasPrefix(in, "u") && len(in) > 1 {
		in = MicroPrefix + in[1:]
	}

	m := unitRegexp.FindStringSubmatch(in)
	if m == nil {
		return Unit{}, fmt.Errorf("%w: %q", ErrMalformedUnit, s)
	}

	multiplier, err := PrefixMultiplier(m[1])
	if err != nil {
		return Unit{}, err
	}

	return Unit{
		Prefix:     m[1],
		Multiplier: multiplier,
		Base:       m[2],
	}, nil
}

// MustParseUnit is like ParseUnit but panics on error. Units are supplied by
// code, so a malformed one is a programming error.
func MustParseUnit(s string) Unit {
	u, err := ParseUnit(s)
	if err != nil {
		panic(err)
	}
	return u
}

// PrefixMultiplier returns the power of ten of an SI prefix. The empty
// prefix yields 1.
func PrefixMultiplier(prefix string) (float64, error) {
	if prefix == "" {
		return 1, nil
	}
	v, ok := siPrefixes[norm.NFKC.String(prefix)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPrefix, prefix)
	}
	return v, nil
}

// String formats the unit as prefix followed by base, e.g. "mV".
func (u Unit) String() string {
	return u.Prefix + u.Base
}

// ToBase converts a value expressed in u into the base unit.
func (u Unit) ToBase(v float64) float64 {
	return v * u.Multiplier
}

package zodiac

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sign identifies one of the twelve zodiac signs. The identifiers are
// lower-case ASCII and double as URL path segments on horoskopy.cz.
type Sign string

const (
	SignBeran    Sign = "beran"
	SignLev      Sign = "lev"
	SignStrelec  Sign = "strelec"
	SignByk      Sign = "byk"
	SignPanna    Sign = "panna"
	SignKozoroh  Sign = "kozoroh"
	SignBlizenci Sign = "blizenci"
	SignVahy     Sign = "vahy"
	SignVodnar   Sign = "vodnar"
	SignRak      Sign = "rak"
	SignStir     Sign = "stir"
	SignRyby     Sign = "ryby"
)

// AllSigns returns the twelve signs in their fixed order.
func AllSigns() []Sign {
	return []Sign{
		SignBeran,
		SignLev,
		SignStrelec,
		SignByk,
		SignPanna,
		SignKozoroh,
		SignBlizenci,
		SignVahy,
		SignVodnar,
		SignRak,
		SignStir,
		SignRyby,
	}
}

// Column returns the sign's matrix column label (capitalized identifier).
func (s Sign) Column() string {
	return Capitalize(string(s))
}

// Band is a compatibility percentage level. Eleven fixed values exist,
// from 100 down to -100 in steps of 20; the order is meaningful.
type Band int

// AllBands returns the eleven bands in their fixed descending order,
// matching the row order emitted by the compatibility thermometer.
func AllBands() []Band {
	return []Band{100, 80, 60, 40, 20, 0, -20, -40, -60, -80, -100}
}

// Label returns the band's display label, e.g. "100%" or "-20%".
func (b Band) Label() string {
	return strconv.Itoa(int(b)) + "%"
}

// ParseBand parses a percentage label such as "80%" or "-100%" into a
// Band. Band matching relies on exact integer comparison, so a label
// that does not parse, or that names a level outside the fixed set, is
// an input-contract violation reported to the caller.
func ParseBand(label string) (Band, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(label), "%")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("malformed percentage label %q: %w", label, err)
	}
	for _, b := range AllBands() {
		if b == Band(n) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown percentage band %q", label)
}

// Capitalize upper-cases the first rune of s, leaving the rest intact.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

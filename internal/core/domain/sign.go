package domain

import (
	"math"
	"strconv"
	"strings"
)

// Sign is a zodiac sign index, 0 (Aries) through 11 (Pisces).
type Sign int

// The twelve signs in zodiac order.
const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// NoSign marks an unknown sign, e.g. a manual placement without sign input.
const NoSign Sign = -1

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signLords = [12]Planet{
	Mars, Venus, Mercury, Moon, Sun, Mercury,
	Venus, Mars, Jupiter, Saturn, Saturn, Jupiter,
}

// AllSigns returns the twelve signs in order.
func AllSigns() []Sign {
	out := make([]Sign, 12)
	for i := range out {
		out[i] = Sign(i)
	}
	return out
}

// ParseSign accepts a case-insensitive sign name or a 1-based sign number ("1".."12").
func ParseSign(s string) (Sign, error) {
	trimmed := strings.TrimSpace(s)
	for i, name := range signNames {
		if strings.EqualFold(name, trimmed) {
			return Sign(i), nil
		}
	}
	if n, err := strconv.Atoi(trimmed); err == nil && n >= 1 && n <= 12 {
		return Sign(n - 1), nil
	}
	return NoSign, NewError("parse sign", KindValidation, "invalid sign: %q", s)
}

// SignOf returns the sign containing the given ecliptic longitude.
func SignOf(longitude float64) Sign {
	return Sign(int(math.Floor(NormalizeLongitude(longitude)/30)) % 12)
}

// IsValid returns true for 0..11.
func (s Sign) IsValid() bool {
	return s >= Aries && s <= Pisces
}

// Lord returns the ruling planet of the sign. The mapping is static and total.
func (s Sign) Lord() Planet {
	if !s.IsValid() {
		return ""
	}
	return signLords[s]
}

// Add returns the sign n places further along the zodiac.
func (s Sign) Add(n int) Sign {
	return Sign(((int(s)+n)%12 + 12) % 12)
}

// String returns the sign name.
func (s Sign) String() string {
	if !s.IsValid() {
		return "Unknown"
	}
	return signNames[s]
}

// MarshalText renders the sign by name.
func (s Sign) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return []byte(""), nil
	}
	return []byte(s.String()), nil
}

// UnmarshalText parses a sign name or number.
func (s *Sign) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = NoSign
		return nil
	}
	parsed, err := ParseSign(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// SignsRuledBy returns the signs whose lord is p, in zodiac order.
// Rahu and Ketu rule no sign.
func SignsRuledBy(p Planet) []Sign {
	var out []Sign
	for i, lord := range signLords {
		if lord == p {
			out = append(out, Sign(i))
		}
	}
	return out
}

// NormalizeLongitude maps any angle into [0,360).
func NormalizeLongitude(l float64) float64 {
	l = math.Mod(l, 360)
	if l < 0 {
		l += 360
	}
	if l >= 360 {
		l = 0
	}
	return l
}

// AngularDistance returns the shorter arc between two longitudes, in [0,180].
func AngularDistance(a, b float64) float64 {
	d := math.Abs(NormalizeLongitude(a) - NormalizeLongitude(b))
	if d > 180 {
		return 360 - d
	}
	return d
}

package services

import "strings"

// Area codes offered by the console dropdowns.
var (
	MobileAreaCodes = []string{"010", "011", "016", "017", "018", "019"}
	OfficeAreaCodes = []string{"02", "031", "032", "033", "041", "042", "043", "051", "052", "053", "061", "062", "063"}
)

const (
	DefaultMobileArea = "010"
	DefaultOfficeArea = "02"
)

// PhoneParts is a phone number split the way the forms edit it.
type PhoneParts struct {
	Area   string `json:"area"`
	Middle string `json:"middle"`
	Last   string `json:"last"`
}

// IsZero reports whether no part is set.
func (p PhoneParts) IsZero() bool {
	return p.Area == "" && p.Middle == "" && p.Last == ""
}

// Join concatenates the parts without separators, which is how numbers are stored.
func (p PhoneParts) Join() string {
	return strings.TrimSpace(p.Area) + strings.TrimSpace(p.Middle) + strings.TrimSpace(p.Last)
}

// DigitsOnly strips every non-digit character.
func DigitsOnly(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// phoneSplit returns the area and middle lengths for a digit string, last is the remainder.
// ok is false when the number has no canonical split.
func phoneSplit(digits string) (area, middle int, ok bool) {
	seoul := strings.HasPrefix(digits, "02")
	switch len(digits) {
	case 11:
		// 01x mobiles, and 3-digit office areas with a 4-digit exchange
		if strings.HasPrefix(digits, "01") || !seoul {
			return 3, 4, true
		}
	case 10:
		if seoul {
			return 2, 4, true
		}
		return 3, 3, true
	case 9:
		if seoul {
			return 2, 3, true
		}
		return 3, 2, true
	}
	return 0, 0, false
}

// ParsePhone splits a free-form phone string into area, middle and last parts.
// Unrecognised numbers yield empty parts.
func ParsePhone(raw string) PhoneParts {
	digits := DigitsOnly(raw)
	area, middle, ok := phoneSplit(digits)
	if !ok {
		return PhoneParts{}
	}
	return PhoneParts{
		Area:   digits[:area],
		Middle: digits[area : area+middle],
		Last:   digits[area+middle:],
	}
}

// FormatPhone renders a phone number as area-middle-last. Numbers that cannot be
// split are returned unchanged.
func FormatPhone(raw string) string {
	p := ParsePhone(raw)
	if p.IsZero() {
		return raw
	}
	return p.Area + "-" + p.Middle + "-" + p.Last
}

// IsMobilePhone reports whether raw is an 11 digit 01x number.
func IsMobilePhone(raw string) bool {
	digits := DigitsOnly(raw)
	return len(digits) == 11 && strings.HasPrefix(digits, "01") && len(digits) == len(strings.TrimSpace(raw))
}

// IsPhoneNumber reports whether raw consists of digits only and has a canonical split.
func IsPhoneNumber(raw string) bool {
	digits := DigitsOnly(raw)
	if len(digits) != len(strings.TrimSpace(raw)) {
		return false
	}
	_, _, ok := phoneSplit(digits)
	return ok
}

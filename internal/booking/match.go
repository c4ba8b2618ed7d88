package booking

import "strings"

const nationalNumberLen = 10

// PhoneCanonicalizer reduces user-entered phone numbers to a comparable key.
type PhoneCanonicalizer struct {
	// CountryCode is the default calling code stripped from full international numbers.
	CountryCode string
}

// DefaultPhones canonicalises Indian numbers.
var DefaultPhones = PhoneCanonicalizer{CountryCode: "91"}

// Canonical strips formatting, the international "00" prefix, the default country
// code and a trunk "0" so that differently typed forms of one number compare equal.
func (p PhoneCanonicalizer) Canonical(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(digits, "00") && len(digits) > nationalNumberLen+2 {
		digits = digits[2:]
	}
	cc := p.CountryCode
	if cc != "" && strings.HasPrefix(digits, cc) && len(digits) == len(cc)+nationalNumberLen {
		return digits[len(cc):]
	}
	if strings.HasPrefix(digits, "0") && len(digits) == nationalNumberLen+1 {
		return digits[1:]
	}
	return digits
}

// Same reports whether two raw phone strings refer to the same number.
func (p PhoneCanonicalizer) Same(a, b string) bool {
	ca := p.Canonical(a)
	return ca != "" && ca == p.Canonical(b)
}

// Match returns the first customer whose phone canonicalises to the same key.
// A miss is a normal outcome (new customer path), not an error.
func (p PhoneCanonicalizer) Match(phone string, customers []Customer) (Customer, bool) {
	key := p.Canonical(phone)
	if key == "" {
		return Customer{}, false
	}
	for _, c := range customers {
		if p.Canonical(c.Phone) == key {
			return c, true
		}
	}
	return Customer{}, false
}

// CanonicalPhone canonicalises with DefaultPhones.
func CanonicalPhone(raw string) string {
	return DefaultPhones.Canonical(raw)
}

// MatchCustomer resolves a phone with DefaultPhones.
func MatchCustomer(phone string, customers []Customer) (Customer, bool) {
	return DefaultPhones.Match(phone, customers)
}

package validation

import (
	"strings"
	"time"
)

// Card networks detected from number prefixes.
const (
	NetworkVisa       = "visa"
	NetworkMastercard = "mastercard"
	NetworkAmex       = "amex"
	NetworkRuPay      = "rupay"
	NetworkUnknown    = "unknown"
)

// NormalizeCardNumber strips spaces and dashes from a card number.
func NormalizeCardNumber(number string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, number)
}

// ValidateLuhn reports whether number is 13-19 digits (after stripping
// spaces and dashes) with a valid Luhn checksum.
func ValidateLuhn(number string) bool {
	digits := NormalizeCardNumber(number)
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ValidateExpiry reports whether the month/year pair is a valid expiry on or
// after today. Two-digit years are interpreted in the current century.
func ValidateExpiry(month, year int) bool {
	return ExpiryValidAt(month, year, time.Now())
}

// ExpiryValidAt is ValidateExpiry against an explicit clock.
func ExpiryValidAt(month, year int, now time.Time) bool {
	if month < 1 || month > 12 {
		return false
	}
	if year < 100 {
		year += (now.Year() / 100) * 100
	}

	// The card is valid through the last calendar day of its expiry month.
	firstInvalid := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, now.Location())
	return now.Before(firstInvalid)
}

// CardNetwork classifies a card number by its leading digits. It never fails;
// numbers outside the known ranges classify as unknown.
func CardNetwork(number string) string {
	digits := NormalizeCardNumber(number)
	if digits == "" {
		return NetworkUnknown
	}

	switch {
	case hasPrefixIn(digits, "34", "37"):
		return NetworkAmex
	case strings.HasPrefix(digits, "4"):
		return NetworkVisa
	case prefixInRange(digits, 2, 51, 55), prefixInRange(digits, 4, 2221, 2720):
		return NetworkMastercard
	case hasPrefixIn(digits, "60", "65", "81", "82", "508"):
		return NetworkRuPay
	default:
		return NetworkUnknown
	}
}

// CardLast4 returns the last four digits of the normalized number.
func CardLast4(number string) string {
	digits := NormalizeCardNumber(number)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

func hasPrefixIn(digits string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(digits, p) {
			return true
		}
	}
	return false
}

func prefixInRange(digits string, width, lo, hi int) bool {
	if len(digits) < width {
		return false
	}
	prefix := 0
	for i := 0; i < width; i++ {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		prefix = prefix*10 + int(c-'0')
	}
	return prefix >= lo && prefix <= hi
}

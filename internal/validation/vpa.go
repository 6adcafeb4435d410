package validation

import "regexp"

// A VPA is <local-part>@<bank-handle> with exactly one @ and non-empty sides.
var vpaPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9]+$`)

// ValidateVPA reports whether vpa is a structurally valid UPI address.
func ValidateVPA(vpa string) bool {
	return vpaPattern.MatchString(vpa)
}

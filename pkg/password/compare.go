package password

import "crypto/subtle"

// ConstantTimeEqual reports whether a and b are byte-identical without
// leaking where they first differ. A nil operand is never equal; that
// branch depends on the shape of the call site, not on secret content,
// so it does not reopen a timing channel. Two empty buffers are equal.
func ConstantTimeEqual(a, b []byte) bool {
	if a == nil || b == nil {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

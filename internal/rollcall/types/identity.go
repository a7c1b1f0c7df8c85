package types

import "strings"

// UnknownIdentity is the label the face matcher emits when no enrolled
// person matches a detection.
const UnknownIdentity = "Unknown"

// IsUnknownIdentity reports whether identity is the reserved no-match
// sentinel. The comparison ignores case and surrounding whitespace since
// upstream producers have emitted both "Unknown" and "unknown".
func IsUnknownIdentity(identity string) bool {
	return strings.EqualFold(strings.TrimSpace(identity), UnknownIdentity)
}

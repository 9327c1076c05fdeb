package theme

import (
	"regexp"
	"strings"
)

var roleNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// IsRoleName reports whether role is a usable normalised role name: it
// starts with a lowercase letter and holds only lowercase letters, digits
// and hyphens.
func IsRoleName(role string) bool {
	return roleNameRegex.MatchString(role)
}

// Normalize turns a camelCase role name into kebab-case: a hyphen goes
// between every lowercase letter and the uppercase letter that follows it,
// then the whole name is lowercased. "onSurfaceVariant" becomes
// "on-surface-variant".
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if i > 0 && isUpper(c) && isLower(name[i-1]) {
			b.WriteByte('-')
		}
		if isUpper(c) {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

// VariableName returns the CSS custom property name for a normalised role.
func VariableName(role string) string {
	return "--" + role
}

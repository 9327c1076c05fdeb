package theme

import (
	"fmt"
	"sort"
)

// RawSchemes is what a colour source returns for a seed: for each scheme, a
// map from camelCase role name to packed ARGB colour.
type RawSchemes struct {
	Dark  map[string]uint32
	Light map[string]uint32
}

// Scheme returns the role map for s.
func (r RawSchemes) Scheme(s Scheme) map[string]uint32 {
	if s == Dark {
		return r.Dark
	}
	return r.Light
}

// Validate checks that both schemes are present and carry the same roles.
func (r RawSchemes) Validate() error {
	if len(r.Dark) == 0 || len(r.Light) == 0 {
		return fmt.Errorf("%w: empty scheme (dark=%d light=%d roles)", ErrIntegrity, len(r.Dark), len(r.Light))
	}
	if missing := missingRoles(r.Dark, r.Light); len(missing) > 0 {
		return fmt.Errorf("%w: roles %v present in dark but not light", ErrIntegrity, missing)
	}
	if missing := missingRoles(r.Light, r.Dark); len(missing) > 0 {
		return fmt.Errorf("%w: roles %v present in light but not dark", ErrIntegrity, missing)
	}
	return nil
}

func missingRoles(from, in map[string]uint32) []string {
	var missing []string
	for name := range from {
		if _, ok := in[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// Source generates dark and light role palettes from a packed seed colour.
// Implementations must be deterministic and accept any opaque 24-bit colour.
type Source interface {
	Schemes(argb uint32) (RawSchemes, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(argb uint32) (RawSchemes, error)

// Schemes calls f(argb).
func (f SourceFunc) Schemes(argb uint32) (RawSchemes, error) { return f(argb) }

package theme

import (
	"fmt"
	"sort"
)

// RequiredRoles are the normalised role names that the consumers look up by
// name. A source that omits any of them cannot theme a site.
var RequiredRoles = []string{
	"background",
	"on-background",
	"on-surface-variant",
	"primary",
	"tertiary",
	"on-tertiary",
}

// Deriver turns seed colours into token sets using a colour Source.
type Deriver struct {
	source Source
}

// NewDeriver returns a Deriver backed by src. A nil src means Material.
func NewDeriver(src Source) *Deriver {
	if src == nil {
		src = Material{}
	}
	return &Deriver{source: src}
}

// Derive derives the token set for seed using the Material source.
func Derive(seed string) (*TokenSet, error) {
	return NewDeriver(nil).Derive(seed)
}

// Derive validates seed, asks the source for its schemes and normalises the
// result. The seed is rejected before the source is called.
func (d *Deriver) Derive(seed string) (*TokenSet, error) {
	s, err := ParseSeed(seed)
	if err != nil {
		return nil, err
	}
	raw, err := d.source.Schemes(s.ARGB())
	if err != nil {
		return nil, fmt.Errorf("theme: derive %s: %w", s, err)
	}
	if err := raw.Validate(); err != nil {
		return nil, err
	}

	ts := &TokenSet{
		seed:    s,
		schemes: make(map[Scheme]map[string]Channels, len(Schemes)),
	}
	for _, scheme := range Schemes {
		entries := raw.Scheme(scheme)
		roles := make(map[string]Channels, len(entries))
		for name, argb := range entries {
			role := Normalize(name)
			if !IsRoleName(role) {
				return nil, fmt.Errorf("%w: %s role %q is not a valid role name", ErrIntegrity, scheme, name)
			}
			if _, dup := roles[role]; dup {
				return nil, fmt.Errorf("%w: more than one %s role normalises to %q", ErrIntegrity, scheme, role)
			}
			roles[role] = ChannelsFromARGB(argb)
		}
		for _, req := range RequiredRoles {
			if _, ok := roles[req]; !ok {
				return nil, fmt.Errorf("%w: source omitted required %s role %q", ErrIntegrity, scheme, req)
			}
		}
		ts.schemes[scheme] = roles
	}
	return ts, nil
}

// TokenSet is a derived theme: for each scheme, normalised role name to
// colour channels. Treat it as a mapping; it has no positional order.
type TokenSet struct {
	seed    Seed
	schemes map[Scheme]map[string]Channels
}

// Seed returns the seed the set was derived from.
func (t *TokenSet) Seed() Seed { return t.seed }

// Roles returns the normalised role names, sorted. Both schemes share them.
func (t *TokenSet) Roles() []string {
	roles := make([]string, 0, len(t.schemes[Light]))
	for name := range t.schemes[Light] {
		roles = append(roles, name)
	}
	sort.Strings(roles)
	return roles
}

// Lookup returns the channels of role in scheme.
func (t *TokenSet) Lookup(scheme Scheme, role string) (Channels, error) {
	c, ok := t.schemes[scheme][role]
	if !ok {
		return Channels{}, fmt.Errorf("%w: %s/%s", ErrLookupMiss, scheme, role)
	}
	return c, nil
}

// CSSVariables returns the custom-property form: "--role" to "R G B".
func (t *TokenSet) CSSVariables() map[Scheme]map[string]string {
	return t.format(func(role string, c Channels) (string, string) {
		return VariableName(role), c.String()
	})
}

// UtilityVariables returns the utility-class form: "role" to
// "rgb(var(--role) / <alpha-value>)".
func (t *TokenSet) UtilityVariables() map[Scheme]map[string]string {
	return t.format(func(role string, _ Channels) (string, string) {
		return role, UtilityTemplate(role)
	})
}

func (t *TokenSet) format(entry func(role string, c Channels) (string, string)) map[Scheme]map[string]string {
	out := make(map[Scheme]map[string]string, len(t.schemes))
	for scheme, roles := range t.schemes {
		m := make(map[string]string, len(roles))
		for role, c := range roles {
			k, v := entry(role, c)
			m[k] = v
		}
		out[scheme] = m
	}
	return out
}

// UtilityTemplate returns the utility-class colour template for role.
func UtilityTemplate(role string) string {
	return "rgb(var(" + VariableName(role) + ") / <alpha-value>)"
}

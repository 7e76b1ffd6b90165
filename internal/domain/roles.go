package domain

import "strings"

// RoleTemplate describes one named structural role and its canvas styling.
type RoleTemplate struct {
	Label  string
	Width  int    // node width in canvas units
	Height int    // node height in canvas units
	Color  string // hex fill color
}

// BaseRoleLabel is the role at the foundation of a tower. It is the only
// role that tolerates multiple simultaneous occupants per instance.
const BaseRoleLabel = "Baix"

// defaultRoleTemplate styles role instances whose label is not in the
// catalog. Free-text labels are tolerated everywhere.
var defaultRoleTemplate = RoleTemplate{Width: 80, Height: 40, Color: "#9ca3af"}

// roleCatalog is the fixed vocabulary of structural roles, in the order
// they are offered to the operator.
var roleCatalog = []RoleTemplate{
	{Label: "Vent", Width: 70, Height: 36, Color: "#60a5fa"},
	{Label: "Mans", Width: 70, Height: 36, Color: "#34d399"},
	{Label: "Baix", Width: 96, Height: 48, Color: "#f87171"},
	{Label: "Contrafort", Width: 88, Height: 44, Color: "#fb923c"},
	{Label: "Agulla", Width: 64, Height: 44, Color: "#facc15"},
	{Label: "Crossa", Width: 76, Height: 40, Color: "#a78bfa"},
	{Label: "Lateral", Width: 76, Height: 40, Color: "#38bdf8"},
	{Label: "Diagonal", Width: 76, Height: 40, Color: "#4ade80"},
	{Label: "Tap", Width: 64, Height: 36, Color: "#f472b6"},
	{Label: "Tronc", Width: 88, Height: 48, Color: "#fbbf24"},
	{Label: "Dosos", Width: 72, Height: 40, Color: "#2dd4bf"},
	{Label: "Acotxadora", Width: 64, Height: 32, Color: "#c084fc"},
	{Label: "Enxaneta", Width: 56, Height: 28, Color: "#fb7185"},
}

// RoleCatalog returns the fixed role vocabulary.
func RoleCatalog() []RoleTemplate {
	out := make([]RoleTemplate, len(roleCatalog))
	copy(out, roleCatalog)
	return out
}

// RoleTemplateFor returns the catalog entry for a label, falling back to
// default styling for unknown labels. Matching is case-insensitive.
func RoleTemplateFor(label string) RoleTemplate {
	for _, tpl := range roleCatalog {
		if strings.EqualFold(tpl.Label, strings.TrimSpace(label)) {
			return tpl
		}
	}
	tpl := defaultRoleTemplate
	tpl.Label = label
	return tpl
}

// IsBaseRole reports whether a label denotes the base role.
func IsBaseRole(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), BaseRoleLabel)
}

// MatchesRole reports whether a member's preferred position label matches
// a role-instance label. Both sides are trimmed and compared
// case-insensitively; an empty preference never matches.
func MatchesRole(preference, label string) bool {
	preference = strings.TrimSpace(preference)
	if preference == "" {
		return false
	}
	return strings.EqualFold(preference, strings.TrimSpace(label))
}

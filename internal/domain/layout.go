package domain

import (
	"strings"
	"time"
)

// RotationStep is the fixed increment applied by each rotate action, in
// degrees. Rotation is purely cosmetic display state.
const RotationStep = 45

// GlobalSentinel marks a layout as published on every date.
const GlobalSentinel = "GLOBAL"

// DefaultCastellType tags layouts saved without an explicit tower type.
const DefaultCastellType = "4d7"

// RoleInstance is one positioned, optionally occupied slot in a layout.
//
// Occupants are member snapshots taken at bind time, not live references:
// later profile edits never retroactively change a saved layout. Every
// role holds at most one occupant except the base role, which tolerates
// multiple simultaneous occupants.
type RoleInstance struct {
	ID       string
	Label    string
	X        float64
	Y        float64
	Rotation int
	Members  []Member
}

// IsBase reports whether this instance's label denotes the base role.
func (ri *RoleInstance) IsBase() bool {
	return IsBaseRole(ri.Label)
}

// Occupied reports whether the instance holds at least one member.
func (ri *RoleInstance) Occupied() bool {
	return len(ri.Members) > 0
}

// Holds reports whether the given nickname is already bound to this
// instance (case-insensitive).
func (ri *RoleInstance) Holds(nickname string) bool {
	for _, m := range ri.Members {
		if SameNickname(m.Nickname, nickname) {
			return true
		}
	}
	return false
}

// Layout is a named, optionally foldered collection of role instances
// plus a tower-type tag. (Name, Folder) is the logical identity used for
// upsert-on-save; ID is the storage identity.
type Layout struct {
	ID             string
	Name           string
	Folder         string // "" means unfoldered; folders are case-sensitive
	CastellType    string
	Positions      []RoleInstance
	PublishedDates []string // ISO dates and/or GlobalSentinel
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the layout's data-model invariants: a name is present
// and no non-base instance holds more than one occupant.
func (l *Layout) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrValidation("layout name is required")
	}
	for i := range l.Positions {
		ri := &l.Positions[i]
		if len(ri.Members) > 1 && !ri.IsBase() {
			return ErrValidation("role %q holds %d members; only the base role allows more than one", ri.Label, len(ri.Members))
		}
	}
	return nil
}

// PublishedOn reports whether the layout is visible on the given ISO
// date. A set containing GlobalSentinel dominates any dated entries.
func (l *Layout) PublishedOn(date string) bool {
	for _, d := range l.PublishedDates {
		if d == GlobalSentinel || d == date {
			return true
		}
	}
	return false
}

// UnionPublished adds an entry (an ISO date or GlobalSentinel) to a
// publication set without duplicating it.
func UnionPublished(dates []string, entry string) []string {
	for _, d := range dates {
		if d == entry {
			return dates
		}
	}
	return append(dates, entry)
}

// PublishMode selects how a layout is published.
type PublishMode int

// Publish modes.
const (
	// PublishDated makes the layout visible on one concrete date.
	PublishDated PublishMode = iota
	// PublishGlobal makes the layout visible on every date.
	PublishGlobal
)

// PublishRequest holds parameters for a publish operation.
type PublishRequest struct {
	LayoutIDs []string
	Mode      PublishMode
	Date      string // ISO date; required for PublishDated
}

// Validate checks that the request is well-formed.
func (r *PublishRequest) Validate() error {
	if len(r.LayoutIDs) == 0 {
		return ErrValidation("layout ids are required")
	}
	if r.Mode == PublishDated {
		if _, err := ParseISODate(r.Date); err != nil {
			return err
		}
	}
	return nil
}

// SaveLayoutReport tells the caller whether a save inserted a new record
// or replaced an existing one with the same (name, folder) identity.
type SaveLayoutReport struct {
	Layout  *Layout
	Updated bool
}

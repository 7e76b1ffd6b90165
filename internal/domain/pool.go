package domain

// PoolMode selects how the candidate pool is sourced.
type PoolMode string

// Pool modes.
const (
	// PoolAll selects every registered member.
	PoolAll PoolMode = "all"
	// PoolCheckedIn selects members who checked in on a given date.
	PoolCheckedIn PoolMode = "checked_in"
	// PoolRsvpComing selects members who RSVP'd "coming" to the event
	// scheduled on a given date. When several events share the date the
	// first by (date, id) order is taken; callers that need a specific
	// event pass its id instead of a bare date.
	PoolRsvpComing PoolMode = "rsvp_coming"
)

// PoolRequest holds parameters for building a candidate pool.
type PoolRequest struct {
	Mode PoolMode
	Date string // ISO date; required for PoolCheckedIn and PoolRsvpComing
	// EventID, when set with PoolRsvpComing, bypasses date resolution and
	// selects the event directly.
	EventID string
}

// Validate checks that the request is well-formed.
func (r *PoolRequest) Validate() error {
	switch r.Mode {
	case PoolAll:
		return nil
	case PoolCheckedIn:
		_, err := ParseISODate(r.Date)
		return err
	case PoolRsvpComing:
		if r.EventID != "" {
			return nil
		}
		_, err := ParseISODate(r.Date)
		return err
	default:
		return ErrValidation("unknown pool mode %q", string(r.Mode))
	}
}

package domain

import (
	"strings"
	"time"
)

// Event is a scheduled rehearsal or performance that members RSVP to.
type Event struct {
	ID        string
	Title     string
	Date      string // ISO date
	Location  string
	Notes     string
	CreatedAt time.Time
}

// CreateEventRequest holds parameters for scheduling an event.
type CreateEventRequest struct {
	Title    string
	Date     string
	Location string
	Notes    string
}

// Validate checks that the request is well-formed.
func (r *CreateEventRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrValidation("event title is required")
	}
	if _, err := ParseISODate(r.Date); err != nil {
		return err
	}
	return nil
}

// Vote status values for event RSVPs.
const (
	VoteComing    = "coming"
	VoteLate      = "late"
	VoteNotComing = "not coming"
)

// VoteRecord pairs a member with their RSVP for one event. The planner
// consumes votes read-only to build candidate pools.
type VoteRecord struct {
	Nickname  string
	EventID   string
	Vote      string
	Comment   string
	CreatedAt time.Time
}

// AttendanceRecord pairs a member with a check-in date. Consumed
// read-only by the pool selector.
type AttendanceRecord struct {
	Date      string // ISO date (legacy rows are normalized on read)
	Nickname  string
	Timestamp time.Time
}

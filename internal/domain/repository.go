package domain

import "context"

// MemberRepository provides CRUD operations for members.
type MemberRepository interface {
	Create(ctx context.Context, m *Member) (*Member, error)
	GetByNickname(ctx context.Context, nickname string) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	Update(ctx context.Context, nickname string, req UpdateMemberRequest) (*Member, error)
	// EnsureExists registers a member with the given nickname when no
	// matching member exists yet, and returns the stored record either way.
	EnsureExists(ctx context.Context, nickname string) (*Member, error)
}

// LayoutRepository provides persistence for layouts and their
// publication sets.
type LayoutRepository interface {
	// Save upserts by the (name, folder) logical identity and reports
	// whether an existing record was replaced.
	Save(ctx context.Context, l *Layout) (*SaveLayoutReport, error)
	// Update replaces the stored content of a layout by its ID.
	Update(ctx context.Context, l *Layout) (*Layout, error)
	GetByID(ctx context.Context, id string) (*Layout, error)
	// List returns layouts, all of them when folder is nil, otherwise
	// only those whose folder matches exactly (case-sensitive).
	List(ctx context.Context, folder *string) ([]Layout, error)
	Delete(ctx context.Context, id string) error

	// SetPublishedDates replaces a layout's publication set.
	SetPublishedDates(ctx context.Context, id string, dates []string) error
	// VisibleOn returns layouts whose publication set contains the given
	// ISO date or the GLOBAL sentinel.
	VisibleOn(ctx context.Context, date string) ([]Layout, error)
}

// AttendanceRepository provides read and append access to check-ins.
// The planner core only reads; check-in appends.
type AttendanceRepository interface {
	Record(ctx context.Context, rec *AttendanceRecord) error
	ListByDate(ctx context.Context, date string) ([]AttendanceRecord, error)
}

// EventRepository provides CRUD for scheduled events.
type EventRepository interface {
	Create(ctx context.Context, e *Event) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	// FirstByDate returns the first event scheduled on a date, ordered by
	// (date, id), or a NotFoundError when none exists.
	FirstByDate(ctx context.Context, date string) (*Event, error)
}

// VoteRepository provides read-only access to RSVP votes.
type VoteRepository interface {
	ListByEvent(ctx context.Context, eventID string) ([]VoteRecord, error)
}

package domain

import (
	"strings"
	"time"
)

// Member represents a troupe member. Nicknames are unique with
// case-insensitive comparison; Position and Position2 are free-form role
// labels ("" means none).
type Member struct {
	Nickname  string
	Name      string
	Surname   string
	Position  string
	Position2 string
	IsAdmin   bool
	CreatedAt time.Time
}

// NormalizeNickname canonicalizes a nickname for identity comparison:
// trimmed and lowercased. Stored nicknames keep their original casing.
func NormalizeNickname(nickname string) string {
	return strings.ToLower(strings.TrimSpace(nickname))
}

// SameNickname reports whether two nicknames identify the same member.
func SameNickname(a, b string) bool {
	return NormalizeNickname(a) == NormalizeNickname(b)
}

// CreateMemberRequest holds parameters for registering a member.
type CreateMemberRequest struct {
	Nickname  string
	Name      string
	Surname   string
	Position  string
	Position2 string
	IsAdmin   bool
}

// Validate checks that the request is well-formed.
func (r *CreateMemberRequest) Validate() error {
	if strings.TrimSpace(r.Nickname) == "" {
		return ErrValidation("nickname is required")
	}
	return nil
}

// UpdateMemberRequest holds partial-update parameters for a member.
// Nil fields are left unchanged.
type UpdateMemberRequest struct {
	Name      *string
	Surname   *string
	Position  *string
	Position2 *string
	IsAdmin   *bool
}

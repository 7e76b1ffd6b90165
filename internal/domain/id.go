package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID generates a UUIDv7 string for application-owned entities.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewRoleInstanceID builds a role-instance identifier from its label and
// the creation time: a lowercased label plus a millisecond timestamp
// suffix. The ID only needs to be unique within one layout.
func NewRoleInstanceID(label string, now time.Time) string {
	slug := strings.ToLower(strings.TrimSpace(label))
	slug = strings.ReplaceAll(slug, " ", "-")
	return fmt.Sprintf("%s_%d", slug, now.UnixMilli())
}

// Package store persists the registry's student and course collections.
// Records round-trip the same field set regardless of backend: membership
// sets are serialized as |-joined ID lists and rebuilt as sets on load.
package store

import (
	"context"
	"strings"

	"github.com/emre/enrollhub/internal/app/models"
)

// MembershipSeparator joins set members in persisted records.
const MembershipSeparator = "|"

// Store is the persistence contract the registry depends on. Load returns
// empty collections, not an error, when no data has been written yet.
type Store interface {
	Save(ctx context.Context, students []*models.Student, courses []*models.Course) error
	Load(ctx context.Context) ([]*models.Student, []*models.Course, error)
}

// JoinMembers serializes a membership set; the empty set becomes "".
func JoinMembers(ids []string) string {
	return strings.Join(ids, MembershipSeparator)
}

// SplitMembers rebuilds a membership set from its serialized form.
// Duplicates collapse and the empty string yields an empty set.
func SplitMembers(s string) map[string]struct{} {
	members := make(map[string]struct{})
	if s == "" {
		return members
	}
	for _, id := range strings.Split(s, MembershipSeparator) {
		members[id] = struct{}{}
	}
	return members
}

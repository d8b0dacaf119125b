// Package derive computes the client's derived views: member/task
// relationships, filtered task subsets, project counters and dependency
// neighbor resolution. Everything here is a pure function of the
// current collection snapshots; nothing is cached or persisted.
package derive

import (
	"strings"

	"taskdeck/internal/models"
)

// Relation classifies a task relative to a member.
type Relation int

const (
	RelationNone Relation = iota
	RelationAssigned
	RelationRelated
)

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Relationship partitions tasks into those assigned to the member and
// those related to the member. A task is assigned when its assignee
// field equals the member's name or email (case and whitespace
// insensitively) or carries the member's id directly. A task is related
// when the related-party field matches the same way, unless it is
// already assigned: assigned takes precedence, so the two sets are
// always disjoint.
func Relationship(member models.Member, tasks []models.Task) (assigned, related []models.Task) {
	name := norm(member.Name)
	email := norm(member.Email)

	assignedIDs := make(map[string]bool)
	for _, t := range tasks {
		who := norm(t.AssignedTo)
		if (who != "" && (who == name || who == email)) || (t.AssignedToID != "" && t.AssignedToID == member.ID) {
			assigned = append(assigned, t)
			assignedIDs[t.ID] = true
		}
	}
	for _, t := range tasks {
		if assignedIDs[t.ID] {
			continue
		}
		who := norm(t.RelatedTo)
		if who != "" && (who == name || who == email) {
			related = append(related, t)
		}
	}
	return assigned, related
}

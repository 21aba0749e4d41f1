// Package perms implements the capability check gating position mutations.
package perms

import "github.com/hpungsan/lineup/internal/directory"

// CanMove reports whether the actor may reposition the item.
//
// The actor needs the manage-items capability and a standing strictly above
// the item's guard level; an actor never moves an item guarded at or above
// its own standing. The comparison is the whole policy; hierarchy lookup
// happens upstream when the actor and item are materialized.
func CanMove(actor directory.Actor, item directory.Item) bool {
	return actor.ManageItems && actor.Standing > item.Guard
}

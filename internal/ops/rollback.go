package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/lineup/internal/db"
	"github.com/hpungsan/lineup/internal/directory"
	"github.com/hpungsan/lineup/internal/errors"
	"github.com/hpungsan/lineup/internal/order"
	"github.com/hpungsan/lineup/internal/perms"
)

// SkipReason classifies why a stored item produced no move request.
type SkipReason string

const (
	SkipUnresolved   SkipReason = "unresolved"   // stored ID no longer resolves to a live item
	SkipUnauthorized SkipReason = "unauthorized" // actor lacks the capability to move the item
	SkipMoveFailed   SkipReason = "move_failed"  // the move request could not be issued
)

// SkippedItem records one absorbed per-item failure.
type SkippedItem struct {
	GroupID  string         `json:"group_id"`
	Kind     directory.Kind `json:"kind"`
	ItemID   string         `json:"item_id"`
	Position int            `json:"position"`
	Reason   SkipReason     `json:"reason"`
}

// RollbackInput contains parameters for the Rollback operation.
type RollbackInput struct {
	Workspace string // default: "default"
	Group     string // optional token; empty means every group with a record
}

// RollbackOutput contains the result of the Rollback operation.
//
// Done is always true once the pass finishes: the engine cannot tell "nothing
// needed fixing" apart from "several items were silently skipped". Skipped
// carries the structured skip report for callers that want to look.
type RollbackOutput struct {
	RunID     string        `json:"run_id"`
	Workspace string        `json:"workspace"`
	Groups    int           `json:"groups"`
	Issued    int           `json:"issued"`
	Skipped   []SkippedItem `json:"skipped,omitempty"`
	Done      bool          `json:"done"`
}

// Rollback replays stored orderings against the live workspace.
//
// For each group in scope it reads the text and voice records independently
// (absence of one kind is not an error) and walks the stored IDs in stored
// order: the index in the sequence is the target position, so an item deleted
// since capture leaves a gap rather than renumbering its successors. Each
// surviving, authorized item gets one move request re-parenting it into the
// group the record is keyed under, even when it is already there, at its
// stored position. Requests are issued fire-and-forget; the pass never waits
// for or verifies their application. Per-item failures are absorbed so one
// bad entry never blocks the rest of the snapshot.
func Rollback(ctx context.Context, database *sql.DB, dir directory.Directory, input RollbackInput) (*RollbackOutput, error) {
	workspace := normalizeWorkspace(input.Workspace)

	actor, err := dir.Self(ctx, workspace)
	if err != nil {
		return nil, errors.NewGatewayUnavailable(err)
	}

	var scope []string
	if input.Group != "" {
		g, err := resolveGroup(ctx, dir, workspace, input.Group)
		if err != nil {
			return nil, err
		}
		scope = []string{g.ID}
	} else {
		scope, err = storedGroupIDs(ctx, database, workspace)
		if err != nil {
			return nil, err
		}
	}

	runID, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	out := &RollbackOutput{
		RunID:     runID,
		Workspace: workspace,
		Groups:    len(scope),
		Done:      true,
	}

	for _, groupID := range scope {
		for _, kind := range directory.Kinds() {
			encoded, ok, err := db.Get(ctx, database, workspace, kind, groupID)
			if err != nil {
				return nil, err
			}
			if !ok {
				// No record for this kind; skip the kind, not the group.
				continue
			}

			for i, itemID := range order.Decode(encoded) {
				item, err := dir.ResolveItem(ctx, workspace, itemID, kind)
				if err != nil {
					return nil, errors.NewGatewayUnavailable(err)
				}
				if item == nil {
					out.Skipped = append(out.Skipped, SkippedItem{
						GroupID: groupID, Kind: kind, ItemID: itemID, Position: i,
						Reason: SkipUnresolved,
					})
					continue
				}
				if !perms.CanMove(*actor, *item) {
					out.Skipped = append(out.Skipped, SkippedItem{
						GroupID: groupID, Kind: kind, ItemID: itemID, Position: i,
						Reason: SkipUnauthorized,
					})
					continue
				}
				if err := dir.Move(ctx, workspace, item.ID, groupID, i); err != nil {
					out.Skipped = append(out.Skipped, SkippedItem{
						GroupID: groupID, Kind: kind, ItemID: itemID, Position: i,
						Reason: SkipMoveFailed,
					})
					continue
				}
				out.Issued++
			}
		}
	}

	return out, nil
}

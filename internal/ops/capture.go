package ops

import (
	"context"
	"database/sql"
	"time"

	"github.com/hpungsan/lineup/internal/db"
	"github.com/hpungsan/lineup/internal/directory"
	"github.com/hpungsan/lineup/internal/errors"
	"github.com/hpungsan/lineup/internal/order"
)

// CaptureInput contains parameters for the Capture operation.
type CaptureInput struct {
	Workspace string // default: "default"
	Group     string // optional token; empty means every group in the workspace
}

// CapturedGroup reports one (group, kind) record that was written.
type CapturedGroup struct {
	GroupID   string         `json:"group_id"`
	GroupName string         `json:"group_name"`
	Kind      directory.Kind `json:"kind"`
	Items     []ItemRef      `json:"items"`
}

// CaptureOutput contains the result of the Capture operation.
type CaptureOutput struct {
	RunID      string          `json:"run_id"`
	Workspace  string          `json:"workspace"`
	Groups     []CapturedGroup `json:"groups"`
	CapturedAt int64           `json:"captured_at"`
}

// Capture records the current ordering of items under one group, or under
// every group in the workspace when no group token is given.
//
// An all-group capture first deletes every existing record of both kinds, so
// no record survives for a group deleted since the last capture. A (group,
// kind) pair with zero items is unset rather than written as an empty string,
// keeping the store free of dead keys. Writes are synchronous; when Capture
// returns, the records are persisted.
func Capture(ctx context.Context, database *sql.DB, dir directory.Directory, input CaptureInput) (*CaptureOutput, error) {
	workspace := normalizeWorkspace(input.Workspace)

	var scope []directory.Group
	if input.Group != "" {
		g, err := resolveGroup(ctx, dir, workspace, input.Group)
		if err != nil {
			return nil, err
		}
		scope = []directory.Group{*g}
	} else {
		groups, err := dir.Groups(ctx, workspace)
		if err != nil {
			return nil, errors.NewGatewayUnavailable(err)
		}
		scope = groups

		// Clear every record of both kinds before writing fresh ones, so
		// groups deleted since the last capture leave nothing behind.
		for _, kind := range directory.Kinds() {
			stale, err := db.ListGroups(ctx, database, workspace, kind)
			if err != nil {
				return nil, err
			}
			for _, groupID := range stale {
				if err := db.Unset(ctx, database, workspace, kind, groupID); err != nil {
					return nil, err
				}
			}
		}
	}

	runID, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	out := &CaptureOutput{
		RunID:      runID,
		Workspace:  workspace,
		Groups:     []CapturedGroup{},
		CapturedAt: time.Now().Unix(),
	}

	for _, g := range scope {
		for _, kind := range directory.Kinds() {
			items, err := dir.Items(ctx, workspace, g.ID, kind)
			if err != nil {
				return nil, errors.NewGatewayUnavailable(err)
			}

			if len(items) == 0 {
				// Explicitly unset instead of storing "", so a kind that
				// emptied out since the last capture loses its record.
				if err := db.Unset(ctx, database, workspace, kind, g.ID); err != nil {
					return nil, err
				}
				continue
			}

			ids := make([]string, len(items))
			refs := make([]ItemRef, len(items))
			for i, it := range items {
				ids[i] = it.ID
				refs[i] = ItemRef{ID: it.ID, Name: it.Name}
			}

			if err := db.Set(ctx, database, workspace, kind, g.ID, order.Encode(ids)); err != nil {
				return nil, err
			}

			out.Groups = append(out.Groups, CapturedGroup{
				GroupID:   g.ID,
				GroupName: g.Name,
				Kind:      kind,
				Items:     refs,
			})
		}
	}

	return out, nil
}

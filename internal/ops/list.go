package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/lineup/internal/db"
	"github.com/hpungsan/lineup/internal/directory"
	"github.com/hpungsan/lineup/internal/errors"
	"github.com/hpungsan/lineup/internal/order"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Workspace string
}

// ListEntry summarizes the stored records for one group.
type ListEntry struct {
	GroupID   string           `json:"group_id"`
	GroupName string           `json:"group_name,omitempty"` // empty when the group is no longer live
	Kinds     []directory.Kind `json:"kinds"`
	Items     int              `json:"items"` // total stored IDs across kinds
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Workspace string      `json:"workspace"`
	Groups    []ListEntry `json:"groups"`
}

// List enumerates the groups holding a stored snapshot in a workspace,
// in ascending group-ID order, annotated with live group names where the
// group still resolves.
func List(ctx context.Context, database *sql.DB, dir directory.Directory, input ListInput) (*ListOutput, error) {
	workspace := normalizeWorkspace(input.Workspace)

	ids, err := storedGroupIDs(ctx, database, workspace)
	if err != nil {
		return nil, err
	}

	out := &ListOutput{
		Workspace: workspace,
		Groups:    []ListEntry{},
	}

	for _, groupID := range ids {
		entry := ListEntry{GroupID: groupID}

		g, err := dir.ResolveGroup(ctx, workspace, groupID)
		if err != nil {
			return nil, errors.NewGatewayUnavailable(err)
		}
		if g != nil {
			entry.GroupName = g.Name
		}

		for _, kind := range directory.Kinds() {
			encoded, ok, err := db.Get(ctx, database, workspace, kind, groupID)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			entry.Kinds = append(entry.Kinds, kind)
			entry.Items += len(order.Decode(encoded))
		}

		out.Groups = append(out.Groups, entry)
	}

	return out, nil
}

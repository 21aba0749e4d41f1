package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/lineup/internal/db"
	"github.com/hpungsan/lineup/internal/directory"
	"github.com/hpungsan/lineup/internal/errors"
	"github.com/hpungsan/lineup/internal/order"
)

// ShowInput contains parameters for the Show operation.
type ShowInput struct {
	Workspace string
	Group     string // required token
}

// StoredItem is one entry of a stored ordering, annotated with liveness.
type StoredItem struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	Name     string `json:"name,omitempty"` // current display name, empty when no longer live
	Live     bool   `json:"live"`
}

// ShowRecord is the decoded record for one kind.
type ShowRecord struct {
	Kind  directory.Kind `json:"kind"`
	Items []StoredItem   `json:"items"`
}

// ShowOutput contains the result of the Show operation.
type ShowOutput struct {
	Workspace string       `json:"workspace"`
	GroupID   string       `json:"group_id"`
	GroupName string       `json:"group_name,omitempty"`
	Records   []ShowRecord `json:"records"`
}

// Show decodes the stored snapshot for one group and annotates which stored
// items still resolve against the live workspace.
//
// The token may name a group that no longer exists live; in that case the
// normalized token is used as a raw group ID so snapshots of deleted groups
// stay inspectable.
func Show(ctx context.Context, database *sql.DB, dir directory.Directory, input ShowInput) (*ShowOutput, error) {
	workspace := normalizeWorkspace(input.Workspace)
	if input.Group == "" {
		return nil, errors.NewInvalidRequest("group is required")
	}

	groupID := directory.NormalizeToken(input.Group)
	groupName := ""
	g, err := dir.ResolveGroup(ctx, workspace, input.Group)
	if err != nil {
		return nil, errors.NewGatewayUnavailable(err)
	}
	if g != nil {
		groupID = g.ID
		groupName = g.Name
	}

	out := &ShowOutput{
		Workspace: workspace,
		GroupID:   groupID,
		GroupName: groupName,
		Records:   []ShowRecord{},
	}

	for _, kind := range directory.Kinds() {
		encoded, ok, err := db.Get(ctx, database, workspace, kind, groupID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		ids := order.Decode(encoded)
		items := make([]StoredItem, len(ids))
		for i, id := range ids {
			items[i] = StoredItem{ID: id, Position: i}
			item, err := dir.ResolveItem(ctx, workspace, id, kind)
			if err != nil {
				return nil, errors.NewGatewayUnavailable(err)
			}
			if item != nil {
				items[i].Name = item.Name
				items[i].Live = true
			}
		}
		out.Records = append(out.Records, ShowRecord{Kind: kind, Items: items})
	}

	if len(out.Records) == 0 {
		return nil, errors.NewNotFound(input.Group)
	}

	return out, nil
}

package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/lineup/internal/db"
	"github.com/hpungsan/lineup/internal/directory"
	"github.com/hpungsan/lineup/internal/errors"
)

// ClearInput contains parameters for the Clear operation.
type ClearInput struct {
	Workspace string
	Group     string // optional token; empty clears every record in the workspace
}

// ClearOutput contains the result of the Clear operation.
type ClearOutput struct {
	Workspace string `json:"workspace"`
	Cleared   int    `json:"cleared"` // records removed, counted per (group, kind)
}

// Clear drops stored snapshot records without touching the live workspace.
//
// With a group token, both kinds' records for that group are removed; the
// token may reference a group that no longer exists live, in which case the
// normalized token is used as a raw group ID. With no token, every record in
// the workspace goes.
func Clear(ctx context.Context, database *sql.DB, dir directory.Directory, input ClearInput) (*ClearOutput, error) {
	workspace := normalizeWorkspace(input.Workspace)

	var scope []string
	if input.Group != "" {
		groupID := directory.NormalizeToken(input.Group)
		g, err := dir.ResolveGroup(ctx, workspace, input.Group)
		if err != nil {
			return nil, errors.NewGatewayUnavailable(err)
		}
		if g != nil {
			groupID = g.ID
		}
		scope = []string{groupID}
	} else {
		var err error
		scope, err = storedGroupIDs(ctx, database, workspace)
		if err != nil {
			return nil, err
		}
	}

	out := &ClearOutput{Workspace: workspace}
	for _, groupID := range scope {
		for _, kind := range directory.Kinds() {
			_, ok, err := db.Get(ctx, database, workspace, kind, groupID)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if err := db.Unset(ctx, database, workspace, kind, groupID); err != nil {
				return nil, err
			}
			out.Cleared++
		}
	}

	return out, nil
}

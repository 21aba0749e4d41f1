// Package ops implements the operations behind the lineup command surface:
// capturing the current ordering of items under each group and rolling a
// stored ordering back onto the live workspace.
package ops

import (
	"context"
	"crypto/rand"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/lineup/internal/db"
	"github.com/hpungsan/lineup/internal/directory"
	"github.com/hpungsan/lineup/internal/errors"
)

// ItemRef names one item inside a report.
type ItemRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// generateULID creates a run identifier for one capture/rollback invocation.
func generateULID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// normalizeWorkspace trims and defaults the workspace name.
func normalizeWorkspace(workspace string) string {
	workspace = strings.TrimSpace(workspace)
	if workspace == "" {
		return "default"
	}
	return workspace
}

// resolveGroup turns an operator token into a live group.
// A token that matches nothing refuses the whole call with INVALID_GROUP
// before any partial work happens.
func resolveGroup(ctx context.Context, dir directory.Directory, workspace, token string) (*directory.Group, error) {
	g, err := dir.ResolveGroup(ctx, workspace, token)
	if err != nil {
		return nil, errors.NewGatewayUnavailable(err)
	}
	if g == nil {
		return nil, errors.NewInvalidGroup(token)
	}
	return g, nil
}

// storedGroupIDs returns the union of group IDs holding a record of either
// kind, sorted ascending so all-group flows iterate deterministically.
func storedGroupIDs(ctx context.Context, database *sql.DB, workspace string) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, kind := range directory.Kinds() {
		groups, err := db.ListGroups(ctx, database, workspace, kind)
		if err != nil {
			return nil, err
		}
		for _, id := range groups {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

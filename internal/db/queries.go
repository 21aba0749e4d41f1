package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/hpungsan/lineup/internal/directory"
	"github.com/hpungsan/lineup/internal/errors"
)

// Get returns the stored ordering for (workspace, kind, group).
// The second return is false when no record exists; absence is not an error.
func Get(ctx context.Context, db *sql.DB, workspace string, kind directory.Kind, groupID string) (string, bool, error) {
	var itemIDs string
	err := db.QueryRowContext(ctx,
		`SELECT item_ids FROM snapshots WHERE workspace = ? AND kind = ? AND group_id = ?`,
		workspace, string(kind), groupID,
	).Scan(&itemIDs)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewStoreUnavailable(err)
	}
	return itemIDs, true, nil
}

// Set upserts the stored ordering for (workspace, kind, group).
// The write is synchronous: when Set returns, the record is persisted.
func Set(ctx context.Context, db *sql.DB, workspace string, kind directory.Kind, groupID, itemIDs string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO snapshots (workspace, kind, group_id, item_ids, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(workspace, kind, group_id) DO UPDATE SET
		   item_ids = excluded.item_ids,
		   updated_at = excluded.updated_at`,
		workspace, string(kind), groupID, itemIDs, time.Now().Unix(),
	)
	if err != nil {
		return errors.NewStoreUnavailable(err)
	}
	return nil
}

// Unset deletes the record for (workspace, kind, group) entirely.
// Deleting a record that does not exist is a no-op.
func Unset(ctx context.Context, db *sql.DB, workspace string, kind directory.Kind, groupID string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE workspace = ? AND kind = ? AND group_id = ?`,
		workspace, string(kind), groupID,
	)
	if err != nil {
		return errors.NewStoreUnavailable(err)
	}
	return nil
}

// ListGroups returns all group IDs holding a record for (workspace, kind),
// in ascending group-ID order.
func ListGroups(ctx context.Context, db *sql.DB, workspace string, kind directory.Kind) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT group_id FROM snapshots WHERE workspace = ? AND kind = ? ORDER BY group_id`,
		workspace, string(kind),
	)
	if err != nil {
		return nil, errors.NewStoreUnavailable(err)
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var groupID string
		if err := rows.Scan(&groupID); err != nil {
			return nil, errors.NewStoreUnavailable(err)
		}
		groups = append(groups, groupID)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreUnavailable(err)
	}
	return groups, nil
}

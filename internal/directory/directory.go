// Package directory defines the live resource graph the engine reads and
// mutates: workspaces containing groups, groups containing positioned items
// of two kinds. Implementations back this onto a real gateway connection or
// an in-memory fixture.
package directory

import (
	"context"
	"strings"
)

// Kind tags the two item classes tracked independently per group.
type Kind string

const (
	KindText  Kind = "text"
	KindVoice Kind = "voice"
)

// Kinds returns both item kinds in canonical processing order.
// Capture and rollback always walk kinds in this order.
func Kinds() []Kind {
	return []Kind{KindText, KindVoice}
}

// Group is a named container of ordered items.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Item is an orderable resource inside a group.
//
// Position is 0-based, dense, and unique within (group, kind). Guard is the
// minimum standing required to manage the item; the capability check compares
// it against the actor's standing.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	GroupID  string `json:"group_id"`
	Kind     Kind   `json:"kind"`
	Position int    `json:"position"`
	Guard    int    `json:"guard"`
}

// Actor is the acting entity issuing position mutations.
type Actor struct {
	ID          string `json:"id"`
	Standing    int    `json:"standing"`
	ManageItems bool   `json:"manage_items"`
}

// Directory is the live resource accessor consumed by capture and rollback.
//
// Resolve methods return (nil, nil) when the token matches nothing; an error
// means the directory itself could not answer. Items returns items ordered by
// current position ascending.
//
// Move issues a single position-mutation request: re-parent the item into the
// given group at the given position. The request is asynchronous on the remote
// side; Move returns once the request has been issued, not once it has been
// applied, and an error reports only a failure to issue.
type Directory interface {
	Groups(ctx context.Context, workspace string) ([]Group, error)
	ResolveGroup(ctx context.Context, workspace, token string) (*Group, error)
	Items(ctx context.Context, workspace, groupID string, kind Kind) ([]Item, error)
	ResolveItem(ctx context.Context, workspace, token string, kind Kind) (*Item, error)
	Self(ctx context.Context, workspace string) (*Actor, error)
	Move(ctx context.Context, workspace, itemID, groupID string, position int) error
}

// NormalizeToken prepares an operator-supplied token for resolution:
// trims whitespace, unwraps the <#id> mention syntax, and lowercases for
// case-insensitive name matching. Callers pass one already-split token at a
// time; this never splits.
func NormalizeToken(token string) string {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, "<#") && strings.HasSuffix(token, ">") {
		token = token[2 : len(token)-1]
	}
	return strings.ToLower(token)
}

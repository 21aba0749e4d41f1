package directory

import (
	"context"
	"sort"
	"sync"
)

// MoveRequest records one issued position mutation.
type MoveRequest struct {
	Workspace string
	ItemID    string
	GroupID   string
	Position  int
}

// Memory is an in-memory Directory used by tests and local fixtures.
//
// Moves apply immediately (the remote system's eventual application collapsed
// to "now") and every issued request is appended to a log so callers can
// assert on issue order and payload.
type Memory struct {
	mu      sync.Mutex
	groups  map[string][]Group
	items   map[string][]*Item
	self    map[string]Actor
	moves   []MoveRequest
	moveErr error
}

// NewMemory creates an empty in-memory directory.
func NewMemory() *Memory {
	return &Memory{
		groups: make(map[string][]Group),
		items:  make(map[string][]*Item),
		self:   make(map[string]Actor),
	}
}

// AddGroup registers a group in a workspace.
func (m *Memory) AddGroup(workspace string, g Group) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups[workspace] = append(m.groups[workspace], g)
}

// AddItem registers an item in a workspace.
func (m *Memory) AddItem(workspace string, it Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := it
	m.items[workspace] = append(m.items[workspace], &cp)
}

// RemoveItem deletes an item, simulating deletion since a capture.
func (m *Memory) RemoveItem(workspace, itemID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.items[workspace]
	for i, it := range items {
		if it.ID == itemID {
			m.items[workspace] = append(items[:i], items[i+1:]...)
			return
		}
	}
}

// RemoveGroup deletes a group, simulating deletion since a capture.
// Items under it are left parentless rather than removed.
func (m *Memory) RemoveGroup(workspace, groupID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	groups := m.groups[workspace]
	for i, g := range groups {
		if g.ID == groupID {
			m.groups[workspace] = append(groups[:i], groups[i+1:]...)
			return
		}
	}
}

// SetSelf sets the acting entity for a workspace.
func (m *Memory) SetSelf(workspace string, a Actor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.self[workspace] = a
}

// SetPosition rewrites an item's live position, simulating external drift.
func (m *Memory) SetPosition(workspace, itemID string, position int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items[workspace] {
		if it.ID == itemID {
			it.Position = position
			return
		}
	}
}

// FailMoves makes subsequent Move calls return err. Pass nil to recover.
func (m *Memory) FailMoves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moveErr = err
}

// Moves returns a copy of the issued move log in issue order.
func (m *Memory) Moves() []MoveRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MoveRequest, len(m.moves))
	copy(out, m.moves)
	return out
}

// Groups implements Directory.
func (m *Memory) Groups(_ context.Context, workspace string) ([]Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Group, len(m.groups[workspace]))
	copy(out, m.groups[workspace])
	return out, nil
}

// ResolveGroup implements Directory: raw ID, <#id> mention, or
// case-insensitive name.
func (m *Memory) ResolveGroup(_ context.Context, workspace, token string) (*Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	norm := NormalizeToken(token)
	if norm == "" {
		return nil, nil
	}
	for _, g := range m.groups[workspace] {
		if g.ID == norm || NormalizeToken(g.Name) == norm {
			cp := g
			return &cp, nil
		}
	}
	return nil, nil
}

// Items implements Directory; results are ordered by current position.
func (m *Memory) Items(_ context.Context, workspace, groupID string, kind Kind) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Item
	for _, it := range m.items[workspace] {
		if it.GroupID == groupID && it.Kind == kind {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// ResolveItem implements Directory, restricted to the given kind.
func (m *Memory) ResolveItem(_ context.Context, workspace, token string, kind Kind) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	norm := NormalizeToken(token)
	if norm == "" {
		return nil, nil
	}
	for _, it := range m.items[workspace] {
		if it.Kind != kind {
			continue
		}
		if it.ID == norm || NormalizeToken(it.Name) == norm {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

// Self implements Directory.
func (m *Memory) Self(_ context.Context, workspace string) (*Actor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.self[workspace]
	if !ok {
		// A fixture without an explicit actor gets a permissive one.
		a = Actor{ID: "self", Standing: 1 << 30, ManageItems: true}
	}
	return &a, nil
}

// Move implements Directory: logs the request and applies it immediately.
func (m *Memory) Move(_ context.Context, workspace, itemID, groupID string, position int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.moveErr != nil {
		return m.moveErr
	}
	m.moves = append(m.moves, MoveRequest{
		Workspace: workspace,
		ItemID:    itemID,
		GroupID:   groupID,
		Position:  position,
	})
	for _, it := range m.items[workspace] {
		if it.ID == itemID {
			it.GroupID = groupID
			it.Position = position
			break
		}
	}
	return nil
}

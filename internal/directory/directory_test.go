package directory

import (
	"context"
	"testing"
)

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{
			name:  "raw id",
			token: "123456",
			want:  "123456",
		},
		{
			name:  "mention syntax",
			token: "<#123456>",
			want:  "123456",
		},
		{
			name:  "mixed case name",
			token: "General Chat",
			want:  "general chat",
		},
		{
			name:  "surrounding whitespace",
			token: "  staff  ",
			want:  "staff",
		},
		{
			name:  "empty",
			token: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeToken(tt.token); got != tt.want {
				t.Errorf("NormalizeToken(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestMemory_ResolveGroup(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.AddGroup("ws", Group{ID: "10", Name: "Staff"})

	byID, err := m.ResolveGroup(ctx, "ws", "10")
	if err != nil || byID == nil {
		t.Fatalf("resolve by id: got %v, %v", byID, err)
	}

	byName, err := m.ResolveGroup(ctx, "ws", "staff")
	if err != nil || byName == nil || byName.ID != "10" {
		t.Fatalf("resolve by name: got %v, %v", byName, err)
	}

	byMention, err := m.ResolveGroup(ctx, "ws", "<#10>")
	if err != nil || byMention == nil {
		t.Fatalf("resolve by mention: got %v, %v", byMention, err)
	}

	missing, err := m.ResolveGroup(ctx, "ws", "nope")
	if err != nil {
		t.Fatalf("resolve missing: %v", err)
	}
	if missing != nil {
		t.Errorf("resolve missing = %v, want nil", missing)
	}
}

func TestMemory_ItemsOrderedByPosition(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.AddGroup("ws", Group{ID: "10", Name: "General"})
	m.AddItem("ws", Item{ID: "3", Name: "c", GroupID: "10", Kind: KindText, Position: 2})
	m.AddItem("ws", Item{ID: "1", Name: "a", GroupID: "10", Kind: KindText, Position: 0})
	m.AddItem("ws", Item{ID: "2", Name: "b", GroupID: "10", Kind: KindText, Position: 1})
	m.AddItem("ws", Item{ID: "9", Name: "v", GroupID: "10", Kind: KindVoice, Position: 0})

	items, err := m.Items(ctx, "ws", "10", KindText)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Items len = %d, want 3 (voice excluded)", len(items))
	}
	for i, it := range items {
		if it.Position != i {
			t.Errorf("items[%d].Position = %d, want %d", i, it.Position, i)
		}
	}
}

func TestMemory_ResolveItem_KindRestricted(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.AddItem("ws", Item{ID: "5", Name: "lobby", GroupID: "10", Kind: KindVoice, Position: 0})

	asText, err := m.ResolveItem(ctx, "ws", "5", KindText)
	if err != nil {
		t.Fatalf("ResolveItem: %v", err)
	}
	if asText != nil {
		t.Error("voice item resolved under text kind")
	}

	asVoice, err := m.ResolveItem(ctx, "ws", "5", KindVoice)
	if err != nil || asVoice == nil {
		t.Fatalf("ResolveItem voice: got %v, %v", asVoice, err)
	}
}

func TestMemory_MoveAppliesAndLogs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.AddItem("ws", Item{ID: "1", Name: "a", GroupID: "10", Kind: KindText, Position: 4})

	if err := m.Move(ctx, "ws", "1", "20", 0); err != nil {
		t.Fatalf("Move: %v", err)
	}

	it, err := m.ResolveItem(ctx, "ws", "1", KindText)
	if err != nil || it == nil {
		t.Fatalf("ResolveItem after move: %v, %v", it, err)
	}
	if it.GroupID != "20" || it.Position != 0 {
		t.Errorf("item after move = group %s pos %d, want group 20 pos 0", it.GroupID, it.Position)
	}

	moves := m.Moves()
	if len(moves) != 1 {
		t.Fatalf("move log len = %d, want 1", len(moves))
	}
	want := MoveRequest{Workspace: "ws", ItemID: "1", GroupID: "20", Position: 0}
	if moves[0] != want {
		t.Errorf("move log[0] = %+v, want %+v", moves[0], want)
	}
}

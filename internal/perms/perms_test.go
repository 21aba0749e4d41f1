package perms

import (
	"testing"

	"github.com/hpungsan/lineup/internal/directory"
)

func TestCanMove(t *testing.T) {
	tests := []struct {
		name  string
		actor directory.Actor
		item  directory.Item
		want  bool
	}{
		{
			name:  "manager above guard",
			actor: directory.Actor{Standing: 10, ManageItems: true},
			item:  directory.Item{Guard: 5},
			want:  true,
		},
		{
			name:  "manager at guard level",
			actor: directory.Actor{Standing: 5, ManageItems: true},
			item:  directory.Item{Guard: 5},
			want:  false,
		},
		{
			name:  "manager below guard",
			actor: directory.Actor{Standing: 3, ManageItems: true},
			item:  directory.Item{Guard: 5},
			want:  false,
		},
		{
			name:  "no manage capability",
			actor: directory.Actor{Standing: 10, ManageItems: false},
			item:  directory.Item{Guard: 0},
			want:  false,
		},
		{
			name:  "unguarded item",
			actor: directory.Actor{Standing: 1, ManageItems: true},
			item:  directory.Item{Guard: 0},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanMove(tt.actor, tt.item); got != tt.want {
				t.Errorf("CanMove() = %v, want %v", got, tt.want)
			}
		})
	}
}

package ops

import (
	"context"
	"reflect"
	"testing"

	"github.com/hpungsan/lineup/internal/db"
	"github.com/hpungsan/lineup/internal/directory"
)

func TestList(t *testing.T) {
	database := setupTestDB(t)
	dir := directory.NewMemory()
	dir.AddGroup(testWS, directory.Group{ID: "10", Name: "General"})
	ctx := context.Background()

	if err := db.Set(ctx, database, testWS, directory.KindText, "10", "1,2"); err != nil {
		t.Fatal(err)
	}
	if err := db.Set(ctx, database, testWS, directory.KindVoice, "10", "9"); err != nil {
		t.Fatal(err)
	}
	// Record for a group deleted since capture: listed without a name.
	if err := db.Set(ctx, database, testWS, directory.KindText, "05", "5"); err != nil {
		t.Fatal(err)
	}

	out, err := List(ctx, database, dir, ListInput{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(out.Groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(out.Groups))
	}

	// Ascending group-ID order
	if out.Groups[0].GroupID != "05" || out.Groups[1].GroupID != "10" {
		t.Errorf("order = %s, %s; want 05, 10", out.Groups[0].GroupID, out.Groups[1].GroupID)
	}
	if out.Groups[0].GroupName != "" {
		t.Errorf("dead group name = %q, want empty", out.Groups[0].GroupName)
	}

	live := out.Groups[1]
	if live.GroupName != "General" {
		t.Errorf("live group name = %q, want General", live.GroupName)
	}
	wantKinds := []directory.Kind{directory.KindText, directory.KindVoice}
	if !reflect.DeepEqual(live.Kinds, wantKinds) {
		t.Errorf("kinds = %v, want %v", live.Kinds, wantKinds)
	}
	if live.Items != 3 {
		t.Errorf("items = %d, want 3", live.Items)
	}
}

func TestList_EmptyWorkspace(t *testing.T) {
	database := setupTestDB(t)
	dir := directory.NewMemory()

	out, err := List(context.Background(), database, dir, ListInput{Workspace: "empty"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(out.Groups) != 0 {
		t.Errorf("groups = %v, want empty", out.Groups)
	}
}

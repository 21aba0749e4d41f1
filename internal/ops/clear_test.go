package ops

import (
	"context"
	"testing"

	"github.com/hpungsan/lineup/internal/db"
	"github.com/hpungsan/lineup/internal/directory"
)

func TestClear_SingleGroup(t *testing.T) {
	database := setupTestDB(t)
	dir := directory.NewMemory()
	dir.AddGroup(testWS, directory.Group{ID: "10", Name: "General"})
	ctx := context.Background()

	if err := db.Set(ctx, database, testWS, directory.KindText, "10", "1"); err != nil {
		t.Fatal(err)
	}
	if err := db.Set(ctx, database, testWS, directory.KindVoice, "10", "9"); err != nil {
		t.Fatal(err)
	}
	if err := db.Set(ctx, database, testWS, directory.KindText, "20", "2"); err != nil {
		t.Fatal(err)
	}

	out, err := Clear(ctx, database, dir, ClearInput{Group: "general"})
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if out.Cleared != 2 {
		t.Errorf("Cleared = %d, want 2 (both kinds)", out.Cleared)
	}

	if _, ok, _ := db.Get(ctx, database, testWS, directory.KindText, "10"); ok {
		t.Error("text record for 10 survived clear")
	}
	if _, ok, _ := db.Get(ctx, database, testWS, directory.KindText, "20"); !ok {
		t.Error("unrelated record for 20 removed by single-group clear")
	}
}

func TestClear_AllRecords(t *testing.T) {
	database := setupTestDB(t)
	dir := directory.NewMemory()
	ctx := context.Background()

	if err := db.Set(ctx, database, testWS, directory.KindText, "10", "1"); err != nil {
		t.Fatal(err)
	}
	if err := db.Set(ctx, database, testWS, directory.KindVoice, "20", "9"); err != nil {
		t.Fatal(err)
	}

	out, err := Clear(ctx, database, dir, ClearInput{})
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if out.Cleared != 2 {
		t.Errorf("Cleared = %d, want 2", out.Cleared)
	}

	ids, err := storedGroupIDs(ctx, database, testWS)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Errorf("remaining groups = %v, want none", ids)
	}
}

func TestClear_DeadGroupByRawID(t *testing.T) {
	database := setupTestDB(t)
	dir := directory.NewMemory()
	ctx := context.Background()

	if err := db.Set(ctx, database, testWS, directory.KindText, "77", "1"); err != nil {
		t.Fatal(err)
	}

	out, err := Clear(ctx, database, dir, ClearInput{Group: "77"})
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if out.Cleared != 1 {
		t.Errorf("Cleared = %d, want 1", out.Cleared)
	}
}

func TestClear_NothingStored(t *testing.T) {
	database := setupTestDB(t)
	dir := directory.NewMemory()
	dir.AddGroup(testWS, directory.Group{ID: "10", Name: "General"})

	out, err := Clear(context.Background(), database, dir, ClearInput{Group: "10"})
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if out.Cleared != 0 {
		t.Errorf("Cleared = %d, want 0", out.Cleared)
	}
}

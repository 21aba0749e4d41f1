package db

import (
	"context"
	"database/sql"
	"reflect"
	"testing"

	"github.com/hpungsan/lineup/internal/directory"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestGet_Absent(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	val, ok, err := Get(ctx, database, "ws", directory.KindText, "10")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("ok = true for absent record")
	}
	if val != "" {
		t.Errorf("val = %q, want empty", val)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	if err := Set(ctx, database, "ws", directory.KindText, "10", "1,2,3"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	val, ok, err := Get(ctx, database, "ws", directory.KindText, "10")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("ok = false after Set")
	}
	if val != "1,2,3" {
		t.Errorf("val = %q, want %q", val, "1,2,3")
	}
}

func TestSet_Upsert(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	if err := Set(ctx, database, "ws", directory.KindText, "10", "1,2"); err != nil {
		t.Fatalf("first Set() error = %v", err)
	}
	if err := Set(ctx, database, "ws", directory.KindText, "10", "2,1"); err != nil {
		t.Fatalf("second Set() error = %v", err)
	}

	val, _, err := Get(ctx, database, "ws", directory.KindText, "10")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if val != "2,1" {
		t.Errorf("val = %q, want overwritten value %q", val, "2,1")
	}
}

func TestKeysAreKindScoped(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	if err := Set(ctx, database, "ws", directory.KindText, "10", "1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	_, ok, err := Get(ctx, database, "ws", directory.KindVoice, "10")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("text record visible under voice kind")
	}
}

func TestKeysAreWorkspaceScoped(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	if err := Set(ctx, database, "ws-a", directory.KindText, "10", "1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	_, ok, err := Get(ctx, database, "ws-b", directory.KindText, "10")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("record visible from another workspace")
	}
}

func TestUnset(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	if err := Set(ctx, database, "ws", directory.KindText, "10", "1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := Unset(ctx, database, "ws", directory.KindText, "10"); err != nil {
		t.Fatalf("Unset() error = %v", err)
	}

	_, ok, err := Get(ctx, database, "ws", directory.KindText, "10")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("record survived Unset")
	}

	// Unsetting a missing key is a no-op, not an error
	if err := Unset(ctx, database, "ws", directory.KindText, "missing"); err != nil {
		t.Errorf("Unset() on missing key error = %v", err)
	}
}

func TestListGroups(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	for _, groupID := range []string{"30", "10", "20"} {
		if err := Set(ctx, database, "ws", directory.KindText, groupID, "1"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}
	if err := Set(ctx, database, "ws", directory.KindVoice, "40", "2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	groups, err := ListGroups(ctx, database, "ws", directory.KindText)
	if err != nil {
		t.Fatalf("ListGroups() error = %v", err)
	}
	want := []string{"10", "20", "30"}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("ListGroups() = %v, want sorted %v", groups, want)
	}
}

func TestListGroups_Empty(t *testing.T) {
	database := setupTestDB(t)

	groups, err := ListGroups(context.Background(), database, "ws", directory.KindText)
	if err != nil {
		t.Fatalf("ListGroups() error = %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("ListGroups() = %v, want empty", groups)
	}
}

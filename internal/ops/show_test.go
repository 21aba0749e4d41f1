package ops

import (
	"context"
	"testing"

	"github.com/hpungsan/lineup/internal/db"
	"github.com/hpungsan/lineup/internal/directory"
	"github.com/hpungsan/lineup/internal/errors"
)

func TestShow_AnnotatesLiveness(t *testing.T) {
	database := setupTestDB(t)
	dir := directory.NewMemory()
	seedGeneral(dir)
	ctx := context.Background()

	if _, err := Capture(ctx, database, dir, CaptureInput{Group: "10"}); err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	dir.RemoveItem(testWS, "102")

	out, err := Show(ctx, database, dir, ShowInput{Group: "general"})
	if err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if out.GroupID != "10" || out.GroupName != "General" {
		t.Errorf("group = %s/%s, want 10/General", out.GroupID, out.GroupName)
	}
	if len(out.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(out.Records))
	}

	text := out.Records[0]
	if text.Kind != directory.KindText {
		t.Fatalf("records[0].Kind = %s, want text", text.Kind)
	}
	if len(text.Items) != 3 {
		t.Fatalf("text items = %d, want 3 (deleted items stay listed)", len(text.Items))
	}
	if !text.Items[0].Live || text.Items[0].Name != "welcome" {
		t.Errorf("items[0] = %+v, want live welcome", text.Items[0])
	}
	if text.Items[1].Live || text.Items[1].Name != "" {
		t.Errorf("items[1] = %+v, want dead entry for deleted 102", text.Items[1])
	}
	if text.Items[2].Position != 2 {
		t.Errorf("items[2].Position = %d, want stored index 2", text.Items[2].Position)
	}
}

func TestShow_RequiresGroup(t *testing.T) {
	database := setupTestDB(t)
	dir := directory.NewMemory()

	_, err := Show(context.Background(), database, dir, ShowInput{})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Fatalf("Show() error = %v, want INVALID_REQUEST", err)
	}
}

func TestShow_NoRecord(t *testing.T) {
	database := setupTestDB(t)
	dir := directory.NewMemory()
	seedGeneral(dir)

	_, err := Show(context.Background(), database, dir, ShowInput{Group: "general"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("Show() error = %v, want NOT_FOUND", err)
	}
}

func TestShow_DeletedGroupByRawID(t *testing.T) {
	database := setupTestDB(t)
	dir := directory.NewMemory()
	ctx := context.Background()

	// Record for a group that no longer exists live; the raw ID still works.
	if err := db.Set(ctx, database, testWS, directory.KindText, "77", "771,772"); err != nil {
		t.Fatal(err)
	}

	out, err := Show(ctx, database, dir, ShowInput{Group: "77"})
	if err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if out.GroupID != "77" || out.GroupName != "" {
		t.Errorf("group = %s/%q, want raw 77 with no live name", out.GroupID, out.GroupName)
	}
	if len(out.Records) != 1 || len(out.Records[0].Items) != 2 {
		t.Errorf("records = %+v, want one text record with two dead items", out.Records)
	}
}

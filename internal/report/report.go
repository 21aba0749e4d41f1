// Package report renders operation outputs for presentation. The ops layer
// only builds structured reports; turning them into operator-facing text
// happens here, so callers (CLI, web) stay free to pick a format.
package report

import (
	"fmt"
	"strings"

	"github.com/hpungsan/lineup/internal/directory"
	"github.com/hpungsan/lineup/internal/ops"
)

// kindTitle maps a kind to its heading label.
func kindTitle(kind directory.Kind) string {
	switch kind {
	case directory.KindText:
		return "Text channels"
	case directory.KindVoice:
		return "Voice channels"
	default:
		return string(kind)
	}
}

// RenderCapture renders a capture report as markdown.
func RenderCapture(out *ops.CaptureOutput) string {
	var b strings.Builder
	b.WriteString("# Order of channels\n\n")
	fmt.Fprintf(&b, "Workspace: `%s` (run `%s`)\n", out.Workspace, out.RunID)

	if len(out.Groups) == 0 {
		b.WriteString("\nNothing captured: no groups with items in scope.\n")
		return b.String()
	}

	for _, g := range out.Groups {
		fmt.Fprintf(&b, "\n## %s (%s)\n\n", kindTitle(g.Kind), g.GroupName)
		for i, item := range g.Items {
			fmt.Fprintf(&b, "%d. %s\n", i+1, item.Name)
		}
	}
	return b.String()
}

// RenderRollback renders a rollback report as markdown.
// The headline is an unconditional "done"; the skip section only appears for
// callers that want to see what was silently left alone.
func RenderRollback(out *ops.RollbackOutput) string {
	var b strings.Builder
	b.WriteString("# Rollback done\n\n")
	fmt.Fprintf(&b, "Workspace: `%s` (run `%s`)\n\n", out.Workspace, out.RunID)
	fmt.Fprintf(&b, "Issued %d move requests across %d groups.\n", out.Issued, out.Groups)

	if len(out.Skipped) > 0 {
		b.WriteString("\n## Skipped\n\n")
		for _, s := range out.Skipped {
			fmt.Fprintf(&b, "- group %s / %s: item %s at position %d (%s)\n",
				s.GroupID, s.Kind, s.ItemID, s.Position, s.Reason)
		}
	}
	return b.String()
}

// RenderShow renders a stored snapshot as markdown.
func RenderShow(out *ops.ShowOutput) string {
	var b strings.Builder
	name := out.GroupName
	if name == "" {
		name = out.GroupID
	}
	fmt.Fprintf(&b, "# Snapshot of %s\n\n", name)
	fmt.Fprintf(&b, "Workspace: `%s`\n", out.Workspace)

	for _, rec := range out.Records {
		fmt.Fprintf(&b, "\n## %s\n\n", kindTitle(rec.Kind))
		for _, item := range rec.Items {
			if item.Live {
				fmt.Fprintf(&b, "%d. %s\n", item.Position+1, item.Name)
			} else {
				fmt.Fprintf(&b, "%d. `%s` (no longer live)\n", item.Position+1, item.ID)
			}
		}
	}
	return b.String()
}

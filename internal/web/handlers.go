package web

import (
	"database/sql"
	"net/http"

	"github.com/hpungsan/lineup/internal/config"
	"github.com/hpungsan/lineup/internal/directory"
	"github.com/hpungsan/lineup/internal/errors"
	"github.com/hpungsan/lineup/internal/ops"
	"github.com/hpungsan/lineup/internal/report"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	dir      directory.Directory
	renderer *Renderer
}

// workspace picks the workspace from the query string, falling back to the
// configured default.
func (h *Handlers) workspace(r *http.Request) string {
	if ws := r.URL.Query().Get("workspace"); ws != "" {
		return ws
	}
	return h.cfg.Workspace
}

// HandleList handles GET /snapshots: list groups with stored snapshots.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	workspace := h.workspace(r)

	result, err := ops.List(r.Context(), h.db, h.dir, ops.ListInput{Workspace: workspace})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "list", ListPageData{
		PageData: PageData{
			Title:   "Snapshots",
			Version: h.renderer.version,
			Nav:     "snapshots",
		},
		Workspace: workspace,
		Groups:    result.Groups,
	})
}

// HandleDetail handles GET /snapshots/{group}: view one stored snapshot.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	group := r.PathValue("group")
	if group == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("group is required"))
		return
	}

	workspace := h.workspace(r)

	snapshot, err := ops.Show(r.Context(), h.db, h.dir, ops.ShowInput{
		Workspace: workspace,
		Group:     group,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	name := snapshot.GroupName
	if name == "" {
		name = snapshot.GroupID
	}

	h.renderer.renderPage(w, "detail", DetailPageData{
		PageData: PageData{
			Title:   name,
			Version: h.renderer.version,
			Nav:     "snapshots",
		},
		Workspace:    workspace,
		Snapshot:     snapshot,
		RenderedHTML: renderMarkdown(report.RenderShow(snapshot)),
		DisplayName:  name,
	})
}

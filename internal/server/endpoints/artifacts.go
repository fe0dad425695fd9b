package endpoints

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fintab/fintab/internal/api"
	"github.com/fintab/fintab/internal/svcctx"
)

// ArtifactsEndpoint serves generated spreadsheets from the public directory.
// Only plain files are served: no directory listings, no path traversal.
type ArtifactsEndpoint struct{}

var _ api.Endpoint = (*ArtifactsEndpoint)(nil)

func (e *ArtifactsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/public/{name...}", e.handler
}

func (e *ArtifactsEndpoint) RequiresInit() bool { return false }

func (e *ArtifactsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" || strings.Contains(name, "..") {
		writeError(w, http.StatusNotFound, "artifact not found")
		return
	}

	dir := publicDirFrom(r.Context())
	if dir == "" {
		writeError(w, http.StatusNotFound, "artifact not found")
		return
	}

	path := filepath.Join(dir, filepath.FromSlash(name))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, "artifact not found")
		return
	}

	http.ServeFile(w, r, path)
}

func (e *ArtifactsEndpoint) Command(_ func() string) *cobra.Command {
	return nil // Artifacts are fetched by URL, not via CLI
}

// publicDirFrom resolves the artifact directory: the configured override
// when set, the home public directory otherwise.
func publicDirFrom(ctx context.Context) string {
	if mgr := svcctx.ConfigFrom(ctx); mgr != nil {
		if dir := mgr.Get().Storage.PublicDir; dir != "" {
			return dir
		}
	}
	if h := svcctx.HomeFrom(ctx); h != nil {
		return h.PublicPath()
	}
	return ""
}

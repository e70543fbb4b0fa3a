package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/technophil98/traefik-docker-http-provider-server/pkg/serializers"
	"github.com/technophil98/traefik-docker-http-provider-server/pkg/state"
)

// SnapshotSource provides the currently published configuration snapshot.
type SnapshotSource interface {
	Current() *state.Snapshot
}

// NewDynamicConfigurationHandler returns the handler for the provider
// endpoint Traefik polls. Every successful response is one complete snapshot
// that existed at or after request arrival; label-level problems never
// surface here.
func NewDynamicConfigurationHandler(snapshots SnapshotSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed,
				"Only GET is supported", false, nil)
			return
		}

		snapshot := snapshots.Current()
		if snapshot == nil {
			WriteError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
				"Configuration snapshot not yet available", true, nil)
			return
		}

		w.Header().Set("X-Snapshot-Generation", strconv.FormatUint(snapshot.Generation, 10))

		if wantsYAML(r) {
			serializers.RespondYAML(w, http.StatusOK, snapshot.Config)
			return
		}
		serializers.RespondJSON(w, http.StatusOK, snapshot.Config)
	}
}

// wantsYAML reports whether the client asked for the YAML rendition, either
// through the Accept header or a format query parameter.
func wantsYAML(r *http.Request) bool {
	if format := r.URL.Query().Get("format"); format != "" {
		return strings.EqualFold(format, "yaml")
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/yaml") || strings.Contains(accept, "application/yaml")
}

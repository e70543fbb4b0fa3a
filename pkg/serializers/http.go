// Package serializers writes API payloads in the formats the provider
// endpoint supports: JSON (the default) and YAML (what Traefik's HTTP
// provider also accepts, and what the first version of this server spoke).
package serializers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"
)

// RespondJSON writes a JSON response with the given status code and data.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode JSON response: %v\n", err)
	}
}

// RespondYAML writes a YAML response with the given status code and data.
func RespondYAML(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "text/yaml")
	w.WriteHeader(statusCode)
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode YAML response: %v\n", err)
	}
	_ = encoder.Close()
}

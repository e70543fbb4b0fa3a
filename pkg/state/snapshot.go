package state

import (
	"time"

	"github.com/technophil98/traefik-docker-http-provider-server/pkg/dynamic"
)

// Snapshot is one fully built, immutable instance of the dynamic
// configuration document. A snapshot is never edited after publication; it is
// superseded wholesale by the next one.
type Snapshot struct {
	// Config is the merged document. Never nil.
	Config *dynamic.Configuration

	// Generation increases by one with every published snapshot.
	Generation uint64

	// BuiltAt records when the snapshot was assembled.
	BuiltAt time.Time

	// Containers is the number of running containers the snapshot was
	// derived from.
	Containers int
}

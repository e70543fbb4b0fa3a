package dynamic

import (
	"errors"
	"fmt"
	"sort"

	"github.com/technophil98/traefik-docker-http-provider-server/pkg/label"
)

// Warning records a recoverable problem encountered while interpreting a
// container's labels. Warnings never abort processing.
type Warning struct {
	ContainerID string
	Key         string
	Message     string
}

func (w Warning) String() string {
	if w.Key != "" {
		return fmt.Sprintf("container %s: label %s: %s", w.ContainerID, w.Key, w.Message)
	}
	return fmt.Sprintf("container %s: %s", w.ContainerID, w.Message)
}

// BuildTree folds one container's full label set into a single object tree.
//
// Labels are processed in lexicographically sorted key order so the result is
// deterministic even though the source label map is unordered; when two
// labels write the same leaf path, the later key in sort order wins and a
// warning is recorded. Keys outside the traefik namespace are ignored;
// malformed keys are reported as warnings and skipped, never aborting the
// rest of the container.
func BuildTree(containerID string, labels map[string]string) (*Node, []Warning) {
	root := NewObject()
	var warnings []Warning

	keys := make([]string, 0, len(labels))
	for key := range labels {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		segments, err := label.Parse(key)
		if err != nil {
			if errors.Is(err, label.ErrSkip) {
				continue
			}
			warnings = append(warnings, Warning{
				ContainerID: containerID,
				Key:         key,
				Message:     err.Error(),
			})
			continue
		}

		if replaced := root.Set(segments, labels[key]); replaced {
			warnings = append(warnings, Warning{
				ContainerID: containerID,
				Key:         key,
				Message:     "overwrites a value set by an earlier label",
			})
		}
	}

	return root, warnings
}

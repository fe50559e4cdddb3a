package download

import "time"

// Artifact is an output file kept in the artifact store.
type Artifact struct {
	Name       string
	Size       int64
	ModifiedAt time.Time
}

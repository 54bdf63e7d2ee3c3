package out

import (
	"context"
	"time"
)

// ProxyLogSource retrieves recent proxy process output.
type ProxyLogSource interface {
	// Tail returns up to lines of proxy output no older than since, as a
	// single text blob.
	Tail(ctx context.Context, lines int, since time.Duration) (string, error)
}

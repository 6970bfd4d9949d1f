package core

import "context"

// Pinger reports whether a backend is reachable; used by health checks.
type Pinger interface {
	PingContext(ctx context.Context) error
}

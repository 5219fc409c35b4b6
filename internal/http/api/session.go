package api

import (
	"context"

	"github.com/MrJamesThe3rd/bucket/internal/settings"
)

// Sessions yields the settings snapshot a request runs under.
type Sessions interface {
	Snapshot(ctx context.Context) (settings.Snapshot, error)
}

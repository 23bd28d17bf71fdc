// Package obs carries the minimal observability plumbing shared across
// layers: request-id propagation and deferred operation timing.
package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// RequestIDKey is set by the HTTP logging middleware and picked up here
// so per-operation timings correlate with access-log lines.
const RequestIDKey ctxKey = "req_id"

// Time logs the duration (and error, if any) of the named operation.
// Usage: defer obs.Time(ctx, "zone.Resolve")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}

// Package httpapi exposes the engine over HTTP: a single-schedule
// endpoint, a multi-schedule (Pareto) endpoint, liveness, and a
// Prometheus scrape endpoint.
package httpapi

import "github.com/varsity-sched/engine/internal/snapshotio"

// SnapshotRequest is the wire shape bound from the request body. It is
// an alias of snapshotio.SnapshotRequest so the HTTP surface and the
// cmd/cli JSON loader share one conversion path.
type SnapshotRequest = snapshotio.SnapshotRequest

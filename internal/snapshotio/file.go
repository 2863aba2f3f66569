package snapshotio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/varsity-sched/engine/internal/domain"
)

// LoadFile reads a snapshot request from a JSON file on disk, as used
// by the offline CLI front end.
func LoadFile(path string) (*domain.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var req SnapshotRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("parse snapshot file: %w", err)
	}

	return req.ToSnapshot(), nil
}

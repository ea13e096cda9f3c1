package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/BlockPack/internal/model"
)

// SnapshotVersion is written into every snapshot file.
const SnapshotVersion = "1.0.0"

// Snapshot archives a job together with the result it produced.
type Snapshot struct {
	Version   string           `json:"version"`
	CreatedAt string           `json:"created_at"`
	Job       model.Job        `json:"job"`
	Result    model.PackResult `json:"result"`
}

// SaveSnapshot writes job and result to a single JSON file at the
// specified path.
func SaveSnapshot(path string, job model.Job, result model.PackResult) error {
	snap := Snapshot{
		Version:   SnapshotVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Job:       job,
		Result:    result,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot file. The free-space trees are not stored,
// so the loaded result carries placements and offcuts only.
func LoadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot file: %w", err)
	}
	if snap.Version == "" {
		return Snapshot{}, fmt.Errorf("invalid snapshot file: missing version field")
	}
	if snap.Job.Blocks == nil {
		snap.Job.Blocks = []model.BlockSpec{}
	}
	return snap, nil
}

package usecase

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dbshield/dbshield/internal/artifact"
	"github.com/dbshield/dbshield/internal/config"
)

// Deduplicate compares the new artifact against the target's immediately
// preceding one and deletes the new file when the contents are identical.
// It returns false when the new artifact was discarded. With no preceding
// artifact it always keeps, so it can never remove a target's only dump
// and is idempotent after its own deletion.
func Deduplicate(target config.TargetConfig, newPath string) (bool, error) {
	prev, ok, err := artifact.Previous(target.OutputDir, target.Name, filepath.Base(newPath))
	if err != nil {
		return true, err
	}
	if !ok {
		return true, nil
	}

	same, err := artifact.Identical(newPath, prev.Path)
	if err != nil {
		return true, fmt.Errorf("compare with %s: %w", prev.Name, err)
	}
	if !same {
		return true, nil
	}

	if err := os.Remove(newPath); err != nil {
		return true, fmt.Errorf("remove duplicate artifact: %w", err)
	}
	return false, nil
}

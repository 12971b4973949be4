package usecase

import (
	"os"
	"sort"

	"github.com/dbshield/dbshield/internal/artifact"
	"github.com/dbshield/dbshield/internal/config"
)

// Rotate deletes the target's oldest artifacts until at most the retention
// count remain. Oldest is by modification time, with the name as a
// deterministic tie-break. Each deletion is independent: one failure is
// logged and the rest still proceed.
func (uc *Backup) Rotate(target config.TargetConfig) error {
	artifacts, err := artifact.List(target.OutputDir, target.Name)
	if err != nil {
		return err
	}
	if len(artifacts) <= target.RetentionCount {
		return nil
	}

	sort.SliceStable(artifacts, func(i, j int) bool {
		if !artifacts[i].ModTime.Equal(artifacts[j].ModTime) {
			return artifacts[i].ModTime.Before(artifacts[j].ModTime)
		}
		return artifacts[i].Name < artifacts[j].Name
	})

	for _, a := range artifacts[:len(artifacts)-target.RetentionCount] {
		uc.logger.Infof("[%s] rotating out old artifact %s", target.Name, a.Name)
		if err := os.Remove(a.Path); err != nil {
			uc.logger.Errorf("[%s] failed to remove %s: %v", target.Name, a.Name, err)
		}
	}
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dbshield/dbshield/internal/artifact"
	"github.com/dbshield/dbshield/internal/config"
	"github.com/dbshield/dbshield/internal/domain"
)

// Logger is the slice of the application logger the usecases need.
type Logger interface {
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
}

// UploadTarget pairs a remote storage adapter with a display name.
type UploadTarget struct {
	Name    string
	Storage domain.Storage
}

// Backup runs the full per-target pipeline: dump, optional compression,
// dedup against the previous artifact, remote mirroring, and rotation.
type Backup struct {
	uploadTargets []UploadTarget
	compressor    domain.Compressor
	logger        Logger
	compress      bool
	dumpTimeout   time.Duration
}

func NewBackup(
	uploadTargets []UploadTarget,
	compressor domain.Compressor,
	logger Logger,
	compress bool,
	dumpTimeout time.Duration,
) *Backup {
	return &Backup{
		uploadTargets: uploadTargets,
		compressor:    compressor,
		logger:        logger,
		compress:      compress,
		dumpTimeout:   dumpTimeout,
	}
}

// Execute produces one artifact for the target. It returns the artifact
// path and whether the artifact was kept (false when dedup discarded it as
// identical to the previous one). Rotation runs even when the new artifact
// is discarded, and rotation or dedup trouble never fails a produced dump.
func (uc *Backup) Execute(ctx context.Context, target config.TargetConfig, dumper domain.Dumper) (string, bool, error) {
	start := time.Now()
	uc.logger.Infof("[%s] starting backup", target.Name)

	if err := os.MkdirAll(target.OutputDir, 0o755); err != nil {
		return "", false, fmt.Errorf("create output directory: %w", err)
	}

	now := time.Now()
	name := artifact.Filename(target.Name, now, false)
	path := filepath.Join(target.OutputDir, name)

	dumpCtx := ctx
	if uc.dumpTimeout > 0 {
		var cancel context.CancelFunc
		dumpCtx, cancel = context.WithTimeout(ctx, uc.dumpTimeout)
		defer cancel()
	}
	if err := dumper.Dump(dumpCtx, path); err != nil {
		return "", false, fmt.Errorf("dump: %w", err)
	}

	if uc.compress {
		compressed, err := uc.compressArtifact(target, path, now)
		if err != nil {
			return "", false, err
		}
		path, name = compressed, filepath.Base(compressed)
	}

	kept := true
	if dumper.DedupSafe() {
		var err error
		kept, err = Deduplicate(target, path)
		if err != nil {
			uc.logger.Warnf("[%s] dedup check failed, keeping artifact: %v", target.Name, err)
			kept = true
		}
	}

	if kept {
		uc.mirrorArtifact(ctx, target, path, name)
		uc.logger.Infof("[%s] backup created at %s in %s",
			target.Name, path, time.Since(start).Round(time.Second))
	} else {
		uc.logger.Infof("[%s] dump identical to previous artifact, discarded", target.Name)
	}

	if err := uc.Rotate(target); err != nil {
		uc.logger.Errorf("[%s] rotation failed: %v", target.Name, err)
	}

	if !kept {
		return path, false, nil
	}
	return path, true, nil
}

func (uc *Backup) compressArtifact(target config.TargetConfig, path string, ts time.Time) (string, error) {
	gzPath := filepath.Join(target.OutputDir, artifact.Filename(target.Name, ts, true))
	if err := uc.compressor.Compress(path, gzPath); err != nil {
		os.Remove(gzPath)
		os.Remove(path)
		return "", fmt.Errorf("compress: %w", err)
	}
	if err := os.Remove(path); err != nil {
		uc.logger.Warnf("[%s] failed to remove uncompressed dump %s: %v", target.Name, path, err)
	}
	return gzPath, nil
}

// mirrorArtifact fans the kept artifact out to every upload target. A slow
// or failing destination only costs a log line.
func (uc *Backup) mirrorArtifact(ctx context.Context, target config.TargetConfig, path, name string) {
	if len(uc.uploadTargets) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, ut := range uc.uploadTargets {
		wg.Add(1)
		go func(ut UploadTarget) {
			defer wg.Done()
			if err := ut.Storage.Upload(ctx, path, name); err != nil {
				uc.logger.Errorf("[%s] upload to %s failed: %v", target.Name, ut.Name, err)
				return
			}
			uc.logger.Infof("[%s] uploaded %s to %s", target.Name, name, ut.Name)
		}(ut)
	}
	wg.Wait()
}

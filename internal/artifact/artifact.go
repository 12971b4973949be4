// Package artifact handles dump files on disk: their naming convention,
// enumeration per target, and content comparison.
//
// An artifact is named <target>_<yyyymmdd_hhmmss>.sql (plus .gz when
// compressed), so names sort chronologically and the owning target can be
// recovered by prefix.
package artifact

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// TimestampLayout is embedded in every artifact name.
	TimestampLayout = "20060102_150405"

	Extension           = ".sql"
	CompressedExtension = ".sql.gz"
)

// Artifact is one dump file found in a target's output directory.
type Artifact struct {
	Name    string
	Path    string
	ModTime time.Time
}

// Filename builds the artifact name for a target at ts.
func Filename(target string, ts time.Time, compressed bool) string {
	ext := Extension
	if compressed {
		ext = CompressedExtension
	}
	return fmt.Sprintf("%s_%s%s", target, ts.Format(TimestampLayout), ext)
}

// Belongs reports whether filename follows the artifact convention for the
// given target.
func Belongs(filename, target string) bool {
	if !strings.HasPrefix(filename, target+"_") {
		return false
	}
	return strings.HasSuffix(filename, Extension) || strings.HasSuffix(filename, CompressedExtension)
}

// List returns the target's artifacts in dir, sorted by name ascending
// (which is chronological by construction). A missing directory is treated
// as empty.
func List(dir, target string) ([]Artifact, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read output directory: %w", err)
	}

	var artifacts []Artifact
	for _, entry := range entries {
		if entry.IsDir() || !Belongs(entry.Name(), target) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		artifacts = append(artifacts, Artifact{
			Name:    entry.Name(),
			Path:    filepath.Join(dir, entry.Name()),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].Name < artifacts[j].Name })
	return artifacts, nil
}

// Previous returns the artifact immediately preceding newName for the
// target: the one with the largest name strictly less than newName.
func Previous(dir, target, newName string) (Artifact, bool, error) {
	artifacts, err := List(dir, target)
	if err != nil {
		return Artifact{}, false, err
	}

	var prev Artifact
	found := false
	for _, a := range artifacts {
		if a.Name >= newName {
			break
		}
		prev = a
		found = true
	}
	return prev, found, nil
}

// Latest returns the most recent artifact for the target, if any.
func Latest(dir, target string) (Artifact, bool, error) {
	artifacts, err := List(dir, target)
	if err != nil || len(artifacts) == 0 {
		return Artifact{}, false, err
	}
	return artifacts[len(artifacts)-1], true, nil
}

// Identical reports whether two files have byte-identical content. Sizes
// are compared first so differing dumps are rejected without reading them.
func Identical(path1, path2 string) (bool, error) {
	info1, err := os.Stat(path1)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path1, err)
	}
	info2, err := os.Stat(path2)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path2, err)
	}
	if info1.Size() != info2.Size() {
		return false, nil
	}

	f1, err := os.Open(path1)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", path1, err)
	}
	defer f1.Close()
	f2, err := os.Open(path2)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", path2, err)
	}
	defer f2.Close()

	buf1 := make([]byte, 64*1024)
	buf2 := make([]byte, 64*1024)
	for {
		n1, err1 := io.ReadFull(f1, buf1)
		n2, err2 := io.ReadFull(f2, buf2)
		if n1 != n2 || !bytes.Equal(buf1[:n1], buf2[:n2]) {
			return false, nil
		}
		if err1 == io.EOF || err1 == io.ErrUnexpectedEOF {
			return err2 == io.EOF || err2 == io.ErrUnexpectedEOF, nil
		}
		if err1 != nil {
			return false, fmt.Errorf("read %s: %w", path1, err1)
		}
		if err2 != nil {
			return false, fmt.Errorf("read %s: %w", path2, err2)
		}
	}
}

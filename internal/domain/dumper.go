package domain

import "context"

// Dumper produces a complete database dump for a single configured target.
type Dumper interface {
	// Dump writes a point-in-time dump to outputPath. On failure no file
	// is left behind at outputPath.
	Dump(ctx context.Context, outputPath string) error
	Kind() string
	// DedupSafe reports whether consecutive dumps of an unchanged database
	// are byte-identical and therefore safe to deduplicate.
	DedupSafe() bool
}

package database

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/dbshield/dbshield/internal/config"
)

// PostgreSQLDumper backs up PostgreSQL targets with pg_dump. pg_dump takes
// a consistent snapshot on its own, so there is no relaxed retry, and its
// plain-text output carries run-volatile metadata, so dedup is skipped.
type PostgreSQLDumper struct {
	cfg *config.TargetConfig
}

func NewPostgreSQL(cfg *config.TargetConfig) *PostgreSQLDumper {
	return &PostgreSQLDumper{cfg: cfg}
}

func (p *PostgreSQLDumper) Kind() string { return p.cfg.Type }

func (p *PostgreSQLDumper) DedupSafe() bool { return false }

func (p *PostgreSQLDumper) Dump(ctx context.Context, outputPath string) error {
	cmd := exec.CommandContext(ctx, "pg_dump")
	// Connection parameters go through pg_dump's native environment
	// convention; nothing sensitive appears in argv.
	env := append(os.Environ(),
		"PGHOST="+p.cfg.Host,
		fmt.Sprintf("PGPORT=%d", p.cfg.Port),
		"PGUSER="+p.cfg.Username,
		"PGDATABASE="+p.cfg.Database,
	)
	if p.cfg.Password != "" {
		env = append(env, "PGPASSWORD="+p.cfg.Password)
	}
	cmd.Env = env

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create dump file: %w", err)
	}
	cmd.Stdout = out

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	closeErr := out.Close()

	if runErr != nil {
		os.Remove(outputPath)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("pg_dump failed: %s: %w", msg, runErr)
		}
		return fmt.Errorf("pg_dump failed: %w", runErr)
	}
	if closeErr != nil {
		os.Remove(outputPath)
		return fmt.Errorf("flush dump file: %w", closeErr)
	}
	return nil
}

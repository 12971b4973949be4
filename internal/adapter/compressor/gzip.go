// Package compressor provides optional gzip compression of dump artifacts.
// The gzip header is written without a modification time, so compressing
// identical dumps yields identical bytes and dedup keeps working.
package compressor

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

type GzipCompressor struct{}

func NewGzip() *GzipCompressor {
	return &GzipCompressor{}
}

func (g *GzipCompressor) Compress(sourcePath, destPath string) error {
	source, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer source.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create dest file: %w", err)
	}
	defer dest.Close()

	zw, err := gzip.NewWriterLevel(dest, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("create gzip writer: %w", err)
	}

	if _, err := io.Copy(zw, source); err != nil {
		zw.Close()
		return fmt.Errorf("compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish gzip stream: %w", err)
	}
	return nil
}

func (g *GzipCompressor) Decompress(sourcePath, destPath string) error {
	source, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer source.Close()

	zr, err := gzip.NewReader(source)
	if err != nil {
		return fmt.Errorf("create gzip reader: %w", err)
	}
	defer zr.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create dest file: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, zr); err != nil {
		return fmt.Errorf("decompress: %w", err)
	}
	return nil
}
